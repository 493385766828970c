// Package mcp exposes the journal to assistants over the Model Context
// Protocol. Tools and resources read the entry files directly; they never go
// through a TUI session, so an open editor keeps sole ownership of its buffer.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/freewrite/pkg/store"
)

// Transport selects how the server is reached.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const (
	DefaultHTTPAddr = "127.0.0.1:8080"
	DefaultPath     = "/mcp"

	shutdownGrace = 5 * time.Second
)

var ErrHalfTLS = errors.New("mcp: tls needs both a certificate and a key")

// Runner serves one journal directory.
type Runner struct {
	Persistence store.Persistence
	Logger      *zap.Logger
	Name        string
	Version     string

	Transport Transport
	// HTTP only.
	Addr    string
	Path    string
	TLSCert string
	TLSKey  string
	// OnListening receives the endpoint URL once the HTTP listener is up.
	OnListening func(endpoint string)
}

// Do serves until ctx is done (HTTP) or stdin closes (stdio).
func (r Runner) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("mcp: no journal to serve")
	}
	if (r.TLSCert == "") != (r.TLSKey == "") {
		return ErrHalfTLS
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("starting mcp server",
		zap.String("transport", string(r.Transport)),
		zap.String("journal", r.Persistence.BasePath()))

	srv := r.newServer()
	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

func (r Runner) newServer() *server.MCPServer {
	name, version := r.Name, r.Version
	if name == "" {
		name = "freewrite"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read, search and write freewrite journal entries via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Persistence)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// EndpointPath normalises the configured path to a rooted one.
func (r Runner) EndpointPath() string {
	p := strings.TrimSpace(r.Path)
	if p == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Endpoint is the URL clients use for a listener bound to addr. Wildcard
// binds are shown as loopback.
func (r Runner) Endpoint(addr net.Addr) string {
	scheme := "http"
	if r.TLSCert != "" {
		scheme = "https"
	}
	host, port := "127.0.0.1", ""
	if tcp, ok := addr.(*net.TCPAddr); ok {
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
		port = fmt.Sprint(tcp.Port)
	} else if h, p, err := net.SplitHostPort(addr.String()); err == nil {
		host, port = h, p
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), r.EndpointPath())
}

// health reports the journal the server is bound to.
type health struct {
	Journal string `json:"journal"`
	Entries int    `json:"entries"`
}

func (r Runner) healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(health{
			Journal: r.Persistence.BasePath(),
			Entries: len(r.Persistence.List(req.Context())),
		})
	})
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *zap.Logger) error {
	addr := r.Addr
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	path := r.EndpointPath()

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	mux.Handle("/healthz", r.healthHandler())
	httpSrv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	endpoint := r.Endpoint(ln.Addr())
	log.Debug("mcp http listening", zap.String("endpoint", endpoint))
	if r.OnListening != nil {
		r.OnListening(endpoint)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("mcp http shutdown", zap.Error(err))
		}
	}()

	if r.TLSCert != "" {
		err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
