package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/logging"
	"tableflip.dev/freewrite/pkg/runner/mcp"
	"tableflip.dev/freewrite/pkg/store"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets assistants list, read and write journal
entries through the Model Context Protocol.`,
		Example: `
freewrite mcp
freewrite mcp --transport stdio
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			log := logging.NewOrNop(cfg.LogPath(), debug)
			defer func() { _ = log.Sync() }()

			persistence, err := store.Load(cfg, store.WithLogger(log.Named("store")))
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				Persistence: persistence,
				Logger:      log.Named("mcp"),
				Name:        "freewrite",
				Version:     Version,
				Path:        httpPath,
				TLSCert:     strings.TrimSpace(httpTLSCert),
				TLSKey:      strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportHTTP):
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				runner.Transport = mcp.TransportHTTP
				runner.Addr = net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.OnListening = func(endpoint string) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", endpoint)
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", mcp.DefaultPath, "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log debug events to the configured log file")

	topLevel.AddCommand(cmd)
}
