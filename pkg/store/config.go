package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates everything freewrite keeps on disk.
type Config interface {
	BasePath() string
	ExportPath() string
	PrefsPath() string
	LogPath() string
	TimerDuration() time.Duration
}

const (
	defaultTimerSeconds = 900
)

// LoadConfig reads `.freewrite.yaml` from $FREEWRITE_CONFIG_PATH, the working
// directory or the home directory. FREEWRITE_* environment variables override
// file values.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.freewrite")
	v.SetDefault("exportPath", filepath.Join(os.TempDir(), "freewrite-share"))
	v.SetDefault("prefsPath", "~/.freewrite.prefs.yaml")
	v.SetDefault("logPath", "")
	v.SetDefault("timer", defaultTimerSeconds)
	v.SetConfigName(".freewrite") // .yaml is implicit
	v.SetEnvPrefix("FREEWRITE")
	v.AutomaticEnv()

	if override := os.Getenv("FREEWRITE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &fileConfig{Timer: v.GetInt("timer")}
	var err error
	if cfg.Path, err = homedir.Expand(v.GetString("path")); err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if cfg.Export, err = homedir.Expand(v.GetString("exportPath")); err != nil {
		return nil, fmt.Errorf("store: expand exportPath: %w", err)
	}
	if cfg.Prefs, err = homedir.Expand(v.GetString("prefsPath")); err != nil {
		return nil, fmt.Errorf("store: expand prefsPath: %w", err)
	}
	if cfg.Log, err = homedir.Expand(v.GetString("logPath")); err != nil {
		return nil, fmt.Errorf("store: expand logPath: %w", err)
	}
	return cfg, nil
}

// NewConfig returns a Config rooted at base. Exports go to a sibling
// directory; everything else lives inside base.
func NewConfig(base string) Config {
	base = filepath.Clean(base)
	return &fileConfig{
		Path:   base,
		Export: base + "-share",
		Prefs:  filepath.Join(base, ".prefs.yaml"),
		Timer:  defaultTimerSeconds,
	}
}

type fileConfig struct {
	Path   string `json:"path"`
	Export string `json:"exportPath"`
	Prefs  string `json:"prefsPath"`
	Log    string `json:"logPath"`
	Timer  int    `json:"timer"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ExportPath() string {
	return f.Export
}

func (f *fileConfig) PrefsPath() string {
	return f.Prefs
}

func (f *fileConfig) LogPath() string {
	if f.Log == "" {
		return filepath.Join(f.Path, ".logs", "freewrite.log")
	}
	return f.Log
}

func (f *fileConfig) TimerDuration() time.Duration {
	if f.Timer <= 0 {
		return defaultTimerSeconds * time.Second
	}
	return time.Duration(f.Timer) * time.Second
}
