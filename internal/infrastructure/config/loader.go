package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/jarvis-go/assets"
	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/pkg/filesystem"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// EnvConfigPath overrides the default config location.
const EnvConfigPath = "JARVIS_CONFIG"

// FileLoader loads YAML configuration from ~/.jarvis/config.yaml (overridable via JARVIS_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. A non-empty path wins over the environment.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. The embedded default is written on first run.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".jarvis", "config.yaml")
}

// Init writes the embedded default config. An existing file is kept unless force is set.
func (l *FileLoader) Init(force bool) (string, error) {
	path := l.Path()
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return path, writeDefault(path)
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// hydrateDefaults fills the path settings that depend on the home directory.
func hydrateDefaults(cfg domain.Config) domain.Config {
	home := filesystem.UserHomeDir()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Workspace.Dir == "" {
		cfg.Workspace.Dir = filepath.Join(home, domain.DefaultWorkspaceDirName)
	}
	cfg.Workspace.Dir = filesystem.ExpandHome(cfg.Workspace.Dir)
	if len(cfg.Workspace.AllowedRoots) == 0 {
		cfg.Workspace.AllowedRoots = []string{cfg.Workspace.Dir, home}
	}
	if len(cfg.Workspace.SearchDirs) == 0 {
		cfg.Workspace.SearchDirs = []string{
			cfg.Workspace.Dir,
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Desktop"),
		}
	}
	for i, dir := range cfg.Workspace.SearchDirs {
		cfg.Workspace.SearchDirs[i] = filesystem.ExpandHome(dir)
	}
	if cfg.History.File == "" {
		name := domain.DefaultHistoryFileName
		if cfg.GetHistoryBackend() == domain.HistoryBackendSQLite {
			name = ".jarvis_history.db"
		}
		cfg.History.File = filepath.Join(cfg.Workspace.Dir, name)
	}
	cfg.History.File = filesystem.ExpandHome(cfg.History.File)
	if len(cfg.AppAliases) == 0 {
		cfg.AppAliases = domain.DefaultAppAliases()
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// DefaultConfig returns the embedded default with paths resolved.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}
