package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appconfig "github.com/doeshing/jarvis-go/internal/application/config"
	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Completers     ports.CompleterFactory
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", strings.ReplaceAll(err.Error(), "\n", "; ")))
	} else {
		checks = append(checks, ok("Config values", "consistent"))
	}

	checks = append(checks, workspaceCheck(cfg.Workspace.Dir))
	checks = append(checks, s.backendCheck(cfg))
	checks = append(checks, historyCheck(cfg.History.File))
	checks = append(checks, weatherCheck(cfg))

	if s.Clipboard != nil {
		if s.Clipboard.Enabled() {
			checks = append(checks, ok("Clipboard", "available"))
		} else {
			checks = append(checks, warn("Clipboard", "no clipboard utility found"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func workspaceCheck(dir string) domain.HealthCheck {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return warn("Workspace", dir+" will be created on first run")
	case err != nil:
		return fail("Workspace", err.Error())
	case !info.IsDir():
		return fail("Workspace", dir+" is not a directory")
	}
	tmp, err := os.CreateTemp(dir, ".jarvis-doctor-*")
	if err != nil {
		return fail("Workspace", "not writable: "+err.Error())
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return ok("Workspace", dir)
}

func (s *Service) backendCheck(cfg domain.Config) domain.HealthCheck {
	models := cfg.ClassifierModels()
	if len(models) == 0 {
		return warn("Classifier backends", "none configured, using rules only")
	}
	if s.Completers == nil {
		return warn("Classifier backends", "factory not initialized")
	}
	var ready, skipped []string
	for _, model := range models {
		if _, err := s.Completers.ForModel(model); err != nil {
			skipped = append(skipped, fmt.Sprintf("%s (%v)", model.Name, err))
			continue
		}
		ready = append(ready, model.Name)
	}
	switch {
	case len(ready) == 0:
		return warn("Classifier backends", "none usable, using rules only: "+strings.Join(skipped, ", "))
	case len(skipped) > 0:
		return warn("Classifier backends", fmt.Sprintf("ready: %s; skipped: %s", strings.Join(ready, ", "), strings.Join(skipped, ", ")))
	default:
		return ok("Classifier backends", strings.Join(ready, ", "))
	}
}

func historyCheck(path string) domain.HealthCheck {
	if path == "" {
		return warn("History", "no history file configured")
	}
	if _, err := os.Stat(path); err == nil {
		return ok("History", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return warn("History", filepath.Dir(path)+" does not exist yet")
	}
	return ok("History", path+" (empty)")
}

func weatherCheck(cfg domain.Config) domain.HealthCheck {
	env := cfg.GetWeatherKeyEnv()
	if strings.TrimSpace(os.Getenv(env)) == "" {
		return warn("Weather", env+" is not set, weather questions are disabled")
	}
	return ok("Weather", cfg.GetWeatherURL())
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
