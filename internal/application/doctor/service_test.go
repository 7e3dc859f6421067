package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubFactory struct{}

func (stubFactory) ForModel(model domain.ModelDefinition) (ports.Completer, error) {
	if model.Provider == domain.ProviderKindOpenAI {
		return nil, domain.ErrBackendUnavailable
	}
	return nil, nil
}

func findCheck(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not in report %+v", name, report)
	return domain.HealthCheck{}
}

func TestRunReportsWorkspaceAndBackends(t *testing.T) {
	ws := t.TempDir()
	cfg := domain.Config{
		Workspace: domain.WorkspaceSettings{Dir: ws},
		History:   domain.HistorySettings{File: filepath.Join(ws, domain.DefaultHistoryFileName)},
		Models: []domain.ModelDefinition{
			{Name: "gpt", Provider: domain.ProviderKindOpenAI},
			{Name: "local", Provider: domain.ProviderKindHTTP, Endpoint: "http://localhost:11434/v1/chat/completions"},
		},
	}
	svc := &Service{ConfigProvider: stubConfigProvider{cfg: cfg}, Completers: stubFactory{}}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report)
	}
	if got := findCheck(t, report, "Workspace"); got.Status != domain.HealthOK {
		t.Fatalf("workspace check = %+v", got)
	}
	if got := findCheck(t, report, "Classifier backends"); got.Status != domain.HealthWarn {
		t.Fatalf("backend check = %+v", got)
	}
}

func TestRunReportsWeatherKey(t *testing.T) {
	cfg := domain.Config{
		Workspace: domain.WorkspaceSettings{Dir: t.TempDir()},
		Web:       domain.WebSettings{WeatherKeyEnv: "JARVIS_DOCTOR_WEATHER_KEY"},
	}
	svc := &Service{ConfigProvider: stubConfigProvider{cfg: cfg}, Completers: stubFactory{}}

	t.Setenv("JARVIS_DOCTOR_WEATHER_KEY", "")
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := findCheck(t, report, "Weather"); got.Status != domain.HealthWarn {
		t.Fatalf("weather check without key = %+v", got)
	}

	t.Setenv("JARVIS_DOCTOR_WEATHER_KEY", "abc")
	report, _ = svc.Run(context.Background())
	if got := findCheck(t, report, "Weather"); got.Status != domain.HealthOK {
		t.Fatalf("weather check with key = %+v", got)
	}
}

func TestRunFailsOnBadConfig(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("boom")}}
	report, err := svc.Run(context.Background())
	if err == nil || !report.Failed() {
		t.Fatalf("Run() = %+v, %v", report, err)
	}

	svc.ConfigProvider = stubConfigProvider{cfg: domain.Config{History: domain.HistorySettings{Backend: "redis"}}}
	report, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := findCheck(t, report, "Config values"); got.Status != domain.HealthError {
		t.Fatalf("config values check = %+v", got)
	}
}
