package system

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"github.com/doeshing/jarvis-go/internal/domain"
)

type recordedStart struct {
	name string
	args []string
}

func recorder(calls *[]recordedStart) startFunc {
	return func(name string, args ...string) error {
		*calls = append(*calls, recordedStart{name: name, args: args})
		return nil
	}
}

func TestLauncherCommandPerOS(t *testing.T) {
	tests := []struct {
		goos     string
		app      string
		wantName string
		wantArgs []string
	}{
		{"darwin", "Visual Studio Code", "open", []string{"-a", "Visual Studio Code"}},
		{"windows", "notepad", "cmd", []string{"/c", "start", "", "notepad"}},
		{"linux", "code", "/usr/bin/code", nil},
		{"linux", "Google Chrome", "/usr/bin/google-chrome", nil},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.app, func(t *testing.T) {
			var calls []recordedStart
			l := &Launcher{
				goos:  tt.goos,
				start: recorder(&calls),
				lookPath: func(name string) (string, error) {
					switch name {
					case "code", "google-chrome":
						return "/usr/bin/" + name, nil
					}
					return "", exec.ErrNotFound
				},
			}
			if err := l.Launch(context.Background(), tt.app); err != nil {
				t.Fatalf("Launch() error = %v", err)
			}
			if len(calls) != 1 || calls[0].name != tt.wantName || !reflect.DeepEqual(calls[0].args, tt.wantArgs) {
				t.Fatalf("started %+v, want %s %v", calls, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestLauncherErrors(t *testing.T) {
	var calls []recordedStart
	l := &Launcher{goos: "linux", start: recorder(&calls), lookPath: func(string) (string, error) { return "", exec.ErrNotFound }}

	if err := l.Launch(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty app error = %v", err)
	}
	if err := l.Launch(context.Background(), "nonexistent"); err == nil {
		t.Fatal("expected not-found error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Launch(ctx, "code"); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled launch error = %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("nothing should have started, got %+v", calls)
	}
}

func TestLauncherNeverPassesUserWordsAsArguments(t *testing.T) {
	tests := []struct {
		goos string
		app  string
	}{
		{"linux", "rm -rf x"},
		{"linux", "rm -rf ~/Documents"},
		{"linux", "code; rm -rf x"},
		{"linux", "--help"},
		{"windows", "notepad & del /q C:\\x"},
		{"windows", "calc | shutdown"},
		{"darwin", "Safari$(rm -rf x)"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.app, func(t *testing.T) {
			var calls []recordedStart
			l := &Launcher{
				goos:  tt.goos,
				start: recorder(&calls),
				lookPath: func(name string) (string, error) {
					return "/usr/bin/" + name, nil
				},
			}
			err := l.Launch(context.Background(), tt.app)
			for _, c := range calls {
				if len(c.args) > 0 && tt.goos == "linux" {
					t.Fatalf("started %s with user arguments %v", c.name, c.args)
				}
			}
			if tt.goos != "linux" && err == nil {
				t.Fatalf("Launch(%q) expected rejection, started %+v", tt.app, calls)
			}
		})
	}
}

func TestLauncherRejectsShellSyntax(t *testing.T) {
	var calls []recordedStart
	l := &Launcher{goos: "linux", start: recorder(&calls), lookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil }}
	for _, app := range []string{"rm -rf ~/Documents", "code && reboot", "/bin/sh", "--version"} {
		if err := l.Launch(context.Background(), app); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Launch(%q) error = %v, want ErrInvalidInput", app, err)
		}
	}
	if len(calls) != 0 {
		t.Fatalf("nothing should have started, got %+v", calls)
	}
}

func TestOpenerPerOS(t *testing.T) {
	for goos, want := range map[string]string{"darwin": "open", "windows": "rundll32", "linux": "xdg-open"} {
		var calls []recordedStart
		o := &Opener{goos: goos, start: recorder(&calls)}
		if err := o.Open(context.Background(), "https://www.google.com"); err != nil {
			t.Fatalf("%s Open() error = %v", goos, err)
		}
		if calls[0].name != want || calls[0].args[len(calls[0].args)-1] != "https://www.google.com" {
			t.Fatalf("%s started %+v", goos, calls)
		}
	}

	o := &Opener{goos: "linux", start: func(string, ...string) error { return errors.New("no display") }}
	if err := o.Open(context.Background(), "/tmp/x.txt"); err == nil {
		t.Fatal("expected start failure to surface")
	}
}
