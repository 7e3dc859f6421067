package assistant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/jarvis-go/internal/application/classify"
	"github.com/doeshing/jarvis-go/internal/application/dispatch"
	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/infrastructure/ai"
	"github.com/doeshing/jarvis-go/internal/infrastructure/documents"
	"github.com/doeshing/jarvis-go/internal/infrastructure/handlers"
	"github.com/doeshing/jarvis-go/internal/infrastructure/history"
	"github.com/doeshing/jarvis-go/internal/infrastructure/security"
	"github.com/doeshing/jarvis-go/internal/pkg/logger"
	"github.com/doeshing/jarvis-go/internal/ports"
)

type failingHistory struct {
	records int
}

func (f *failingHistory) Record(context.Context, domain.HistoryEntry) error {
	f.records++
	return errors.New("disk full")
}
func (f *failingHistory) Load(context.Context) ([]domain.HistoryEntry, error) { return nil, nil }
func (f *failingHistory) Search(context.Context, string, int) ([]domain.HistoryEntry, error) {
	return nil, nil
}
func (f *failingHistory) Clear(context.Context) error { return nil }
func (f *failingHistory) Path() string                { return "memory" }

type env struct {
	core      *Core
	workspace string
	store     *history.FileStore
}

func newEnv(t *testing.T) env {
	t.Helper()
	ws, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cfg := domain.Config{Workspace: domain.WorkspaceSettings{Dir: ws, SearchDirs: []string{ws}}}
	log := logger.Nop()
	sanitizer, err := security.NewSanitizer("")
	require.NoError(t, err)
	generator := ai.NewGenerator(nil, cfg.GetAssistantName(), log)
	window := domain.NewConversationWindow(cfg.GetConversationWindow())

	handlerMap := map[domain.Intent]ports.Handler{
		domain.IntentFileCreation: &handlers.FileHandler{
			Config:    cfg,
			Validator: security.NewValidator(ws, []string{ws}, sanitizer),
			Writer:    documents.NewWriter(),
			Generator: generator,
			Logger:    log,
		},
		domain.IntentConversation: &handlers.ConversationHandler{Generator: generator, History: window.Messages, Logger: log},
		domain.IntentHelp:         handlers.HelpHandler{},
	}
	handlerMap[domain.IntentFileManagement] = handlerMap[domain.IntentFileCreation]

	classifier := &classify.Service{
		Strategies: []ports.ClassifierStrategy{ai.NewRuleClassifier()},
		Fallback:   "rules",
		Logger:     log,
	}
	store := history.NewFileStore(filepath.Join(ws, domain.DefaultHistoryFileName), 0)
	dispatcher := dispatch.NewService(handlerMap, cfg.GetAffirmativeTokens(), log)
	core := NewCore(context.Background(), cfg, classifier, dispatcher, store, window, log)
	return env{core: core, workspace: ws, store: store}
}

func TestTurnCreatesTopicDocument(t *testing.T) {
	e := newEnv(t)

	res := e.core.Turn(context.Background(), "create a text file about cats")
	require.True(t, res.Success, res.Text)
	assert.Contains(t, res.Text, "Created cats.txt")

	data, err := os.ReadFile(filepath.Join(e.workspace, "cats.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cats")

	entries := e.core.History()
	require.Len(t, entries, 1)
	assert.Equal(t, "create a text file about cats", entries[0].Command)
	assert.True(t, entries[0].Success)
	assert.Equal(t, 2, e.core.Window.Len())
}

func TestTurnDeleteDeclinedKeepsFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	target := filepath.Join(e.workspace, "cats.txt")
	require.NoError(t, os.WriteFile(target, []byte("meow"), 0o644))

	prompt := e.core.Turn(ctx, "delete cats.txt")
	require.True(t, prompt.AwaitingConfirmation)
	assert.Contains(t, prompt.Text, "Are you sure")

	exit := e.core.Turn(ctx, "exit")
	assert.False(t, exit.Exit, "exit words are answers while a confirmation is pending")
	assert.Equal(t, "OK, action cancelled.", exit.Text)
	assert.False(t, exit.AwaitingConfirmation)
	assert.FileExists(t, target)

	again := e.core.Turn(ctx, "delete cats.txt")
	require.True(t, again.AwaitingConfirmation)
	done := e.core.Turn(ctx, " YES ")
	assert.True(t, done.Success)
	assert.NoFileExists(t, target)

	persisted, err := e.store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 4)
}

func TestTurnDeleteAnsweredNoIsRecordedAsFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	target := filepath.Join(e.workspace, "cats.txt")
	require.NoError(t, os.WriteFile(target, []byte("meow"), 0o644))

	prompt := e.core.Turn(ctx, "delete cats.txt")
	require.True(t, prompt.AwaitingConfirmation)

	no := e.core.Turn(ctx, "no")
	assert.False(t, no.Success)
	assert.Equal(t, "OK, action cancelled.", no.Text)
	assert.False(t, no.AwaitingConfirmation)
	assert.False(t, e.core.AwaitingConfirmation(), "pending slot is cleared")
	assert.FileExists(t, target)

	persisted, err := e.store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, "delete cats.txt", persisted[0].Command)
	assert.True(t, persisted[0].Success)
	assert.Equal(t, "no", persisted[1].Command)
	assert.False(t, persisted[1].Success)
}

func TestTurnEmptyAndExit(t *testing.T) {
	e := newEnv(t)

	empty := e.core.Turn(context.Background(), "   ")
	assert.True(t, empty.Reprompt)
	assert.Empty(t, e.core.History())

	bye := e.core.Turn(context.Background(), "Quit")
	assert.True(t, bye.Exit)
	assert.Empty(t, e.core.History())
}

func TestTurnSurvivesHistoryFailure(t *testing.T) {
	e := newEnv(t)
	broken := &failingHistory{}
	e.core.Store = broken

	res := e.core.Turn(context.Background(), "help")
	assert.True(t, res.Success)
	assert.Contains(t, res.Text, "Here is what I can do")
	assert.Equal(t, 1, broken.records)
}

func TestConversationWindowIsBounded(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 5; i++ {
		e.core.Turn(context.Background(), "hello")
	}
	assert.Equal(t, domain.DefaultConversationWindow, e.core.Window.Len())
}
