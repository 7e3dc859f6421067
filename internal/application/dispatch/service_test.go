package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/pkg/logger"
	"github.com/doeshing/jarvis-go/internal/ports"
)

type stubHandler struct {
	mu        sync.Mutex
	result    ports.HandlerResult
	err       error
	panicWith interface{}
	commits   []domain.PendingConfirmation
}

func (s *stubHandler) Handle(context.Context, domain.IntentRecord) (ports.HandlerResult, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.result, s.err
}

func (s *stubHandler) Commit(_ context.Context, p domain.PendingConfirmation) (domain.ExecutionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits = append(s.commits, p)
	return domain.Succeeded("Deleted: " + p.Payload), nil
}

func confirmResult(path string) ports.HandlerResult {
	return ports.HandlerResult{Confirm: &domain.PendingConfirmation{
		Action:  domain.ActionDeleteFile,
		Payload: path,
		Prompt:  fmt.Sprintf("I found: %s\n\n⚠️ Are you sure you want to permanently delete it? (yes/no)", path),
	}}
}

func deleteRecord(query string) domain.IntentRecord {
	return domain.NewIntentRecord(domain.IntentFileManagement, domain.ActionDeleteFile, map[string]any{domain.ParamQuery: query})
}

func newTestService(h ports.Handler) *Service {
	return NewService(map[domain.Intent]ports.Handler{domain.IntentFileManagement: h}, nil, logger.Nop())
}

func TestExecuteReturnsHandlerResult(t *testing.T) {
	h := &stubHandler{result: ports.HandlerResult{Result: domain.Succeeded("Found 2 files")}}
	res := newTestService(h).Execute(context.Background(), deleteRecord("x"))
	assert.True(t, res.Success)
	assert.Equal(t, "Found 2 files", res.Text)
}

func TestExecuteErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler *stubHandler
		want    string
	}{
		{"invalid input", &stubHandler{err: fmt.Errorf("create: %w: filename cannot be empty", domain.ErrInvalidInput)}, "Invalid input: filename cannot be empty"},
		{"generic", &stubHandler{err: errors.New("disk full")}, "Failed: disk full"},
		{"panic", &stubHandler{panicWith: "boom"}, "Internal error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestService(tt.handler).Execute(context.Background(), deleteRecord("x"))
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestExecuteSuggestsForUnknownAction(t *testing.T) {
	h := &stubHandler{err: fmt.Errorf("%w: delete_files", domain.ErrUnknownAction)}
	svc := newTestService(h)

	res := svc.Execute(context.Background(), domain.NewIntentRecord(domain.IntentFileManagement, "delete_files", nil))
	assert.False(t, res.Success)
	assert.Contains(t, res.Text, "Did you mean: delete file")

	noHandler := svc.Execute(context.Background(), domain.NewIntentRecord(domain.IntentHelp, "xyzzy", nil))
	assert.Equal(t, msgTypeHelp, noHandler.Text)
}

func TestConfirmationLifecycle(t *testing.T) {
	h := &stubHandler{result: confirmResult("/ws/cats.txt")}
	svc := newTestService(h)
	ctx := context.Background()

	res := svc.Execute(ctx, deleteRecord("cats.txt"))
	require.True(t, res.Success)
	assert.Contains(t, res.Text, "I found: /ws/cats.txt")
	pending, ok := svc.Pending()
	require.True(t, ok)
	assert.Equal(t, domain.IntentFileManagement, pending.Intent)
	assert.False(t, pending.CreatedAt.IsZero())

	h.result = confirmResult("/ws/dogs.txt")
	second := svc.Execute(ctx, deleteRecord("dogs.txt"))
	assert.False(t, second.Success)
	assert.Equal(t, msgAwaitingConfirmation, second.Text)
	pending, _ = svc.Pending()
	assert.Equal(t, "/ws/cats.txt", pending.Payload, "pending slot must not be overwritten")

	committed := svc.ResolveConfirmation(ctx, "  YES ")
	assert.True(t, committed.Success)
	assert.Equal(t, "Deleted: /ws/cats.txt", committed.Text)
	require.Len(t, h.commits, 1)
	_, ok = svc.Pending()
	assert.False(t, ok)
}

func TestResolveConfirmationDeclined(t *testing.T) {
	h := &stubHandler{result: confirmResult("/ws/cats.txt")}
	svc := newTestService(h)
	ctx := context.Background()

	svc.Execute(ctx, deleteRecord("cats.txt"))
	res := svc.ResolveConfirmation(ctx, "no")
	assert.False(t, res.Success)
	assert.Equal(t, msgCancelled, res.Text)
	assert.Empty(t, h.commits)

	again := svc.ResolveConfirmation(ctx, "yes")
	assert.Equal(t, msgNothingToConfirm, again.Text)
	assert.Empty(t, h.commits)
}

func TestDefaultAffirmativeTokensAcceptShortYes(t *testing.T) {
	ctx := context.Background()
	for answer, wantCommit := range map[string]bool{"y": true, " Y ": true, "yes": true, "yeah": false, "ok": false} {
		h := &stubHandler{result: confirmResult("/ws/a.txt")}
		svc := NewService(map[domain.Intent]ports.Handler{domain.IntentFileManagement: h}, nil, logger.Nop())
		svc.Execute(ctx, deleteRecord("a.txt"))
		res := svc.ResolveConfirmation(ctx, answer)
		assert.Equal(t, wantCommit, res.Success, "answer %q", answer)
		assert.Equal(t, wantCommit, len(h.commits) == 1, "answer %q", answer)
	}
}

func TestCustomAffirmativeTokens(t *testing.T) {
	h := &stubHandler{result: confirmResult("/ws/a.txt")}
	svc := NewService(map[domain.Intent]ports.Handler{domain.IntentFileManagement: h}, []string{"yes", "y"}, logger.Nop())
	svc.Execute(context.Background(), deleteRecord("a.txt"))
	res := svc.ResolveConfirmation(context.Background(), "Y")
	assert.True(t, res.Success)
}

func TestConcurrentExecuteKeepsSinglePending(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := &stubHandler{result: confirmResult("/ws/cats.txt")}
	svc := newTestService(h)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := svc.Execute(context.Background(), deleteRecord("cats.txt")); res.Success {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"list files"}, suggest("list_files", []string{"list files", "help"}))
	assert.Empty(t, suggest("", KnownCommands))
	assert.LessOrEqual(t, len(suggest("create file", KnownCommands)), suggestTopN)
	assert.InDelta(t, 1.0, similarity("help", "help"), 0.0001)
}
