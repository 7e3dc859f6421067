// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the assistant core and external
// adapters (infrastructure). The classifier chain, dispatcher and turn loop only
// depend on these interfaces, so LLM clients, OS integrations and storage can be
// swapped without touching dispatch logic.
package ports

import (
	"context"

	"github.com/doeshing/jarvis-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.jarvis/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Completer sends one prompt to a text-in/text-out backend.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// CompleterFactory builds completers from model definitions.
type CompleterFactory interface {
	ForModel(domain.ModelDefinition) (Completer, error)
}

// ClassifierStrategy turns free text into an intent record or reports why it could not.
type ClassifierStrategy interface {
	Name() string
	Classify(ctx context.Context, command string) (domain.IntentRecord, error)
}

// ClassificationCache memoizes classifier results by exact command text.
type ClassificationCache interface {
	Get(command string) (domain.IntentRecord, bool)
	Set(command string, record domain.IntentRecord)
}

// ContentKind selects the generation template.
type ContentKind string

const (
	ContentText ContentKind = "text"
	ContentCode ContentKind = "code"
	ContentJSON ContentKind = "json"
)

// ContentGenerator produces document bodies and chat replies.
type ContentGenerator interface {
	Generate(ctx context.Context, topic string, kind ContentKind) (string, error)
	Chat(ctx context.Context, message string, history []domain.Message) (string, error)
}

// Handler performs the side effect for one intent.
type Handler interface {
	Handle(ctx context.Context, record domain.IntentRecord) (HandlerResult, error)
}

// Committer is implemented by handlers that can finish a confirmed action.
type Committer interface {
	Commit(ctx context.Context, pending domain.PendingConfirmation) (domain.ExecutionResult, error)
}

// HandlerResult is either a finished result or a request for confirmation.
type HandlerResult struct {
	Result  domain.ExecutionResult
	Confirm *domain.PendingConfirmation
}

// Validator guards every filesystem touch.
type Validator interface {
	ValidateFilename(name string) (string, error)
	ValidatePath(path string) (string, error)
	SanitizeContent(text string) string
}

// DocumentWriter writes content to disk in the format implied by the extension.
type DocumentWriter interface {
	Write(path string, content string) error
	Supports(ext string) bool
}

// HistoryRepository persists the bounded command log.
type HistoryRepository interface {
	Record(ctx context.Context, entry domain.HistoryEntry) error
	Load(ctx context.Context) ([]domain.HistoryEntry, error)
	Search(ctx context.Context, term string, limit int) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
	Path() string
}

// Launcher starts desktop applications.
type Launcher interface {
	Launch(ctx context.Context, app string) error
}

// Opener hands a URL or file path to the desktop's default handler.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// InfoLookup answers factual questions from online services.
// Unknown topics and places wrap domain.ErrNotFound; a missing API key wraps
// domain.ErrBackendUnavailable.
type InfoLookup interface {
	Summary(ctx context.Context, topic string) (domain.Summary, error)
	Weather(ctx context.Context, city string) (domain.WeatherReport, error)
}

// Clipboard provides clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Read() (string, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
