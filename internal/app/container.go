package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/doeshing/jarvis-go/internal/application/assistant"
	"github.com/doeshing/jarvis-go/internal/application/classify"
	"github.com/doeshing/jarvis-go/internal/application/dispatch"
	"github.com/doeshing/jarvis-go/internal/application/doctor"
	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/infrastructure/ai"
	"github.com/doeshing/jarvis-go/internal/infrastructure/cache"
	"github.com/doeshing/jarvis-go/internal/infrastructure/config"
	"github.com/doeshing/jarvis-go/internal/infrastructure/documents"
	"github.com/doeshing/jarvis-go/internal/infrastructure/handlers"
	"github.com/doeshing/jarvis-go/internal/infrastructure/history"
	"github.com/doeshing/jarvis-go/internal/infrastructure/lookup"
	"github.com/doeshing/jarvis-go/internal/infrastructure/security"
	"github.com/doeshing/jarvis-go/internal/infrastructure/system"
	"github.com/doeshing/jarvis-go/internal/pkg/logger"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Options controls how the container is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogOutput  io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Core           *assistant.Core
	Dispatcher     *dispatch.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Backends       []string
	Logger         ports.Logger

	closers []io.Closer
}

// BuildContainer constructs the dependency graph. Failing to create the
// workspace is fatal; unusable backends are skipped.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.New(opts.LogOutput, opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgLoader.Path(), err)
	}

	if err := os.MkdirAll(cfg.Workspace.Dir, domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create workspace %s: %w", cfg.Workspace.Dir, err)
	}

	httpClient, err := ai.NewHTTPClient(cfg.AI.Proxy, domain.DefaultHTTPClientTimeout)
	if err != nil {
		return nil, err
	}
	factory := ai.NewFactory(httpClient)

	strategies, backends := buildStrategies(cfg, factory, log)
	classifier := &classify.Service{
		Strategies: strategies,
		Fallback:   ai.NewRuleClassifier().Name(),
		Logger:     log,
	}
	if cfg.Classifier.CacheEnabled {
		classifier.Cache = cache.NewMemoCache(cfg.GetCacheSize(), cfg.GetCacheTTL())
	}

	var contentCompleter ports.Completer
	if model, ok := cfg.ContentModel(); ok {
		if completer, err := factory.ForModel(model); err == nil {
			contentCompleter = completer
		} else {
			log.Info("content backend unavailable, using templates", map[string]interface{}{"model": model.Name, "error": err.Error()})
		}
	}
	generator := ai.NewGenerator(contentCompleter, cfg.GetAssistantName(), log)

	store, closers, err := buildHistoryStore(cfg, log)
	if err != nil {
		return nil, err
	}

	sanitizer, err := security.NewSanitizer(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("sanitizer rules file ignored", map[string]interface{}{"path": cfg.Security.RulesFile, "error": err.Error()})
		if sanitizer, err = security.NewSanitizer(""); err != nil {
			return nil, err
		}
	}
	validator := security.NewValidator(cfg.Workspace.Dir, cfg.Workspace.AllowedRoots, sanitizer)

	window := domain.NewConversationWindow(cfg.GetConversationWindow())
	opener := system.NewOpener()
	clipboard := system.NewClipboard()
	files := &handlers.FileHandler{
		Config:    cfg,
		Validator: validator,
		Writer:    documents.NewWriter(),
		Generator: generator,
		Opener:    opener,
		Logger:    log,
	}
	handlerMap := map[domain.Intent]ports.Handler{
		domain.IntentFileCreation:   files,
		domain.IntentFileManagement: files,
		domain.IntentSystemControl: &handlers.SystemHandler{
			Config:    cfg,
			Launcher:  system.NewLauncher(),
			Clipboard: clipboard,
			Backends:  backends,
			Logger:    log,
		},
		domain.IntentWebBrowse: &handlers.WebHandler{
			Config: cfg,
			Opener: opener,
			Lookup: lookup.NewClient(httpClient, cfg),
			Logger: log,
		},
		domain.IntentConversation: &handlers.ConversationHandler{
			AssistantName: cfg.GetAssistantName(),
			Generator:     generator,
			History:       window.Messages,
			Logger:        log,
		},
		domain.IntentHelp: handlers.HelpHandler{},
	}

	dispatcher := dispatch.NewService(handlerMap, cfg.GetAffirmativeTokens(), log)
	core := assistant.NewCore(ctx, cfg, classifier, dispatcher, store, window, log)

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Core:           core,
		Dispatcher:     dispatcher,
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Completers:     factory,
			Clipboard:      clipboard,
		},
		HistoryStore: store,
		Backends:     backends,
		Logger:       log,
		closers:      closers,
	}, nil
}

// Close releases resources such as the SQLite handle.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// buildStrategies returns remote classifiers in configured order followed by the rules.
func buildStrategies(cfg domain.Config, factory ports.CompleterFactory, log ports.Logger) ([]ports.ClassifierStrategy, []string) {
	var (
		strategies []ports.ClassifierStrategy
		names      []string
		skipped    []error
	)
	for _, model := range cfg.ClassifierModels() {
		completer, err := factory.ForModel(model)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", model.Name, err))
			continue
		}
		strategies = append(strategies, ai.NewRemoteClassifier(completer, model.Temperature, model.MaxTokens))
		names = append(names, model.Name)
	}
	if err := errors.Join(skipped...); err != nil {
		log.Debug("classifier backends skipped", map[string]interface{}{"error": err.Error()})
	}
	return append(strategies, ai.NewRuleClassifier()), names
}

func buildHistoryStore(cfg domain.Config, log ports.Logger) (ports.HistoryRepository, []io.Closer, error) {
	if cfg.GetHistoryBackend() == domain.HistoryBackendSQLite {
		store, err := history.NewSQLiteStore(cfg.History.File, cfg.GetHistoryMaxEntries())
		if err != nil {
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		return store, []io.Closer{store}, nil
	}
	store := history.NewFileStore(cfg.History.File, cfg.GetHistoryMaxEntries())
	store.Logger = log
	return store, nil, nil
}
