package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Rich Domain Model: 設定相關的預設值與查詢邏輯集中在 Config 上

// FindModelByName searches for a model by its name
// Returns the model definition and true if found, empty model and false otherwise
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// ClassifierModels returns the backends the classifier chain should try, in order.
// Unknown names in classifier.backends are skipped.
func (c *Config) ClassifierModels() []ModelDefinition {
	if len(c.Classifier.Backends) == 0 {
		return append([]ModelDefinition(nil), c.Models...)
	}
	var models []ModelDefinition
	for _, name := range c.Classifier.Backends {
		if model, ok := c.FindModelByName(name); ok {
			models = append(models, model)
		}
	}
	return models
}

// ContentModel returns the backend used for document and chat generation.
// Falls back to the first classifier backend.
func (c *Config) ContentModel() (ModelDefinition, bool) {
	if c.AI.ContentModel != "" {
		return c.FindModelByName(c.AI.ContentModel)
	}
	models := c.ClassifierModels()
	if len(models) == 0 {
		return ModelDefinition{}, false
	}
	return models[0], true
}

// GetAssistantName returns the display name
func (c *Config) GetAssistantName() string {
	if c.Assistant.Name == "" {
		return DefaultAssistantName
	}
	return c.Assistant.Name
}

// GetExitWords returns the words that end the session
func (c *Config) GetExitWords() []string {
	if len(c.Assistant.ExitWords) == 0 {
		return []string{"exit", "quit", "shutdown"}
	}
	return c.Assistant.ExitWords
}

// IsExitWord reports whether input (already trimmed) ends the session
func (c *Config) IsExitWord(input string) bool {
	input = strings.ToLower(input)
	return slices.ContainsFunc(c.GetExitWords(), func(w string) bool {
		return strings.ToLower(w) == input
	})
}

// GetConversationWindow returns how many chat messages are kept
func (c *Config) GetConversationWindow() int {
	if c.Assistant.ConversationWindow <= 0 {
		return DefaultConversationWindow
	}
	return c.Assistant.ConversationWindow
}

// GetMaxSearchResults returns the cap on find_file matches
func (c *Config) GetMaxSearchResults() int {
	if c.Workspace.MaxSearchResults <= 0 {
		return DefaultMaxSearchResults
	}
	return c.Workspace.MaxSearchResults
}

// GetCacheSize returns the classifier memo capacity
func (c *Config) GetCacheSize() int {
	if c.Classifier.CacheSize <= 0 {
		return DefaultClassifierCacheSize
	}
	return c.Classifier.CacheSize
}

// GetCacheTTL parses classifier.cache_ttl; zero means entries never expire
func (c *Config) GetCacheTTL() time.Duration {
	if c.Classifier.CacheTTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(c.Classifier.CacheTTL)
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}

// GetHistoryMaxEntries returns the history ring size
func (c *Config) GetHistoryMaxEntries() int {
	if c.History.MaxEntries <= 0 {
		return DefaultMaxHistoryEntries
	}
	return c.History.MaxEntries
}

// GetHistoryBackend returns json or sqlite
func (c *Config) GetHistoryBackend() string {
	if strings.EqualFold(c.History.Backend, HistoryBackendSQLite) {
		return HistoryBackendSQLite
	}
	return HistoryBackendJSON
}

// RequiresDeleteConfirmation reports whether deletions wait for a yes
func (c *Config) RequiresDeleteConfirmation() bool {
	return !strings.EqualFold(c.Confirmation.Policy, ConfirmNever)
}

// GetAffirmativeTokens returns the answers that approve a pending action
func (c *Config) GetAffirmativeTokens() []string {
	if len(c.Confirmation.Affirmative) == 0 {
		return []string{"yes", "y"}
	}
	return c.Confirmation.Affirmative
}

// GetEnabledFileTypes returns the extensions file creation may produce
func (c *Config) GetEnabledFileTypes() []string {
	if len(c.Files.EnabledTypes) == 0 {
		return []string{"txt", "py", "docx", "xlsx", "pdf"}
	}
	return c.Files.EnabledTypes
}

// IsFileTypeEnabled checks an extension without the leading dot
func (c *Config) IsFileTypeEnabled(ext string) bool {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return slices.ContainsFunc(c.GetEnabledFileTypes(), func(t string) bool {
		return strings.TrimPrefix(strings.ToLower(t), ".") == ext
	})
}

// GetSearchURL returns the web search prefix
func (c *Config) GetSearchURL() string {
	if c.Web.SearchURL == "" {
		return DefaultSearchURL
	}
	return c.Web.SearchURL
}

// GetHomeURL returns the page opened for an empty search
func (c *Config) GetHomeURL() string {
	if c.Web.HomeURL == "" {
		return DefaultHomeURL
	}
	return c.Web.HomeURL
}

// GetKnowledgeURL returns the encyclopedia summary prefix
func (c *Config) GetKnowledgeURL() string {
	if c.Web.KnowledgeURL == "" {
		return DefaultKnowledgeURL
	}
	return c.Web.KnowledgeURL
}

// GetWeatherURL returns the current-weather endpoint
func (c *Config) GetWeatherURL() string {
	if c.Web.WeatherURL == "" {
		return DefaultWeatherURL
	}
	return c.Web.WeatherURL
}

// GetWeatherKeyEnv names the environment variable holding the weather API key
func (c *Config) GetWeatherKeyEnv() string {
	if c.Web.WeatherKeyEnv == "" {
		return DefaultWeatherKeyEnv
	}
	return c.Web.WeatherKeyEnv
}

// GetWeatherUnits returns metric or imperial
func (c *Config) GetWeatherUnits() string {
	if strings.EqualFold(c.Web.WeatherUnits, "imperial") {
		return "imperial"
	}
	return "metric"
}

// GetServerAddr returns the websocket listen address
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// ResolveAppAlias maps a spoken application name to the executable name
func (c *Config) ResolveAppAlias(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	aliases := c.AppAliases
	if len(aliases) == 0 {
		aliases = DefaultAppAliases()
	}
	if target, ok := aliases[key]; ok {
		return target
	}
	return strings.TrimSpace(name)
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	for _, name := range c.Classifier.Backends {
		if !c.HasModel(name) {
			return fmt.Errorf("classifier backend %s does not exist in models list", name)
		}
	}
	if c.AI.ContentModel != "" && !c.HasModel(c.AI.ContentModel) {
		return fmt.Errorf("content model %s does not exist in models list", c.AI.ContentModel)
	}
	return nil
}

// DefaultAppAliases is the built-in alias table
func DefaultAppAliases() map[string]string {
	return map[string]string{
		"visual studio code": "code",
		"vscode":             "code",
		"vs code":            "code",
		"word":               "winword",
		"excel":              "excel",
		"notepad":            "notepad",
		"calculator":         "calc",
		"chrome":             "chrome",
		"firefox":            "firefox",
		"browser":            "chrome",
	}
}
