package domain

// Config mirrors ~/.jarvis/config.yaml.
type Config struct {
	ConfigFormatVersion string               `yaml:"config_format_version"`
	Assistant           AssistantSettings    `yaml:"assistant"`
	Workspace           WorkspaceSettings    `yaml:"workspace"`
	Classifier          ClassifierSettings   `yaml:"classifier"`
	Models              []ModelDefinition    `yaml:"models"`
	AI                  AISettings           `yaml:"ai"`
	Files               FileSettings         `yaml:"files"`
	Confirmation        ConfirmationSettings `yaml:"confirmation"`
	History             HistorySettings      `yaml:"history"`
	Security            SecuritySettings     `yaml:"security"`
	AppAliases          map[string]string    `yaml:"app_aliases"`
	Web                 WebSettings          `yaml:"web"`
	Server              ServerSettings       `yaml:"server"`
}

// AssistantSettings controls the turn loop.
type AssistantSettings struct {
	Name               string   `yaml:"name"`
	ExitWords          []string `yaml:"exit_words"`
	ConversationWindow int      `yaml:"conversation_window"`
}

// WorkspaceSettings defines where files live and where searches look.
type WorkspaceSettings struct {
	Dir              string   `yaml:"dir"`
	AllowedRoots     []string `yaml:"allowed_roots"`
	SearchDirs       []string `yaml:"search_dirs"`
	MaxSearchResults int      `yaml:"max_search_results"`
}

// ClassifierSettings configures the strategy chain.
type ClassifierSettings struct {
	// Backends lists model names tried in order before the rule strategy.
	// Empty means every configured model, in declaration order.
	Backends     []string `yaml:"backends"`
	CacheEnabled bool     `yaml:"cache_enabled"`
	CacheSize    int      `yaml:"cache_size"`
	CacheTTL     string   `yaml:"cache_ttl"`
}

// AISettings holds transport and content-generation options shared by backends.
type AISettings struct {
	Proxy        string `yaml:"proxy"`
	ContentModel string `yaml:"content_model"`
}

// FileSettings controls document creation.
type FileSettings struct {
	EnabledTypes    []string `yaml:"enabled_types"`
	OpenAfterCreate bool     `yaml:"open_after_create"`
}

// ConfirmationSettings controls the destructive-action prompt.
type ConfirmationSettings struct {
	// Policy is "always" or "never" for file deletion.
	Policy      string   `yaml:"policy"`
	Affirmative []string `yaml:"affirmative"`
}

// HistorySettings controls the command log.
type HistorySettings struct {
	Backend    string `yaml:"backend"`
	File       string `yaml:"file"`
	MaxEntries int    `yaml:"max_entries"`
}

// SecuritySettings points at optional extra sanitizer rules.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// WebSettings controls browser actions.
type WebSettings struct {
	SearchURL string `yaml:"search_url"`
	HomeURL   string `yaml:"home_url"`
	// KnowledgeURL is a Wikipedia REST summary prefix; the page title is appended.
	KnowledgeURL  string `yaml:"knowledge_url"`
	WeatherURL    string `yaml:"weather_url"`
	WeatherKeyEnv string `yaml:"weather_api_key_env"`
	WeatherUnits  string `yaml:"weather_units"`
}

// ServerSettings configures `jarvis serve`.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}
