package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for config and history files (rw-------)
	SecureFilePermissions = 0o600
	// DocumentPermissions is the permission for files created in the workspace (rw-r--r--)
	DocumentPermissions = 0o644
)

// Timeout constants
const (
	// DefaultBackendTimeout bounds a single completion call
	DefaultBackendTimeout = 15 * time.Second
	// DefaultHTTPClientTimeout is the timeout for the shared HTTP client
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Limit constants
const (
	// DefaultMaxHistoryEntries is how many history entries are retained
	DefaultMaxHistoryEntries = 100
	// HistoryExcerptLength is the rune limit for stored results
	HistoryExcerptLength = 100
	// DefaultMaxSearchResults caps find_file matches
	DefaultMaxSearchResults = 10
	// DefaultClassifierCacheSize is the memo cache capacity
	DefaultClassifierCacheSize = 50
	// DefaultConversationWindow holds three exchanges
	DefaultConversationWindow = 6
	// MaxFilenameLength is the longest accepted filename
	MaxFilenameLength = 255
	// MaxTopicFilenameLength caps the stem derived from a topic
	MaxTopicFilenameLength = 50
	// DefaultClassifierMaxTokens bounds the JSON completion
	DefaultClassifierMaxTokens = 500
	// DefaultClassifierTemperature keeps classification near-deterministic
	DefaultClassifierTemperature = 0.1
)

// Defaults for paths and URLs
const (
	DefaultWorkspaceDirName = "JARVIS_Workspace"
	DefaultHistoryFileName  = ".jarvis_history.json"
	DefaultSearchURL        = "https://www.google.com/search?q="
	DefaultHomeURL          = "https://www.google.com"
	DefaultKnowledgeURL     = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	DefaultWeatherURL       = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherKeyEnv    = "OPENWEATHER_API_KEY"
	DefaultServerAddr       = "127.0.0.1:8765"
	DefaultAssistantName    = "JARVIS"
)

// History backends
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// Confirmation policies
const (
	ConfirmAlways = "always"
	ConfirmNever  = "never"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
