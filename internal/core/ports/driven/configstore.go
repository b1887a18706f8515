package driven

// ConfigStore persists user configuration (API key, model names, rate
// limit delay, directories) between runs.
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent.
	GetInt(key string) int

	// GetFloat retrieves a float value, 0 when absent.
	GetFloat(key string) float64

	// Set stores a value in memory.
	Set(key string, value any)

	// Save persists the current values.
	Save() error

	// Load re-reads the persisted values.
	Load() error
}

// Config keys used across the application.
const (
	ConfigKeyAPIKey         = "api_key"
	ConfigKeyChatModel      = "chat_model"
	ConfigKeyHelperModel    = "helper_model"
	ConfigKeyEmbeddingModel = "embedding_model"
	ConfigKeyBaseURL        = "base_url"
	// The embedding endpoint usually lives on a different gateway than
	// chat (OpenRouter does not serve /embeddings), so it carries its
	// own base URL and key. The key falls back to api_key; the URL
	// falls back to the embedding adapter's own default, never to
	// base_url.
	ConfigKeyEmbeddingBaseURL = "embedding_base_url"
	ConfigKeyEmbeddingAPIKey  = "embedding_api_key"
	ConfigKeyRequestDelay     = "request_delay_seconds"
	ConfigKeySourcesDir       = "sources_dir"
	ConfigKeyScriptsDir       = "scripts_dir"
)
