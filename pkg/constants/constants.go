package constants

const (
	AppName = "clinic"

	ConfigName   = "clinic"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every config key when read from the environment,
	// e.g. CLINIC_API_BASE_URL overrides api.base_url.
	EnvPrefix = "CLINIC"

	// TokenStorageKey is the fixed key the session token is persisted under.
	TokenStorageKey = "clinic_token"

	HeaderRequestID = "X-Request-Id"
)
