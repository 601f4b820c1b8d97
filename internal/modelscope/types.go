package modelscope

// Service is one MCP service descriptor as returned by the ModelScope
// operational services API. The API payload carries more fields than
// these; only the ones the sync needs are decoded and the rest are
// ignored, since descriptors are read-only inputs.
type Service struct {
	ID          string            `json:"id"`           // Machine identifier, e.g. "@modelscope/server1"
	Name        string            `json:"name"`         // Default display name
	ChineseName string            `json:"chinese_name"` // Preferred Chinese display name
	Locales     map[string]Locale `json:"locales"`      // Localized names keyed by language tag
	Operational []OperationalURL  `json:"operational_urls"`

	// Command-based servers ship an executable instead of a URL.
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// Locale holds the localized fields for one language tag.
type Locale struct {
	Name string `json:"name"`
}

// OperationalURL is one reachable endpoint for an HTTP-transport service.
type OperationalURL struct {
	URL string `json:"url"`
}

// servicesResponse mirrors the API envelope: {"Data": {"Result": [...]}}.
type servicesResponse struct {
	Data struct {
		Result []Service `json:"Result"`
	} `json:"Data"`
}
