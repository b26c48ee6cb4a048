package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkspacePath points at a workspace .hcl file or a directory of
	// them. Empty means running unconfigured: only built-ins are served.
	WorkspacePath string

	// Manager and Service select what to look up. With no manager the app
	// lists everything discovered; with a manager and no service it lists
	// that manager's services.
	Manager string
	Service string

	// ConfigLabel restricts the search to one exact config.
	ConfigLabel string

	// SearchProject consults the active project config during search.
	SearchProject bool

	// LocalOnly disables the global fallback scan.
	LocalOnly bool

	// ProbeURL, when set together with a found transport service, probes
	// the URL with it.
	ProbeURL string

	// Reporter names the reporter service used for output.
	Reporter string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Reporter == "" {
		cfg.Reporter = "console"
	}
	return &cfg, nil
}
