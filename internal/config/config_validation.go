package config

import "fmt"

// applyDefaults fills every unset field with its documented default. Called
// after all sources are merged so that any explicitly supplied value wins.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvProduction
	}
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = DefaultTokenSignKey
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.FrontendOrigin == "" {
		cfg.Server.FrontendOrigin = DefaultFrontendOrigin
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}
	if cfg.Email.Timeout == 0 {
		cfg.Email.Timeout = DefaultMailTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Environment != EnvProduction && cfg.App.Environment != EnvDevelopment {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	// the fallback sign key is a convenience for local development only
	if !cfg.App.IsDevelopment() && cfg.App.TokenSignKey == DefaultTokenSignKey {
		return fmt.Errorf("%w: the fallback token sign key must be overridden outside development", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
