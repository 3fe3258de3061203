package config

import (
	"fmt"

	"github.com/standardbeagle/cptoyc/internal/cerrors"
)

// Validator rejects configuration values no default can repair (a
// negative MaxErrors) and fills zero-valued fields with their smart
// defaults.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart
// defaults. Returns an error if a value cannot be made sensible by a
// default alone (currently: MaxErrors must be non-negative).
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateDiagnosticsConfig(&cfg.Diagnostics); err != nil {
		return cerrors.NewConfigError("diagnostics", fmt.Sprintf("%d", cfg.Diagnostics.MaxErrors), err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateDiagnosticsConfig(diag *DiagnosticsConfig) error {
	if diag.MaxErrors < 0 {
		return fmt.Errorf("MaxErrors cannot be negative, got %d", diag.MaxErrors)
	}
	return nil
}

// setSmartDefaults fills in zero-valued fields that have a sensible
// non-zero default instead of meaning "disabled".
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Lexer.TabStop == 0 {
		cfg.Lexer.TabStop = 8
	}
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
