package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndSetDefaultsFillsTabStop(t *testing.T) {
	cfg := &Config{}
	v := NewValidator()
	require.NoError(t, v.ValidateAndSetDefaults(cfg))
	assert.Equal(t, 8, cfg.Lexer.TabStop)
}

func TestValidateAndSetDefaultsRejectsNegativeMaxErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Diagnostics.MaxErrors = -1

	err := ValidateConfig(cfg)
	assert.Error(t, err)
}

func TestValidateAndSetDefaultsPreservesExplicitTabStop(t *testing.T) {
	cfg := defaultConfig()
	cfg.Lexer.TabStop = 2

	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, 2, cfg.Lexer.TabStop)
}
