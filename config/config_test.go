package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

func validConfig() Config {
	cfg := Default()
	cfg.InputPath = "survey.xlsx"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultSheetName, cfg.SheetName)
	assert.Equal(t, DefaultSimilarityThreshold, cfg.SimilarityThreshold)
	assert.Equal(t, DefaultMinimumWage, cfg.MinimumWage)
	assert.Equal(t, DefaultTopN, cfg.TopN)
	assert.Equal(t, RulesetSurvey2018, cfg.Ruleset)
	assert.Zero(t, cfg.IncomeFilterMultiple, "income filter disabled by default")
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input path", func(c *Config) { c.InputPath = "" }},
		{"missing sheet name", func(c *Config) { c.SheetName = "" }},
		{"missing csv path", func(c *Config) { c.OutputCSV = "" }},
		{"missing pdf path", func(c *Config) { c.OutputPDF = "" }},
		{"unknown ruleset", func(c *Config) { c.Ruleset = "leiden" }},
		{"threshold below zero", func(c *Config) { c.SimilarityThreshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"zero minimum wage", func(c *Config) { c.MinimumWage = 0 }},
		{"negative index cap", func(c *Config) { c.IndexCap = -1 }},
		{"zero top-N", func(c *Config) { c.TopN = 0 }},
		{"negative income filter", func(c *Config) { c.IncomeFilterMultiple = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err), "validation errors must be invalid-class")
		})
	}
}

func TestValidateAcceptsCappedRuleset(t *testing.T) {
	cfg := validConfig()
	cfg.Ruleset = RulesetCapped
	cfg.IncomeFilterMultiple = 1.5

	require.NoError(t, cfg.Validate())
}
