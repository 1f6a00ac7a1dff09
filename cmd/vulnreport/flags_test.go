package main

import (
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvParsed(t *testing.T) {
	t.Setenv("VULNREPORT_TEST_VALUE", "7")
	assert.Equal(t, 7, envParsed("VULNREPORT_TEST_VALUE", strconv.Atoi, 3))
	assert.Equal(t, 3, envParsed("VULNREPORT_TEST_UNSET", strconv.Atoi, 3))

	// Unparseable values keep the default
	t.Setenv("VULNREPORT_TEST_VALUE", "not a number")
	assert.Equal(t, 3, envParsed("VULNREPORT_TEST_VALUE", strconv.Atoi, 3))

	t.Setenv("VULNREPORT_TEST_FLOAT", "0.75")
	assert.InDelta(t, 0.75, envParsed("VULNREPORT_TEST_FLOAT", parseFloat, 0.5), 1e-9)

	t.Setenv("VULNREPORT_TEST_SEED", "99")
	assert.Equal(t, int64(99), envParsed("VULNREPORT_TEST_SEED", parseInt64, int64(42)))
}

func TestEnvString(t *testing.T) {
	t.Setenv("VULNREPORT_TEST_STR", "survey.xlsx")
	assert.Equal(t, "survey.xlsx", envString("VULNREPORT_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envString("VULNREPORT_TEST_STR_UNSET", "fallback"))
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	logger := setupLogger("debug", "text")
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	logger = setupLogger("warn", "json")
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))

	// Unknown level falls back to info
	logger = setupLogger("verbose", "text")
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
}
