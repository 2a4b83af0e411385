package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "insurance_pc.db", cfg.Warehouse.Path)
	assert.EqualValues(t, 42, cfg.Generate.Seed)
	assert.Equal(t, 5000, cfg.Generate.Policies)
	assert.Equal(t, 3000, cfg.Generate.Claims)
	assert.Equal(t, "evals/questions.yaml", cfg.Eval.QuestionsPath)
	assert.Equal(t, "evals/gold_answers.yaml", cfg.Eval.GoldAnswersPath)
	assert.InDelta(t, 0.05, cfg.Eval.DefaultTolerance, 1e-9)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INSBENCH_WAREHOUSE_PATH", "/tmp/other.db")
	t.Setenv("INSBENCH_GENERATE_SEED", "7")
	t.Setenv("INSBENCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Warehouse.Path)
	assert.EqualValues(t, 7, cfg.Generate.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))

	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
