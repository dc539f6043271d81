package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Default(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2, cfg.DebounceCount)
	assert.GreaterOrEqual(t, cfg.MaxWorkers, 1)
}

func Test_FromEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("INP_DEBOUNCE_COUNT", "3")
		t.Setenv("INP_MAX_WORKERS", "4")

		cfg := FromEnv()
		assert.Equal(t, 3, cfg.DebounceCount)
		assert.Equal(t, 4, cfg.MaxWorkers)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		t.Setenv("INP_DEBOUNCE_COUNT", "zero")
		t.Setenv("INP_MAX_WORKERS", "-2")

		cfg := FromEnv()
		assert.Equal(t, Default().DebounceCount, cfg.DebounceCount)
		assert.Equal(t, Default().MaxWorkers, cfg.MaxWorkers)
	})
}
