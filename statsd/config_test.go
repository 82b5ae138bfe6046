package statsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enable)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, uint16(8125), cfg.Port)
	assert.Empty(t, cfg.NodeTag)
	assert.Empty(t, cfg.Namespace)
	assert.Equal(t, 60, cfg.PeriodSeconds)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.Minute, cfg.Period())
}

func TestConfigPeriod(t *testing.T) {
	for _, tc := range []struct {
		seconds  int
		valid    bool
		expected time.Duration
	}{
		{5, true, 5 * time.Second},
		{3600, true, time.Hour},
		{4, false, 5 * time.Second},
		{0, false, 5 * time.Second},
		{-10, false, 5 * time.Second},
		{3601, false, time.Hour},
	} {
		cfg := DefaultConfig()
		cfg.PeriodSeconds = tc.seconds

		if tc.valid {
			assert.NoError(t, cfg.Validate(), "period %d", tc.seconds)
		} else {
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidPeriod, "period %d", tc.seconds)
		}
		assert.Equal(t, tc.expected, cfg.Period(), "period %d", tc.seconds)
	}
}
