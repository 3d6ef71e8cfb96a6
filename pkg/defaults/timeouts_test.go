package defaults

import (
	"testing"
	"time"
)

func TestPollTimeoutBelowInterval(t *testing.T) {
	if PollTimeout >= PollInterval {
		t.Errorf("PollTimeout (%v) must be below PollInterval (%v)", PollTimeout, PollInterval)
	}
}

func TestServerTimeoutsPositive(t *testing.T) {
	for name, d := range map[string]time.Duration{
		"ServerReadTimeout":     ServerReadTimeout,
		"ServerWriteTimeout":    ServerWriteTimeout,
		"ServerIdleTimeout":     ServerIdleTimeout,
		"ServerShutdownTimeout": ServerShutdownTimeout,
	} {
		if d <= 0 {
			t.Errorf("%s must be positive", name)
		}
	}
}
