package frame

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"trail/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name         string
		frame        *config.FrameConfig
		wantInterval time.Duration
	}{
		{name: "default rate", wantInterval: DefaultInterval},
		{name: "configured rate", frame: &config.FrameConfig{FPS: 20}, wantInterval: 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			scheduler := NewScheduler(SchedulerParams{
				Lc:     lc,
				Config: &config.Config{Frame: tt.frame},
				Logger: slog.New(slog.DiscardHandler),
			})
			assert.Equal(t, tt.wantInterval, scheduler.Interval())

			lc.RequireStart()

			ran := make(chan struct{})
			scheduler.RequestFrame(func(time.Time) { close(ran) })
			select {
			case <-ran:
			case <-time.After(time.Second):
				require.FailNow(t, "frame did not run")
			}

			require.NoError(t, lc.Stop(context.Background()))
		})
	}
}
