package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"trail/config"
	deliverycontext "trail/internal/delivery/context"
	domainerrors "trail/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated"},
		{name: "propagated", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := NewRequestIDMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.incoming != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			var seen string
			err := m.Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				deliverycontext.GetLogger(c.Request().Context()).Info("inside")

				return nil
			})(c)
			require.NoError(t, err)

			require.NotEmpty(t, seen)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, seen)
			}
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, seen, deliverycontext.GetRequestID(c))
			assert.Contains(t, buf.String(), `"request_id":"`+seen+`"`)
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		handler   echo.HandlerFunc
		wantLevel string
	}{
		{
			name:    "success silent outside debug",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		},
		{
			name:      "success logged in debug",
			debug:     true,
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLevel: "INFO",
		},
		{
			name:      "client error",
			handler:   func(echo.Context) error { return domainerrors.ErrInvalidCoordinate },
			wantLevel: "WARN",
		},
		{
			name:      "server error",
			handler:   func(echo.Context) error { return domainerrors.ErrInternalError },
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			m := NewLoggerMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)), cfg)

			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/scene", nil), httptest.NewRecorder())
			_ = m.Handle(tt.handler)(c)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"uri":"/api/v1/scene"`)
		})
	}
}
