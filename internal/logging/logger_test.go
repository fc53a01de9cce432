package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "feedback", "info")
	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "feedback", entry["service"])
	assert.Equal(t, "visible", entry["message"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ok", entry["uri"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name      string
		echo      bool
		err       error
		wantLevel string
	}{
		{name: "echo logs every statement", echo: true, wantLevel: "debug"},
		{name: "quiet mode skips fast queries", echo: false, wantLevel: ""},
		{name: "failures are always logged", echo: false, err: errors.New("boom"), wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			gl := NewGormLogger(zerolog.New(&buf), tt.echo)
			gl.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}
			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "SELECT 1", entry["sql"])
		})
	}
}

func TestGormLogger_SilentMode(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf), true).LogMode(gormlogger.Silent)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	assert.Empty(t, buf.String())
}
