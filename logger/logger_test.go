package logger

import (
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingTransport struct {
	events []*sentry.Event
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}
func (t *recordingTransport) SendEvent(e *sentry.Event)      { t.events = append(t.events, e) }
func (t *recordingTransport) Flush(time.Duration) bool       { return true }

func TestNewWithoutSentry(t *testing.T) {
	log, err := New(Config{Environment: "development"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(Config{Environment: "production"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestSentryHookReportsErrors(t *testing.T) {
	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core, zap.Hooks(sentryHook(hub)))
	log.Debug("ignored")
	log.Info("loaded profile")
	log.Error("synthesis failed")
	assert.Equal(t, 2, logs.Len())

	require.Len(t, transport.events, 1)
	e := transport.events[0]
	assert.Equal(t, "synthesis failed", e.Message)
	assert.Equal(t, sentry.LevelError, e.Level)
	if assert.Len(t, e.Breadcrumbs, 1) {
		assert.Equal(t, "loaded profile", e.Breadcrumbs[0].Message)
	}
}

func TestSentryHookWithoutClient(t *testing.T) {
	hook := sentryHook(sentry.NewHub(nil, sentry.NewScope()))
	assert.NoError(t, hook(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}))
}
