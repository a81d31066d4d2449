package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRM_API_BASE_URL", "")
	t.Setenv("CRM_HOME", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", s.APIBaseURL)
	assert.Equal(t, 20*time.Second, s.NotifyInterval)
	assert.Equal(t, 15*time.Second, s.RequestTimeout)
	assert.False(t, s.NonInteractive)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRM_API_BASE_URL", " https://crm.example.com/api/ ")
	t.Setenv("CRM_HOME", "/tmp/crm-home")
	t.Setenv("CRM_NON_INTERACTIVE", "true")
	t.Setenv("CRM_NOTIFY_INTERVAL", "5s")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com/api", s.APIBaseURL)
	assert.Equal(t, "/tmp/crm-home", s.Home)
	assert.True(t, s.NonInteractive)
	assert.Equal(t, 5*time.Second, s.NotifyInterval)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRM_NOTIFY_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestSanitize_Guardrails(t *testing.T) {
	s := Settings{APIBaseURL: "   ", NotifyInterval: time.Millisecond}
	s.Sanitize()
	assert.Equal(t, "http://localhost:3000", s.APIBaseURL)
	assert.Equal(t, 20*time.Second, s.NotifyInterval)
	assert.Equal(t, 15*time.Second, s.RequestTimeout)
}

func TestContextInjection(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { MustFromContext(context.Background()) })

	cfg := &GlobalConfig{ServerURL: "http://crm"}
	ctx := InjectConfig(context.Background(), cfg)
	assert.Same(t, cfg, MustFromContext(ctx))
}
