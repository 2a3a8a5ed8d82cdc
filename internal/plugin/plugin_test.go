package plugin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syshen/serverless-plugin-slack/internal/config"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
	"github.com/syshen/serverless-plugin-slack/internal/payloads"
	"github.com/syshen/serverless-plugin-slack/internal/util"
	"github.com/syshen/serverless-plugin-slack/internal/webhooks"
)

type dispatched struct {
	url     string
	message string
}

// mockDispatcher records what would have been sent
type mockDispatcher struct {
	mu    sync.Mutex
	calls []dispatched
}

func (m *mockDispatcher) Dispatch(_ context.Context, url string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, dispatched{url: url, message: message})
}

func resolveConfig(t *testing.T, slack map[string]any, stage string) *config.Configuration {
	t.Helper()
	cfg, err := config.Resolve(map[string]any{
		"service": "svc",
		"custom":  map[string]any{"slack": slack},
	}, config.Options{Stage: stage, Function: "foo", AmbientUser: "ambient"})
	require.NoError(t, err)
	return cfg
}

func TestPlugin_AfterDeployFunction(t *testing.T) {
	t.Run("DefaultTemplate", func(t *testing.T) {
		cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y", "user": "alice"}, "dev")
		dispatcher := &mockDispatcher{}

		New(cfg, dispatcher).AfterDeployFunction(context.Background())

		require.Len(t, dispatcher.calls, 1)
		assert.Equal(t, "https://x/y", dispatcher.calls[0].url)
		assert.Equal(t, "`alice` deployed function `foo` to environment `dev` in service `svc`", dispatcher.calls[0].message)
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		cfg := resolveConfig(t, map[string]any{
			"webhook_url":             "https://x/y",
			"function_deploy_message": "{{name}}@{{stage}} by {{user}} ({{build}})",
		}, "dev")
		dispatcher := &mockDispatcher{}

		New(cfg, dispatcher).AfterDeployFunction(context.Background())

		require.Len(t, dispatcher.calls, 1)
		assert.Equal(t, "foo@dev by ambient ({{build}})", dispatcher.calls[0].message)
	})
}

func TestPlugin_AfterDeployService(t *testing.T) {
	cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y", "user": "alice"}, "dev")
	dispatcher := &mockDispatcher{}

	New(cfg, dispatcher).AfterDeployService(context.Background())

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "`alice` deployed service `svc` to environment `dev`", dispatcher.calls[0].message)
}

func TestPlugin_StageFilter(t *testing.T) {
	t.Run("OnlyOnOtherStageSendsNothing", func(t *testing.T) {
		cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y", "only_on": "prod"}, "dev")
		dispatcher := &mockDispatcher{}
		p := New(cfg, dispatcher)

		p.AfterDeployFunction(context.Background())
		p.AfterDeployService(context.Background())

		assert.Empty(t, dispatcher.calls)
	})

	t.Run("OnlyOnMatchingStageSends", func(t *testing.T) {
		cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y", "only_on": "prod"}, "prod")
		dispatcher := &mockDispatcher{}

		New(cfg, dispatcher).AfterDeployService(context.Background())

		assert.Len(t, dispatcher.calls, 1)
	})

	t.Run("UnsetFilterAlwaysSendsOncePerInvocation", func(t *testing.T) {
		cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y"}, "staging")
		dispatcher := &mockDispatcher{}
		p := New(cfg, dispatcher)

		for i := 0; i < 3; i++ {
			p.AfterDeployFunction(context.Background())
		}

		assert.Len(t, dispatcher.calls, 3)
	})
}

func TestPlugin_Hooks(t *testing.T) {
	cfg := resolveConfig(t, map[string]any{"webhook_url": "https://x/y"}, "dev")
	dispatcher := &mockDispatcher{}
	p := New(cfg, dispatcher)

	assert.Equal(t, []string{"after:deploy:deploy", "after:deploy:function:deploy"}, p.HookNames())

	require.NoError(t, p.Run(context.Background(), constants.HookAfterDeployService))
	require.NoError(t, p.Run(context.Background(), constants.HookAfterDeployFunction))
	assert.Len(t, dispatcher.calls, 2)

	err := p.Run(context.Background(), "before:deploy:deploy")
	assert.True(t, errors.Is(err, util.ErrCodeUnknownHook))
	assert.Len(t, dispatcher.calls, 2)
}

func TestPlugin_EndToEnd(t *testing.T) {
	t.Run("OnePostWithRenderedBody", func(t *testing.T) {
		var mu sync.Mutex
		var bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			bodies = append(bodies, string(body))
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		cfg := resolveConfig(t, map[string]any{"webhook_url": server.URL, "user": "alice"}, "dev")
		logger, hook := test.NewNullLogger()
		sender := webhooks.NewWebhookSender(&webhooks.HttpWebhook{})
		sender.Logger = logger

		require.NoError(t, New(cfg, sender).Run(context.Background(), constants.HookAfterDeployFunction))
		sender.Wait()

		require.Len(t, bodies, 1)
		expected, err := payloads.SlackPack("`alice` deployed function `foo` to environment `dev` in service `svc`")
		require.NoError(t, err)
		assert.JSONEq(t, string(expected), bodies[0])
		assert.Equal(t, constants.NotifySucceeded, hook.LastEntry().Message)
	})

	t.Run("FilteredStageMakesNoRequest", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		cfg := resolveConfig(t, map[string]any{"webhook_url": server.URL, "only_on": "prod"}, "dev")
		logger, hook := test.NewNullLogger()
		sender := webhooks.NewWebhookSender(&webhooks.HttpWebhook{})
		sender.Logger = logger

		require.NoError(t, New(cfg, sender).Run(context.Background(), constants.HookAfterDeployFunction))
		sender.Wait()

		assert.Equal(t, 0, requests)
		assert.Empty(t, hook.AllEntries(), "a filtered event is not logged")
	})

	t.Run("ServerErrorIsLoggedNotRaised", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfg := resolveConfig(t, map[string]any{"webhook_url": server.URL}, "dev")
		logger, hook := test.NewNullLogger()
		sender := webhooks.NewWebhookSender(&webhooks.HttpWebhook{})
		sender.Logger = logger

		assert.NotPanics(t, func() {
			assert.NoError(t, New(cfg, sender).Run(context.Background(), constants.HookAfterDeployService))
			sender.Wait()
		})
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, constants.NotifyFailed, hook.LastEntry().Message)
	})
}
