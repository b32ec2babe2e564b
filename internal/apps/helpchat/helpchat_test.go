package helpchat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReplier struct {
	reply string
	err   error
	got   []string
}

func (s *stubReplier) Reply(_ context.Context, message string) (string, error) {
	s.got = append(s.got, message)
	return s.reply, s.err
}

var _ apps.PublicPlugin = (*Plugin)(nil)

func newTestApp(replier Replier) *fiber.App {
	app := fiber.New()
	New(replier).RegisterPublicRoutes(app.Group("/api"), nil, &config.Config{})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/help/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestChatReplies(t *testing.T) {
	replier := &stubReplier{reply: "Vai ao Dashboard."}
	app := newTestApp(replier)

	status, body := post(t, app, `{"message":"  Onde vejo os gráficos?  "}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Vai ao Dashboard.", body["reply"])
	assert.Equal(t, []string{"Onde vejo os gráficos?"}, replier.got)
}

func TestChatRejectsEmptyAndLongMessages(t *testing.T) {
	replier := &stubReplier{reply: "x"}
	app := newTestApp(replier)

	status, body := post(t, app, `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, true, body["error"])

	status, _ = post(t, app, `{"message":"`+strings.Repeat("a", MaxMessageLength+1)+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Empty(t, replier.got)
}

func TestChatMapsGatewayErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ai.ErrRateLimited, http.StatusTooManyRequests},
		{ai.ErrQuotaExceeded, http.StatusPaymentRequired},
		{ai.ErrNotConfigured, http.StatusServiceUnavailable},
		{ai.ErrAnalysisFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(ai.Kind(tt.err), func(t *testing.T) {
			app := newTestApp(&stubReplier{err: tt.err})
			status, body := post(t, app, `{"message":"olá"}`)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, ai.UserMessage(tt.err), body["message"])
		})
	}
}

func TestChatWithoutReplier(t *testing.T) {
	app := newTestApp(nil)
	status, _ := post(t, app, `{"message":"olá"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestChatRateLimit(t *testing.T) {
	app := newTestApp(&stubReplier{reply: "ok"})

	for i := 0; i < 10; i++ {
		status, _ := post(t, app, `{"message":"olá"}`)
		require.Equal(t, http.StatusOK, status)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/help/chat", strings.NewReader(`{"message":"olá"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
