package summary

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "summary-test-secret"

func newTestApp(t *testing.T, svc *SummaryService) *fiber.App {
	t.Helper()

	handler := NewSummaryHandler(svc)
	app := fiber.New()
	p := app.Group("/api/p", middleware.JWTProtected(&config.Config{JWTSecret: testSecret}))
	p.Post("/summaries", handler.Create)
	p.Get("/summaries", handler.List)
	p.Post("/summaries/narrative", handler.Narrative)
	return app
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(t *testing.T, app *fiber.App, method, path, auth, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestCreateSummaryEndpoint(t *testing.T) {
	notifier := &recordingNotifier{enabled: true}
	svc, _ := newTestService(t, nil, notifier)
	user := uuid.New()
	seedRange(t, svc, user)
	app := newTestApp(t, svc)

	status, body := do(t, app, http.MethodPost, "/api/p/summaries", bearer(t, user),
		`{"period":"Semanal","start_date":"2024-05-02","end_date":"2024-05-03"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(2), body["entry_count"])
	assert.Equal(t, true, body["webhook_queued"])

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", summary["email"])
	assert.Equal(t, "Semanal", summary["period"])
	assert.Nil(t, summary["additional_email"])

	require.Len(t, notifier.sent(), 1)

	status, body = do(t, app, http.MethodGet, "/api/p/summaries", bearer(t, user), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestCreateSummaryEndpointValidation(t *testing.T) {
	notifier := &recordingNotifier{enabled: true}
	svc, _ := newTestService(t, nil, notifier)
	app := newTestApp(t, svc)

	status, body := do(t, app, http.MethodPost, "/api/p/summaries", bearer(t, uuid.New()),
		`{"period":"Semanal","start_date":"2024-05-05","end_date":"2024-05-03"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, true, body["error"])
	assert.Empty(t, notifier.sent())

	status, _ = do(t, app, http.MethodPost, "/api/p/summaries", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestNarrativeEndpointStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"rate limited", ai.ErrRateLimited, http.StatusTooManyRequests},
		{"quota", ai.ErrQuotaExceeded, http.StatusPaymentRequired},
		{"other", ai.ErrAnalysisFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrator := &stubNarrator{text: "<p>Do dia 02/05 a 03/05 estiveste calmo.</p>", err: tt.err}
			svc, _ := newTestService(t, narrator, nil)
			user := uuid.New()
			seedRange(t, svc, user)
			app := newTestApp(t, svc)

			status, body := do(t, app, http.MethodPost, "/api/p/summaries/narrative", bearer(t, user),
				`{"start_date":"2024-05-02","end_date":"2024-05-03"}`)
			assert.Equal(t, tt.status, status)
			if tt.err == nil {
				assert.Equal(t, "<p>Do dia 02/05 a 03/05 estiveste calmo.</p>", body["text_summary"])
				assert.Equal(t, float64(2), body["entry_count"])
			} else {
				assert.Equal(t, ai.UserMessage(tt.err), body["message"])
			}
		})
	}
}

func TestNarrativeEndpointEmptyRange(t *testing.T) {
	svc, _ := newTestService(t, &stubNarrator{text: "x"}, nil)
	app := newTestApp(t, svc)

	status, _ := do(t, app, http.MethodPost, "/api/p/summaries/narrative", bearer(t, uuid.New()),
		`{"start_date":"2024-05-02","end_date":"2024-05-03"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
