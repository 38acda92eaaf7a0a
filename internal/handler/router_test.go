package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/estimator"
	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/cleberrangel/edge-relay-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteOrigin = "https://site.example"

type fakeRelayer struct {
	result  *service.RelayResult
	err     error
	calls   int
	payload model.ContactPayload
	ip      string
}

func (f *fakeRelayer) Relay(_ context.Context, p model.ContactPayload, remoteIP string) (*service.RelayResult, error) {
	f.calls++
	f.payload, f.ip = p, remoteIP
	return f.result, f.err
}

func newTestRouter(relayer Relayer, dev bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Version: "test",
		Gate:    service.NewOriginGate([]string{siteOrigin}, dev),
		Relayer: relayer,
		Estimator: estimator.NewService(estimator.Options{
			Picker:   func(int) int { return 0 },
			Now:      func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
			Location: time.UTC,
		}),
		Dev: dev,
	})
}

func serve(r http.Handler, method, path, origin, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestRouter_Health(t *testing.T) {
	w := serve(newTestRouter(&fakeRelayer{}, false), http.MethodGet, "/v1/health", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"status": "ok", "version": "test"}, decode(t, w))
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(&fakeRelayer{}, false)

	paths := []string{
		"/", "/contact/send", "/v1/unknown", "/v2/estimator/tonight",
		"/v1/estimator/tonight/", "/v1/contact/send/", "/v1/health/",
	}
	for _, path := range paths {
		w := serve(r, http.MethodPost, path, siteOrigin, "{}")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, map[string]any{"error": "Not Found"}, decode(t, w), path)
	}
}

func TestRouter_Preflight(t *testing.T) {
	r := newTestRouter(&fakeRelayer{}, false)

	w := serve(r, http.MethodOptions, "/v1/contact/send", siteOrigin, "", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, siteOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/v1/contact/send", "https://evil.example", "", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Estimator_WorkedExample(t *testing.T) {
	body := `{"taskType":"coding","taskSize":"medium","proficiency":"some","energy":"decent","currentTime":"20:00","deadline":"tonight"}`
	w := serve(newTestRouter(&fakeRelayer{}, false), http.MethodPost, "/v1/estimator/tonight", "", body)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "risky", got["verdict"])
	assert.Equal(t, 0.77, got["confidence"])
	assert.Equal(t, float64(251), got["estimatedMinutes"])
	assert.Equal(t, float64(239), got["availableMinutes"])
	assert.Equal(t, []any{"Medium scope: usually where optimism goes to die."}, got["reasoning"])
	assert.Equal(t, estimator.Suggestions(model.VerdictRisky)[0], got["suggestion"])
}

func TestRouter_Estimator_Rejects(t *testing.T) {
	r := newTestRouter(&fakeRelayer{}, false)

	tests := []struct {
		name      string
		body      string
		wantError string
		wantField string
	}{
		{
			name:      "malformed json",
			body:      `{"taskType":`,
			wantError: "Invalid JSON body",
		},
		{
			name:      "unknown enum",
			body:      `{"taskType":"gaming","taskSize":"medium","proficiency":"some","energy":"decent","deadline":"tonight"}`,
			wantError: "Invalid request payload",
			wantField: "taskType",
		},
		{
			name:      "missing field",
			body:      `{"taskType":"coding","taskSize":"medium","proficiency":"some","deadline":"tonight"}`,
			wantError: "Invalid request payload",
			wantField: "energy",
		},
		{
			name:      "wrong type",
			body:      `{"taskType":7,"taskSize":"medium","proficiency":"some","energy":"decent","deadline":"tonight"}`,
			wantError: "Invalid request payload",
			wantField: "taskType",
		},
		{
			name:      "trailing data after object",
			body:      `{"taskType":"coding","taskSize":"medium","proficiency":"some","energy":"decent","deadline":"tonight"} trailing-garbage`,
			wantError: "Invalid JSON body",
		},
		{
			name:      "two objects",
			body:      `{"taskType":"coding","taskSize":"medium","proficiency":"some","energy":"decent","deadline":"tonight"}{}`,
			wantError: "Invalid JSON body",
		},
		{
			name:      "custom without deadlineTime",
			body:      `{"taskType":"coding","taskSize":"medium","proficiency":"some","energy":"decent","deadline":"custom"}`,
			wantError: `deadlineTime is required when deadline is "custom"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodPost, "/v1/estimator/tonight", "", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			got := decode(t, w)
			assert.Equal(t, tt.wantError, got["error"])
			if tt.wantField == "" {
				assert.NotContains(t, got, "issues")
				return
			}
			issues, ok := got["issues"].(map[string]any)
			require.True(t, ok, "issues missing: %v", got)
			fields, _ := issues["fieldErrors"].(map[string]any)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestRouter_Contact_ForbiddenOrigin(t *testing.T) {
	relayer := &fakeRelayer{}
	r := newTestRouter(relayer, false)

	for _, origin := range []string{"", "https://evil.example", "http://localhost:5173"} {
		w := serve(r, http.MethodPost, "/v1/contact/send", origin, `{}`)
		assert.Equal(t, http.StatusForbidden, w.Code, origin)
		assert.Equal(t, map[string]any{"ok": false, "error": "Forbidden origin"}, decode(t, w))
	}
	assert.Zero(t, relayer.calls)
}

func TestRouter_Contact_DevAllowsLocalhost(t *testing.T) {
	relayer := &fakeRelayer{result: &service.RelayResult{RelayID: "r1"}}
	r := newTestRouter(relayer, true)

	body := `{"name":"Ada","email":"ada@example.com","message":"Hello there, friend.","verificationToken":"tok"}`
	w := serve(r, http.MethodPost, "/v1/contact/send", "http://localhost:5173", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Contact_BadInput(t *testing.T) {
	relayer := &fakeRelayer{}
	r := newTestRouter(relayer, false)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"name":`, "Invalid JSON payload"},
		{"empty body", ``, "Invalid JSON payload"},
		{"trailing data", `{"name":"Ada","email":"ada@example.com","message":"Hello there, friend.","verificationToken":"t"} trailing-garbage`, "Invalid JSON payload"},
		{"short name", `{"name":"A","email":"ada@example.com","message":"Hello there, friend.","verificationToken":"t"}`, "Name is required."},
		{"bad email", `{"name":"Ada","email":"not-an-email","message":"Hello there, friend.","verificationToken":"t"}`, "Valid email is required."},
		{"short message", `{"name":"Ada","email":"ada@example.com","message":"short","verificationToken":"t"}`, "Message is too short."},
		{"missing token", `{"name":"Ada","email":"ada@example.com","message":"Hello there, friend."}`, "Missing verification token."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodPost, "/v1/contact/send", siteOrigin, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]any{"ok": false, "error": tt.want}, decode(t, w))
		})
	}
	assert.Zero(t, relayer.calls)
}

func TestRouter_Contact_Success(t *testing.T) {
	relayer := &fakeRelayer{result: &service.RelayResult{RelayID: "msg_123"}}
	r := newTestRouter(relayer, false)

	body := `{"name":" Ada ","email":"ada@example.com","message":"Hello there, friend.","verificationToken":"tok"}`
	w := serve(r, http.MethodPost, "/v1/contact/send", siteOrigin, body, "CF-Connecting-IP", "198.51.100.4")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"ok":      true,
		"message": "Message received successfully.",
		"relayId": "msg_123",
	}, decode(t, w))
	assert.Equal(t, "Ada", relayer.payload.Name)
	assert.Equal(t, "198.51.100.4", relayer.ip)
	assert.Equal(t, siteOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Contact_RelayErrors(t *testing.T) {
	sendErr := model.NewUpstreamCall("Failed to send email.", map[string]any{"status": 422, "provider": map[string]any{"message": "bad"}}, nil)

	tests := []struct {
		name       string
		err        error
		dev        bool
		wantStatus int
		wantDebug  bool
	}{
		{"verification failed", model.NewVerificationFailed(), false, http.StatusForbidden, false},
		{"not configured", model.NewServerConfig("Server not configured."), false, http.StatusInternalServerError, false},
		{"send failure hides debug in prod", sendErr, false, http.StatusInternalServerError, false},
		{"send failure shows debug in dev", sendErr, true, http.StatusInternalServerError, true},
	}

	body := `{"name":"Ada","email":"ada@example.com","message":"Hello there, friend.","verificationToken":"tok"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeRelayer{err: tt.err}, tt.dev)
			w := serve(r, http.MethodPost, "/v1/contact/send", siteOrigin, body)

			require.Equal(t, tt.wantStatus, w.Code)
			got := decode(t, w)
			assert.Equal(t, false, got["ok"])
			apiErr, _ := model.AsAPIError(tt.err)
			assert.Equal(t, apiErr.Message, got["error"])
			_, hasDebug := got["debug"]
			assert.Equal(t, tt.wantDebug, hasDebug)
		})
	}
}
