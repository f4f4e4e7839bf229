package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/mocks"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeoutSeconds: 2},
		Auth: config.AuthConfig{
			JWTSecret:            "thisisasecretkeythatis32charslong!!",
			TokenLifetimeMinutes: 60,
			Header:               "x-access-token",
		},
	}
}

func newTestApplication(t *testing.T) (*application, *mocks.MockContactStore, *logger.TestLogBuffer) {
	t.Helper()

	log, logs := logger.GetTestLogger(t)
	contacts := mocks.NewMockContactStore()
	app, err := newApplication(testConfig(), log, nil, dependencies{
		users:    mocks.NewMockUserStore(),
		contacts: contacts,
		hasher:   &mocks.MockPasswordHasher{},
	})
	require.NoError(t, err)
	return app, contacts, logs
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router, err := app.setupRouter()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `contacts_api_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, `contacts_api_errors_total{kind="Unauthorized",operational="true"} 1`)
}

func TestRouter_SignUpSignInAndCreate(t *testing.T) {
	t.Parallel()

	app, contacts, _ := newTestApplication(t)
	router, err := app.setupRouter()
	require.NoError(t, err)

	post := func(path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("x-access-token", token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	creds := `{"username":"ada","password":"analytical-engine"}`
	require.Equal(t, http.StatusCreated, post("/auth/signup", creds, "").Code)

	w := post("/auth/signin", creds, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w.Body.String())

	w = post("/contacts", `{
		"dateOfBirth": "1815-12-10",
		"firstName": "Ada",
		"lastName": "Lovelace",
		"username": "alovelace",
		"company": "Analytical Engines",
		"email": "ada@example.com"
	}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created, err := contacts.FindOne(context.Background(), store.ContactFilter{Index: 1})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Lovelace", created.LastName)
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	const key = `"access_token":"`
	i := strings.Index(body, key)
	require.GreaterOrEqual(t, i, 0, body)
	rest := body[i+len(key):]
	return rest[:strings.Index(rest, `"`)]
}

func TestServe_NonOperationalErrorStopsServer(t *testing.T) {
	t.Parallel()

	app, contacts, logs := newTestApplication(t)
	contacts.FindOneFn = func(context.Context, store.ContactFilter) (*domain.Contact, error) {
		return nil, errors.New("postgres://admin:hunter2@db:5432/contacts: connection reset")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.serve(context.Background(), ln) }()

	// Sign up and in through the live server, then trigger the failure.
	base := "http://" + ln.Addr().String()
	client := &http.Client{Timeout: 5 * time.Second}
	creds := `{"username":"ada","password":"analytical-engine"}`

	resp, err := client.Post(base+"/auth/signup", "application/json", strings.NewReader(creds))
	require.NoError(t, err)
	_ = resp.Body.Close()
	resp, err = client.Post(base+"/auth/signin", "application/json", strings.NewReader(creds))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	token := extractToken(t, string(raw))

	req, err := http.NewRequest(http.MethodGet, base+"/contacts/1", nil)
	require.NoError(t, err)
	req.Header.Set("x-access-token", token)
	resp, err = client.Do(req)
	require.NoError(t, err)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(raw), "hunter2")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errFatalShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after a non-operational error")
	}
	assert.True(t, app.runtime.ShuttingDown())
	assert.NotContains(t, logs.String(), "hunter2")
}

func TestServe_ContextCancelStopsCleanly(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
