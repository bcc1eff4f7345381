package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/model"
	"github.com/vaultpass/batpass-go/internal/service"
	"github.com/vaultpass/batpass-go/internal/token"
)

const testSecret = "test-secret"

type eventStore struct {
	created []model.GenerationEvent
	err     error
}

func (s *eventStore) Create(_ context.Context, e *model.GenerationEvent) error {
	s.created = append(s.created, *e)
	return nil
}

func (s *eventStore) Summary(context.Context) (*model.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Stats{Total: int64(len(s.created))}, nil
}

func (s *eventStore) CountByStrength(context.Context) (map[int]int64, error) {
	counts := make(map[int]int64)
	for _, e := range s.created {
		counts[e.Strength]++
	}
	return counts, nil
}

func (s *eventStore) ListRecent(_ context.Context, limit int) ([]model.GenerationEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.created) {
		return s.created[:limit], nil
	}
	return s.created, nil
}

func newTestRouter(t *testing.T, store *eventStore) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var recorder service.EventRecorder
	cfg := RouterConfig{
		JWTSecret:      testSecret,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
	if store != nil {
		recorder = store
		cfg.Stats = NewStatsHandler(service.NewStatsService(store))
	}
	cfg.Generator = NewGeneratorHandler(service.NewGeneratorService(generator.New(generator.NewSeededSource(3)), recorder))
	return NewRouter(ctx, cfg)
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T) map[string]string {
	t.Helper()
	tok, err := token.Generate("alfred", testSecret, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleGenerate(t *testing.T) {
	store := &eventStore{}
	w := do(t, newTestRouter(t, store), http.MethodPost, "/api/v1/generate",
		`{"length": 20, "uppercase": true, "lowercase": false, "numbers": false}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Length)
	assert.Len(t, resp.Password, 20)
	assert.Equal(t, strings.ToUpper(resp.Password), resp.Password)
	assert.Equal(t, 2, resp.Strength)
	assert.Equal(t, "fair", resp.Label)

	require.Len(t, store.created, 1)
	assert.Equal(t, 20, store.created[0].Length)
}

func TestHandleGenerate_EmptyBodyUsesDefaults(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/generate", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Length)
	assert.Equal(t, 4, resp.Strength)
}

func TestHandleGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed json", `{"length":`, http.StatusBadRequest, "invalid request body"},
		{"wrong type", `{"length": "long"}`, http.StatusBadRequest, "invalid request body"},
		{"too short", `{"length": 5}`, http.StatusBadRequest, "invalid request"},
		{"too long", `{"length": 33}`, http.StatusBadRequest, "invalid request"},
		{"too large", `{"length": 12, "pad": "` + strings.Repeat("x", 2<<20) + `"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}

	h := newTestRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/generate", tt.body, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestHandleGenerate_ValidationDetails(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/generate", `{"length": 2}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"length must be at least 6"}, body.Details)
}

func TestHandleGenerate_RateLimited(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewRouter(ctx, RouterConfig{
		Generator:      NewGeneratorHandler(service.NewGeneratorService(nil, nil)),
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	})

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/generate", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodPost, "/api/v1/generate", "", nil).Code)

	// Strength is not rate limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/strength", "", nil).Code)
}

func TestHandleStrength(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"length": 12, "uppercase": true, "lowercase": true, "numbers": true, "symbols": true}`, 5},
		{`{"length": 8, "uppercase": false, "lowercase": true, "numbers": false, "symbols": false}`, 1},
		{`{}`, 4},
	}

	h := newTestRouter(t, nil)
	for _, tt := range tests {
		w := do(t, h, http.MethodPost, "/api/v1/strength", tt.body, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.StrengthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tt.want, resp.Strength, tt.body)
		assert.Equal(t, 5, resp.Max)
	}
}

func TestStatsRoutes_DisabledWithoutStore(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/stats", "", bearer(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsRoutes_RequireToken(t *testing.T) {
	w := do(t, newTestRouter(t, &eventStore{}), http.MethodGet, "/api/v1/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleSummary(t *testing.T) {
	store := &eventStore{}
	h := newTestRouter(t, store)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/generate", `{"length": 16, "symbols": true}`, nil).Code)
	}

	w := do(t, h, http.MethodGet, "/api/v1/stats", "", bearer(t))
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, int64(3), resp.ByStrength["5"])
	assert.Equal(t, int64(0), resp.ByStrength["0"])
}

func TestHandleRecent(t *testing.T) {
	store := &eventStore{created: []model.GenerationEvent{{ID: 1, Length: 8}, {ID: 2, Length: 9}, {ID: 3, Length: 10}}}
	h := newTestRouter(t, store)

	w := do(t, h, http.MethodGet, "/api/v1/stats/recent?limit=2", "", bearer(t))
	require.Equal(t, http.StatusOK, w.Code)
	var events []model.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	w = do(t, h, http.MethodGet, "/api/v1/stats/recent?limit=many", "", bearer(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats_StoreError(t *testing.T) {
	h := newTestRouter(t, &eventStore{err: errors.New("db down")})

	w := do(t, h, http.MethodGet, "/api/v1/stats", "", bearer(t))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestStats_LogsSubject(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := do(t, newTestRouter(t, &eventStore{}), http.MethodGet, "/api/v1/stats/recent", "", bearer(t))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, buf.String(), `msg="stats accessed" subject=alfred path=/api/v1/stats/recent`)
}
