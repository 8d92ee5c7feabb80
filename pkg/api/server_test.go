package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/observability"
	"github.com/matzehuels/ghostleg/pkg/round"
	"github.com/matzehuels/ghostleg/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	ts := httptest.NewServer(New(s, Defaults{Rows: 8, MaxRungs: 4, MaxLanes: 6}).Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createRound(t *testing.T, ts *httptest.Server) *round.Round {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/rounds", `{"names":["ann","bob","cid"],"results":["tea","pie","jam"],"seed":42}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/rounds status = %d, want 201", resp.StatusCode)
	}
	return decode[*round.Round](t, resp)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decode[healthResponse](t, resp); got.Status != "ok" || got.Version.Version == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestCreateAndGetRound(t *testing.T) {
	ts, s := newTestServer(t)
	created := createRound(t, ts)

	if created.Rows != 8 || created.MaxRungs != 4 {
		t.Errorf("defaults not applied: rows %d, max rungs %d", created.Rows, created.MaxRungs)
	}
	if _, err := s.Get(context.Background(), created.ID); err != nil {
		t.Errorf("round not stored: %v", err)
	}

	resp := do(t, http.MethodGet, ts.URL+"/api/rounds/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	got := decode[*round.Round](t, resp)
	if got.ID != created.ID || got.Seed != 42 {
		t.Errorf("got round %s seed %d", got.ID, got.Seed)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("served round invalid: %v", err)
	}
}

func TestGetLane(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createRound(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/rounds/"+created.ID+"/lanes/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[laneResponse](t, resp)
	want, _ := created.Outcome(1)
	if got.Outcome != want {
		t.Errorf("outcome = %+v, want %+v", got.Outcome, want)
	}
	if len(got.Path) == 0 || got.Path.Final() != want.Final {
		t.Errorf("path = %v, want final lane %d", got.Path, want.Final)
	}
}

func TestListAndDelete(t *testing.T) {
	ts, _ := newTestServer(t)
	first := createRound(t, ts)
	second := createRound(t, ts)

	list := decode[listResponse](t, do(t, http.MethodGet, ts.URL+"/api/rounds?limit=1", ""))
	if len(list.Rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(list.Rounds))
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/api/rounds/"+first.ID, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", resp.StatusCode)
	}
	list = decode[listResponse](t, do(t, http.MethodGet, ts.URL+"/api/rounds", ""))
	if len(list.Rounds) != 1 || list.Rounds[0].ID != second.ID {
		t.Errorf("after delete got %+v", list.Rounds)
	}
}

func TestErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createRound(t, ts)
	missing := "0d4f0a5e-8c55-4f0e-9c8e-2b1b4e1b7d00"

	tests := []struct {
		name         string
		method, path string
		body         string
		wantStatus   int
		wantCode     errors.Code
	}{
		{"one name", http.MethodPost, "/api/rounds", `{"names":["ann"]}`, 400, errors.ErrCodeInvalidLaneCount},
		{"too many names", http.MethodPost, "/api/rounds", `{"names":["a","b","c","d","e","f","g"]}`, 400, errors.ErrCodeInvalidLaneCount},
		{"too many rows", http.MethodPost, "/api/rounds", `{"names":["a","b","c"],"rows":200000000}`, 400, errors.ErrCodeInvalidInput},
		{"too many rungs", http.MethodPost, "/api/rounds", `{"names":["a","b","c"],"max_rungs":5000}`, 400, errors.ErrCodeInvalidInput},
		{"result count", http.MethodPost, "/api/rounds", `{"names":["a","b"],"results":["x"]}`, 400, errors.ErrCodeInvalidLabels},
		{"unknown field", http.MethodPost, "/api/rounds", `{"players":["a","b"]}`, 400, errors.ErrCodeInvalidFormat},
		{"bad json", http.MethodPost, "/api/rounds", `{`, 400, errors.ErrCodeInvalidFormat},
		{"bad limit", http.MethodGet, "/api/rounds?limit=x", "", 400, errors.ErrCodeInvalidInput},
		{"bad id", http.MethodGet, "/api/rounds/nope", "", 400, errors.ErrCodeInvalidInput},
		{"missing round", http.MethodGet, "/api/rounds/" + missing, "", 404, errors.ErrCodeRoundNotFound},
		{"missing delete", http.MethodDelete, "/api/rounds/" + missing, "", 404, errors.ErrCodeRoundNotFound},
		{"lane out of range", http.MethodGet, "/api/rounds/" + created.ID + "/lanes/3", "", 400, errors.ErrCodeInvalidInput},
		{"lane not a number", http.MethodGet, "/api/rounds/" + created.ID + "/lanes/x", "", 400, errors.ErrCodeInvalidInput},
		{"svg lane out of range", http.MethodGet, "/api/rounds/" + created.ID + "/ladder.svg?lane=9", "", 400, errors.ErrCodeInvalidInput},
		{"svg missing round", http.MethodGet, "/api/rounds/" + missing + "/ladder.svg", "", 404, errors.ErrCodeRoundNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := decode[errorResponse](t, resp); got.Code != tt.wantCode || got.Error == "" {
				t.Errorf("error = %+v, want code %s", got, tt.wantCode)
			}
		})
	}
}

func TestCorruptStoredRound(t *testing.T) {
	ts, s := newTestServer(t)
	r, err := round.New(context.Background(), round.Options{Names: []string{"ann", "bob"}, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	r.Finals = []int{7, 0}

	for _, path := range []string{"", "/lanes/0", "/ladder.svg"} {
		resp := do(t, http.MethodGet, ts.URL+"/api/rounds/"+r.ID+path, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, resp.StatusCode)
		}
		if got := decode[errorResponse](t, resp); got.Code != errors.ErrCodeInvalidRound {
			t.Errorf("GET %s code = %s, want INVALID_ROUND", path, got.Code)
		}
	}
}

func TestSVG(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createRound(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/rounds/"+created.ID+"/ladder.svg?lane=0", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if !bytes.Contains(buf.Bytes(), []byte("<svg")) {
		t.Error("body is not an SVG document")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu    sync.Mutex
	calls []string
}

func (h *recordingHooks) OnRequest(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, method+" "+path+" "+http.StatusText(status))
}

func TestObserveUsesRoutePattern(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	ts, _ := newTestServer(t)
	do(t, http.MethodGet, ts.URL+"/api/rounds/0d4f0a5e-8c55-4f0e-9c8e-2b1b4e1b7d00/lanes/0", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := "GET /api/rounds/{id}/lanes/{lane} Not Found"
	if len(hooks.calls) != 1 || hooks.calls[0] != want {
		t.Errorf("calls = %q, want [%q]", hooks.calls, want)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := New(store.NewMemoryStore(), Defaults{})

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
