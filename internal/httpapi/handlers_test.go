package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"textrefine/pkg/correctness"
	"textrefine/pkg/grammar"
	"textrefine/pkg/pipeline"
	"textrefine/pkg/readability"
	"textrefine/pkg/vocabulary"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches":[]}`))
	}))
	t.Cleanup(upstream.Close)

	client, err := grammar.New(upstream.URL, "en-US", 0, nil)
	if err != nil {
		t.Fatalf("grammar.New() error: %v", err)
	}
	p := pipeline.New(correctness.New(client), vocabulary.New(), readability.New(), nil, nil)
	return NewServer(p, 5, nil, nil)
}

func TestHandleEvaluationBelowMinimum(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"text": "too short"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluation", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleEvaluation(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

const longText = "The committee reviewed every proposal in detail before reaching a decision. " +
	"Each member presented an independent assessment of the costs and benefits involved. " +
	"After several rounds of discussion the group agreed on a shared set of priorities."

func TestHandleEvaluationSuccess(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"text": longText})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluation", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleEvaluation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Score          float64     `json:"score"`
		ScoreInPercent float64     `json:"score_in_percent"`
		Coherence      interface{} `json:"coherence"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Score <= 0 || resp.Score > 1 {
		t.Errorf("score = %v, want in (0,1]", resp.Score)
	}
	if resp.Coherence != nil {
		t.Errorf("coherence = %v, want null with no LLM credential", resp.Coherence)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestHandleEvaluationUpstreamTimeoutMapsTo408(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"matches":[]}`))
	}))
	t.Cleanup(upstream.Close)

	client, err := grammar.New(upstream.URL, "en-US", time.Millisecond, nil)
	if err != nil {
		t.Fatalf("grammar.New() error: %v", err)
	}
	p := pipeline.New(correctness.New(client), vocabulary.New(), readability.New(), nil, nil)
	s := NewServer(p, 5, nil, nil)

	body, _ := json.Marshal(map[string]string{"text": longText})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluation", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleEvaluation(w, req)

	if w.Code != http.StatusRequestTimeout {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusRequestTimeout)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("timeout")) {
		t.Errorf("body %q should mention the timeout", w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}
