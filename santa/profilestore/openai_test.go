package profilestore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/theimaginaryfoundation/santa-bot/santa"
	"github.com/theimaginaryfoundation/santa-bot/santa/provider"
)

// fakeResponses serves POST /responses, replying with the text chosen by reply. input
// is the raw request body.
func fakeResponses(t *testing.T, reply func(instructions string, input string) (int, string)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/responses") {
			http.NotFound(w, r)
			return
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var body struct {
			Instructions string `json:"instructions"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		input := string(raw)
		status, text := reply(body.Instructions, input)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"` + text + `","type":"server_error"}}`))
			return
		}
		out := map[string]any{
			"id":         "resp_test",
			"object":     "response",
			"created_at": 1,
			"model":      "gpt-test",
			"status":     "completed",
			"output": []any{map[string]any{
				"type":   "message",
				"id":     "msg_test",
				"role":   "assistant",
				"status": "completed",
				"content": []any{map[string]any{
					"type":        "output_text",
					"text":        text,
					"annotations": []any{},
				}},
			}},
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testEngine(srv *httptest.Server) OpenAIEngine {
	client := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	return OpenAIEngine{
		Client: &client,
		Model:  "gpt-test",
		Retry:  provider.RetryPolicy{ServerErrorWaits: []time.Duration{time.Millisecond}},
	}
}

func TestOpenAIEngine_CompleteReturnsAnswerRecord(t *testing.T) {
	t.Parallel()

	srv := fakeResponses(t, func(instructions, input string) (int, string) {
		if !strings.Contains(input, "What is the emotional state or mood of Bob?") {
			return http.StatusOK, `{"answer":"unknown","sources":[]}`
		}
		return http.StatusOK, `{"answer":"Bob seems anxious about his deadlines.","sources":["Bob"]}`
	})
	e := testEngine(srv)

	resp, err := e.Complete(context.Background(), santa.EmotionQuery("Bob"), "notes", nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Kind != santa.KindRecords {
		t.Fatalf("Kind=%s", resp.Kind)
	}
	if got := santa.Normalize(resp); got != "Bob seems anxious about his deadlines." {
		t.Fatalf("Normalize=%q", got)
	}
	if got := santa.ClassifyText(santa.Normalize(resp)); got != santa.Stressed {
		t.Fatalf("emotion=%s", got)
	}
}

func TestOpenAIEngine_CompletePassesThroughProse(t *testing.T) {
	t.Parallel()

	srv := fakeResponses(t, func(string, string) (int, string) {
		return http.StatusOK, "She is pumped about the trip."
	})
	resp, err := testEngine(srv).Complete(context.Background(), "q", "d", nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Kind != santa.KindText || resp.Text != "She is pumped about the trip." {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestOpenAIEngine_ConsolidateBuildsDigest(t *testing.T) {
	t.Parallel()

	srv := fakeResponses(t, func(instructions, input string) (int, string) {
		if !strings.Contains(input, "Alice: loves parties") {
			t.Errorf("input missing profile: %q", input)
		}
		return http.StatusOK, `{"people":[{"name":"Alice","summary":"Parties a lot.","mood":"joyful"}]}`
	})
	digest, err := testEngine(srv).Consolidate(context.Background(), []string{"Alice: loves parties"})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if !strings.Contains(digest, `"mood":"joyful"`) {
		t.Fatalf("digest=%s", digest)
	}
}

func TestOpenAIEngine_ConsolidateFallsBackToDocs(t *testing.T) {
	t.Parallel()

	srv := fakeResponses(t, func(string, string) (int, string) {
		return http.StatusOK, "not json"
	})
	digest, err := testEngine(srv).Consolidate(context.Background(), []string{"A: x", "B: y"})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if digest != "A: x\nB: y" {
		t.Fatalf("digest=%q", digest)
	}
}

func TestOpenAIEngine_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeResponses(t, func(string, string) (int, string) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return http.StatusInternalServerError, "boom"
		}
		return http.StatusOK, `{"answer":"happy","sources":[]}`
	})
	resp, err := testEngine(srv).Complete(context.Background(), "q", "d", nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if santa.Normalize(resp) != "happy" {
		t.Fatalf("resp=%+v", resp)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls=%d, want 2", n)
	}
}

func TestOpenAIEngine_ErrorFailsClassificationGracefully(t *testing.T) {
	t.Parallel()

	srv := fakeResponses(t, func(string, string) (int, string) {
		return http.StatusBadRequest, "bad request"
	})
	s := NewSession("", NewMemory(), testEngine(srv))
	s.cognified = true

	c := santa.Classifier{Store: s}
	if got := c.Classify(context.Background(), "Bob"); got != santa.Neutral {
		t.Fatalf("emotion=%s, want neutral", got)
	}
}

func TestOpenAIEngine_RequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := (OpenAIEngine{Model: "m"}).Complete(context.Background(), "q", "d", nil); err == nil {
		t.Fatalf("expected error")
	}
}
