package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ModelServer fakes an OpenRouter chat-completions endpoint. Replies are
// served in order; the last one repeats once the script runs out.
type ModelServer struct {
	*httptest.Server

	mu      sync.Mutex
	replies []string
	prompts []string
}

// NewModelServer starts a fake model endpoint closed at test cleanup.
func NewModelServer(t testing.TB, replies ...string) *ModelServer {
	t.Helper()

	m := &ModelServer{replies: replies}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	return m
}

// Calls reports how many completions were requested.
func (m *ModelServer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns the user prompts received so far.
func (m *ModelServer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *ModelServer) serve(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	var prompt string
	for _, msg := range payload.Messages {
		if msg.Role == "user" {
			prompt = msg.Content
		}
	}
	m.prompts = append(m.prompts, prompt)
	reply := ""
	if len(m.replies) > 0 {
		reply = m.replies[0]
		if len(m.replies) > 1 {
			m.replies = m.replies[1:]
		}
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{{
			"message": map[string]string{"role": "assistant", "content": reply},
		}},
	})
}
