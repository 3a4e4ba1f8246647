package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/docvet/docvet/internal/config"
)

func testServer() *Server {
	cfg := &config.Config{
		Format:       "json",
		FetchTimeout: 2 * time.Second,
		Server:       config.ServerConfig{Addr: ":0"},
	}
	return New(cfg, nil, log.New(io.Discard))
}

const testArticle = `# Connect Your Account

You cannot proceed in order to test. Pick red, green or blue.
`

func TestHandleAnalyze(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	body := `{"content": "` + strings.ReplaceAll(testArticle, "\n", `\n`) + `", "source": "guide.md"}`
	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var report map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if report["url"] != "guide.md" {
		t.Errorf("url = %v, want guide.md", report["url"])
	}
	if _, ok := report["style_guidelines"]; !ok {
		t.Error("response missing style_guidelines section")
	}
}

func TestHandleRevise(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	body := `{"content": "` + strings.ReplaceAll(testArticle, "\n", `\n`) + `", "source": "guide.md"}`
	resp, err := http.Post(srv.URL+"/revise", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		URL             string         `json:"url"`
		AppliedCounts   map[string]int `json:"applied_counts"`
		UnresolvedCount int            `json:"unresolved_count"`
		Revised         string         `json:"revised"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out.AppliedCounts["missing_contractions"] != 1 {
		t.Errorf("applied_counts = %v, want one contraction fix", out.AppliedCounts)
	}
	if !strings.Contains(out.Revised, "can't proceed") {
		t.Errorf("revised output missing contraction fix:\n%s", out.Revised)
	}
	if !strings.Contains(out.Revised, "red, green, or blue") {
		t.Errorf("revised output missing Oxford comma fix:\n%s", out.Revised)
	}
}

func TestHandleBadRequests(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "both url and content", body: `{"url": "http://x", "content": "y"}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
