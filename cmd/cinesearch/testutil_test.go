package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

const testAPIKey = "test-key"

// mockServer creates an httptest.Server standing in for the OMDb API.
// It provides a fluent API for request verification and responses.
type mockServer struct {
	t         *testing.T
	server    *httptest.Server
	handler   http.HandlerFunc
	expectKey string
	calls     atomic.Int32
}

// newMockServer creates a new mock server builder.
// Call .Build() to create the actual httptest.Server.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t, expectKey: testAPIKey}
}

// Handler sets a custom handler function. The function receives the writer
// and request after api key verification has passed.
func (m *mockServer) Handler(h func(w http.ResponseWriter, r *http.Request)) *mockServer {
	m.handler = h
	return m
}

// RespondJSON sets up a handler that responds with JSON-encoded data.
func (m *mockServer) RespondJSON(v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, v)
	}
	return m
}

// RespondStatus sets up a handler that responds with just a status code.
func (m *mockServer) RespondStatus(code int) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
	return m
}

// Calls returns the number of requests served.
func (m *mockServer) Calls() int {
	return int(m.calls.Load())
}

// Build creates the httptest.Server and closes it when the test ends.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.calls.Add(1)
		assert.Equal(m.t, http.MethodGet, r.Method, "unexpected request method")
		assert.Equal(m.t, m.expectKey, r.URL.Query().Get("apikey"), "unexpected api key")
		if m.handler != nil {
			m.handler(w, r)
		}
	})

	m.server = httptest.NewServer(handler)
	m.t.Cleanup(m.server.Close)
	return m.server
}

// respondJSON writes a JSON response with proper content-type header.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// omdbHandler serves "Batman" with 25 results over three pages, "Btman"
// as not found, details for any id and a single result for other titles.
func omdbHandler(t *testing.T) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if id := q.Get("i"); id != "" {
			respondJSON(t, w, omdb.Details{
				IMDbID: id, Title: "Inception", Year: "2010", Director: "Christopher Nolan",
				Plot: "A thief who steals corporate secrets.", Response: "True",
			})
			return
		}

		var page int
		_, _ = fmt.Sscan(q.Get("page"), &page)

		switch s := q.Get("s"); s {
		case "Btman":
			respondJSON(t, w, omdb.SearchResponse{Response: "False", Error: "Movie not found!"})
		case "Batman":
			var results []omdb.SearchResult
			for i := (page - 1) * 10; i < min(page*10, 25); i++ {
				results = append(results, omdb.SearchResult{
					IMDbID: fmt.Sprintf("tt%07d", i),
					Title:  fmt.Sprintf("Batman %d", i),
					Year:   fmt.Sprintf("%d", 1990+i),
					Type:   "movie",
					Poster: "N/A",
				})
			}
			// Upstream repeats the first result of each page
			if len(results) > 0 {
				results = append(results, results[0])
			}
			respondJSON(t, w, omdb.SearchResponse{Search: results, TotalResults: "25", Response: "True"})
		default:
			respondJSON(t, w, omdb.SearchResponse{
				Search:       []omdb.SearchResult{{IMDbID: "tt-" + s, Title: s, Year: "2001", Type: "movie"}},
				TotalResults: "1",
				Response:     "True",
			})
		}
	}
}

// writeTestConfig writes a config pointing at baseURL
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`
[omdb]
api_key = %q
base_url = %q
timeout = "5s"

[log]
level = "error"
`, testAPIKey, baseURL+"/")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores package flag variables between command runs
func resetFlags() {
	configPath = ""
	jsonOutput = false
	logLevel = ""
	searchPage = 1
	searchPages = 1
	searchSort = ""
	configForce = false
	configEffective = false
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
