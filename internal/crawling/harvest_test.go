package crawling

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaswanth-142004/EZ-Search/internal/fetch"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// newPageServer serves fixed HTML per path and a 500 for /broken.
func newPageServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

type stubRenderer struct {
	html  string
	err   error
	calls []string
}

func (s *stubRenderer) Render(_ context.Context, url string) (string, error) {
	s.calls = append(s.calls, url)
	return s.html, s.err
}

func TestHarvest_ResilientToFailedSources(t *testing.T) {
	server := newPageServer(t, map[string]string{
		"/hr-questions":  `<h2>Tell me about yourself</h2><h2>Why this company?</h2>`,
		"/dsa-questions": `<h2>Reverse a linked list</h2>`,
	})

	h := NewHarvester(Config{
		Sources: []string{
			server.URL + "/hr-questions",
			server.URL + "/broken",
			"http://127.0.0.1:0/unreachable",
			server.URL + "/dsa-questions",
		},
		Timeout: time.Second,
	})

	questions, reports := h.HarvestWithReport(context.Background())

	require.Len(t, questions, 3)
	assert.Equal(t, types.RawQuestion{Question: "Tell me about yourself", Link: server.URL + "/hr-questions", Type: types.QuestionTypeHR}, questions[0])
	assert.Equal(t, "Why this company?", questions[1].Question)
	assert.Equal(t, types.RawQuestion{Question: "Reverse a linked list", Link: server.URL + "/dsa-questions", Type: types.QuestionTypeDSA}, questions[2])

	for _, q := range questions {
		assert.NotContains(t, q.Link, "/broken")
		assert.NotContains(t, q.Link, "unreachable")
	}

	require.Len(t, reports, 4)
	assert.Equal(t, SourceOK, reports[0].Status)
	assert.Equal(t, SourceSkipped, reports[1].Status)
	assert.Equal(t, http.StatusInternalServerError, reports[1].StatusCode)
	assert.Equal(t, SourceSkipped, reports[2].Status)
	assert.Error(t, reports[2].Err)
	assert.Equal(t, 1, reports[3].Questions)
}

func TestHarvest_SlowSourceTimesOut(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte("<h2>late</h2>"))
	}))
	defer slow.Close()
	defer close(release)

	fast := newPageServer(t, map[string]string{"/ok": "<h2>on time</h2>"})

	h := NewHarvester(Config{
		Sources: []string{slow.URL + "/slow", fast.URL + "/ok"},
		Timeout: 50 * time.Millisecond,
	})

	questions := h.Harvest(context.Background())
	require.Len(t, questions, 1)
	assert.Equal(t, "on time", questions[0].Question)
}

func TestHarvest_AllSourcesFail(t *testing.T) {
	h := NewHarvester(Config{
		Fetch: func(_ context.Context, url string, _ *fetch.Options) (*fetch.Result, error) {
			return nil, &fetch.Error{URL: url, Message: "HTTP request failed", Cause: errors.New("connection refused")}
		},
	})

	questions := h.Harvest(context.Background())
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestHarvest_WhitespaceHeadingsContributeNothing(t *testing.T) {
	server := newPageServer(t, map[string]string{"/blank": "<h2>   </h2><h2>\n\t</h2>"})

	h := NewHarvester(Config{Sources: []string{server.URL + "/blank"}})
	questions, reports := h.HarvestWithReport(context.Background())

	assert.Empty(t, questions)
	require.Len(t, reports, 1)
	assert.Equal(t, SourceOK, reports[0].Status)
	assert.Equal(t, 0, reports[0].Questions)
}

func TestHarvest_CategoryPerSource(t *testing.T) {
	h := NewHarvester(Config{
		Sources: []string{"https://example.com/top-DSA-list", "https://example.com/hr"},
		Fetch: func(_ context.Context, url string, _ *fetch.Options) (*fetch.Result, error) {
			return &fetch.Result{URL: url, StatusCode: http.StatusOK, HTML: "<h2>q1</h2><h2>q2</h2>"}, nil
		},
	})

	questions := h.Harvest(context.Background())
	require.Len(t, questions, 4)
	for _, q := range questions[:2] {
		assert.Equal(t, types.QuestionTypeDSA, q.Type)
	}
	for _, q := range questions[2:] {
		assert.Equal(t, types.QuestionTypeHR, q.Type)
	}
}

func TestHarvest_BrowserFallback(t *testing.T) {
	renderer := &stubRenderer{html: "<h2>Rendered question</h2>"}
	h := NewHarvester(Config{
		Sources:  []string{"https://leetcode.com/discuss/blind-75"},
		Renderer: renderer,
		Fetch: func(_ context.Context, url string, _ *fetch.Options) (*fetch.Result, error) {
			return &fetch.Result{URL: url, StatusCode: http.StatusOK, HTML: `<div id="app"></div>`}, nil
		},
	})

	questions, reports := h.HarvestWithReport(context.Background())
	require.Len(t, questions, 1)
	assert.Equal(t, "Rendered question", questions[0].Question)
	assert.True(t, reports[0].Rendered)
	assert.Equal(t, []string{"https://leetcode.com/discuss/blind-75"}, renderer.calls)
}

func TestHarvest_BrowserFailureKeepsPlainResult(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("chrome not installed")}
	h := NewHarvester(Config{
		Sources:  []string{"https://www.hackerrank.com/interview"},
		Renderer: renderer,
		Fetch: func(_ context.Context, url string, _ *fetch.Options) (*fetch.Result, error) {
			return &fetch.Result{URL: url, StatusCode: http.StatusOK, HTML: "<p>shell</p>"}, nil
		},
	})

	questions, reports := h.HarvestWithReport(context.Background())
	assert.Empty(t, questions)
	assert.Equal(t, SourceOK, reports[0].Status)
	assert.False(t, reports[0].Rendered)
}

func TestHarvest_NoBrowserWhenHeadingsFound(t *testing.T) {
	renderer := &stubRenderer{html: "<h2>should not be used</h2>"}
	h := NewHarvester(Config{
		Sources:  []string{"https://leetcode.com/x"},
		Renderer: renderer,
		Fetch: func(_ context.Context, url string, _ *fetch.Options) (*fetch.Result, error) {
			return &fetch.Result{URL: url, StatusCode: http.StatusOK, HTML: "<h2>static</h2>"}, nil
		},
	})

	questions := h.Harvest(context.Background())
	require.Len(t, questions, 1)
	assert.Equal(t, "static", questions[0].Question)
	assert.Empty(t, renderer.calls)
}

func TestNewHarvester_Defaults(t *testing.T) {
	h := NewHarvester(Config{})
	assert.Equal(t, DefaultSources, h.Sources())
	assert.Equal(t, 10*time.Second, h.options.Timeout)

	dsa := 0
	for _, u := range h.Sources() {
		if strings.Contains(strings.ToLower(u), "dsa") {
			dsa++
		}
	}
	assert.Equal(t, 1, dsa)
}

func TestSources_ReturnsCopy(t *testing.T) {
	s := Sources()
	require.Len(t, s, 10)
	s[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultSources[0])
}
