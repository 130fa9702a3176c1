// Package grammar talks to the external grammar/style engine. The Client is
// a process-wide singleton carrying its own large internal cache, distinct
// from the per-analyzer result caches built on top of it.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"textrefine/pkg/scoring"
)

// DefaultTimeout is the default wall-clock timeout for a single upstream
// grammar-check call.
const DefaultTimeout = 10 * time.Second

// clientCacheSize is the internal cache carried by the singleton client
// itself, distinct from and larger than each analyzer's 128-entry result
// cache.
const clientCacheSize = 5000

// match is the upstream engine's per-finding wire shape.
type match struct {
	Message string `json:"message"`
	Context struct {
		Text   string `json:"text"`
		Offset int    `json:"offset"`
		Length int     `json:"length"`
	} `json:"context"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
		Category  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
	Offset int `json:"offset"`
	Length int `json:"length"`
}

type checkResponse struct {
	Matches []match `json:"matches"`
}

// Client is the process-wide grammar/style engine client. Language is set
// once at construction and never mutated afterward.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	timeout    time.Duration
	cache      *lru.Cache[string, []scoring.TextIssue]
	log        *zap.Logger
}

// New constructs the singleton grammar engine client. baseURL points at the
// upstream check endpoint (e.g. "http://localhost:8081/v2/check").
func New(baseURL, language string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c, err := lru.New[string, []scoring.TextIssue](clientCacheSize)
	if err != nil {
		return nil, fmt.Errorf("grammar: failed to build client cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		language:   language,
		timeout:    timeout,
		cache:      c,
		log:        log,
	}, nil
}

// Check submits text to the upstream engine, returning a normalized,
// offset-ordered issue list. Results are memoized on the client's own
// internal cache keyed by exact text; failures are never cached.
func (c *Client) Check(ctx context.Context, text string) ([]scoring.TextIssue, error) {
	if cached, ok := c.cache.Get(text); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scoring.ErrUpstreamFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.log.Warn("grammar engine timeout", zap.Error(err))
			return nil, scoring.ErrUpstreamTimeout
		}
		return nil, fmt.Errorf("%w: %v", scoring.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned status %d", scoring.ErrUpstreamFailure, resp.StatusCode)
	}

	var parsed checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding upstream response: %v", scoring.ErrUpstreamFailure, err)
	}

	issues := normalizeMatches(parsed.Matches)
	c.cache.Add(text, issues)
	return issues, nil
}

func normalizeMatches(matches []match) []scoring.TextIssue {
	issues := make([]scoring.TextIssue, 0, len(matches))
	for _, m := range matches {
		offset := m.Offset
		length := m.Length
		if offset == 0 && length == 0 {
			offset, length = m.Context.Offset, m.Context.Length
		}
		var replacements []string
		for i, r := range m.Replacements {
			if i >= 3 {
				break
			}
			replacements = append(replacements, r.Value)
		}
		// The offending substring lives inside the context snippet. The
		// selected offset is document-relative when it came from the top
		// level, so fall back to the context-relative pair when it does
		// not land inside the snippet.
		errorText := sliceContext(m.Context.Text, offset, length)
		if errorText == "" {
			errorText = sliceContext(m.Context.Text, m.Context.Offset, m.Context.Length)
		}
		issues = append(issues, scoring.TextIssue{
			Message:      m.Message,
			Replacements: replacements,
			ErrorText:    errorText,
			StartOffset:  offset,
			Length:       length,
			Category:     scoring.NormalizeCategory(m.Rule.Category.ID, m.Rule.Category.Name),
			RuleType:     m.Rule.IssueType,
		})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].StartOffset < issues[j].StartOffset })
	return issues
}

func sliceContext(text string, offset, length int) string {
	if offset < 0 || length <= 0 || offset+length > len(text) {
		return ""
	}
	return text[offset : offset+length]
}
