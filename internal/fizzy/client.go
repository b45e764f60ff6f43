package fizzy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
	cardsPath      = "/cards.json"
)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

type Client struct {
	baseURL     string
	accountSlug string
	token       string
	httpClient  *http.Client
	logger      *log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(baseURL, accountSlug, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		accountSlug: strings.Trim(strings.TrimSpace(accountSlug), "/"),
		token:       token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchColumns returns the columns of a board in the order the API lists them.
// The columns endpoint is not paginated.
func (c *Client) FetchColumns(ctx context.Context, boardID string) ([]Column, error) {
	path := fmt.Sprintf("/boards/%s/columns", url.PathEscape(boardID))
	records, _, err := c.get(ctx, c.buildURL(path))
	if err != nil {
		return nil, fmt.Errorf("fetch columns: %w", err)
	}
	return decodeAll[Column](records, c.logger), nil
}

// FetchCards returns every card on a board. Deployments disagree on whether
// board_ids is a scalar or an array parameter, so an empty result on the
// scalar form is retried once with board_ids[].
func (c *Client) FetchCards(ctx context.Context, boardID, indexedBy string) ([]Card, error) {
	records, err := c.FetchPaginated(ctx, cardsPath, cardParams("board_ids", boardID, indexedBy))
	if err != nil {
		return nil, fmt.Errorf("fetch cards: %w", err)
	}
	if len(records) == 0 {
		c.logger.WithField("board_id", boardID).Debug("fizzy.cards.fallback")
		records, err = c.FetchPaginated(ctx, cardsPath, cardParams("board_ids[]", boardID, indexedBy))
		if err != nil {
			return nil, fmt.Errorf("fetch cards (array params): %w", err)
		}
	}
	return decodeAll[Card](records, c.logger), nil
}

func cardParams(boardKey, boardID, indexedBy string) url.Values {
	params := url.Values{}
	params.Set(boardKey, boardID)
	if indexedBy != "" {
		params.Set("indexed_by", indexedBy)
	}
	return params
}

// FetchPaginated GETs path and follows rel="next" links until none is left,
// collecting every object element of each page's JSON array. Continuation
// requests use the next URL as given and carry no extra parameters. Any page
// failing fails the whole call; no partial result is returned.
func (c *Client) FetchPaginated(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	next := c.buildURL(path)
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(next, "?") {
			sep = "&"
		}
		next += sep + params.Encode()
	}

	all := make([]json.RawMessage, 0)
	seen := make(map[string]struct{})
	for page := 1; next != ""; page++ {
		if _, ok := seen[next]; ok {
			return nil, fmt.Errorf("%w: %s", ErrPaginationCycle, next)
		}
		seen[next] = struct{}{}

		records, link, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		all = append(all, records...)
		c.logger.WithFields(log.Fields{
			"page":  page,
			"items": len(records),
			"total": len(all),
		}).Debug("fizzy.page")

		next = nextLink(link)
		if next != "" {
			next = c.buildURL(next)
		}
	}
	return all, nil
}

// buildURL resolves path against the base URL and account slug. Absolute
// http(s) URLs, which is how continuation pages arrive, are returned as is.
func (c *Client) buildURL(path string) string {
	if hasScheme(path) {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.accountSlug != "" {
		prefix := "/" + c.accountSlug
		if path != prefix && !strings.HasPrefix(path, prefix+"/") && !strings.HasPrefix(path, prefix+"?") {
			path = prefix + path
		}
	}
	return c.baseURL + path
}

func hasScheme(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func nextLink(header string) string {
	m := nextLinkPattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// get issues one authenticated GET and returns the page's object records and
// its Link header.
func (c *Client) get(ctx context.Context, rawURL string) ([]json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &APIError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return records, strings.Join(resp.Header.Values("Link"), ", "), nil
}

// decodeRecords keeps the object elements of a JSON array. Anything that is
// valid JSON but not an array counts as no items.
func decodeRecords(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid json body")
		}
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			records = append(records, item)
		}
	}
	return records, nil
}

// decodeAll decodes each record into T. Records that do not fit T are logged
// and skipped so one odd record does not hide the rest.
func decodeAll[T any](records []json.RawMessage, logger *log.Logger) []T {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			logger.WithError(err).WithField("record", i).Debug("fizzy.record.skipped")
			continue
		}
		out = append(out, v)
	}
	return out
}
