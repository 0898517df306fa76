// Package dictionary looks up word definitions from dictionaryapi.dev.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrInvalidInput is returned when the word cannot be turned into a request.
var ErrInvalidInput = errors.New("invalid lookup input")

type LookupErrorKind string

const (
	LookupErrorNetwork LookupErrorKind = "network"
	LookupErrorDecode  LookupErrorKind = "decode"
)

// LookupError is a failed lookup. No partial results accompany it.
type LookupError struct {
	Kind LookupErrorKind
	Word string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %s > %v", e.Word, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	CacheDirectory string
	// RequestsPerSecond limits requests sent to the API. Cached lookups are
	// not limited. Zero or less means no limit.
	RequestsPerSecond float64
}

type Client struct {
	client    *resty.Client
	baseURL   string
	fileCache *FileCache
	limiter   *rate.Limiter
}

func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	return &Client{
		client:    client,
		baseURL:   baseURL,
		fileCache: NewFileCache(config.CacheDirectory),
		limiter:   rate.NewLimiter(limit, 1),
	}
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Lookup returns at most one entry for word. A word the dictionary does not
// know yields an empty list.
func (c *Client) Lookup(ctx context.Context, word string) ([]WordEntry, error) {
	word = normalize(word)
	if word == "" {
		return nil, ErrInvalidInput
	}
	requestURL, err := c.entryURL(word)
	if err != nil {
		return nil, err
	}

	contents, err := c.fileCache.cache(word, func() ([]byte, bool, error) {
		return c.lookupAPI(ctx, word, requestURL)
	})
	if err != nil {
		var lookupErr *LookupError
		if errors.As(err, &lookupErr) {
			return nil, err
		}
		// the response is usable even when writing the cache failed
		if contents == nil {
			return nil, fmt.Errorf("c.fileCache.cache > %w", err)
		}
		slog.Default().Warn("failed to cache a dictionary response",
			slog.String("word", word),
			slog.Any("error", err),
		)
	}
	if contents == nil {
		return []WordEntry{}, nil
	}

	var entries []WordEntry
	if err := json.Unmarshal(contents, &entries); err != nil {
		return nil, &LookupError{Kind: LookupErrorDecode, Word: word, Err: err}
	}
	if len(entries) > 1 {
		entries = entries[:1]
	}
	if entries == nil {
		entries = []WordEntry{}
	}
	return entries, nil
}

// entryURL builds the request URL for word as a single path segment below
// the base URL.
func (c *Client) entryURL(word string) (string, error) {
	if word == "." || word == ".." {
		return "", fmt.Errorf("%w: %q is not a word", ErrInvalidInput, word)
	}
	requestURL, err := url.JoinPath(c.baseURL, url.PathEscape(word))
	if err != nil {
		return "", fmt.Errorf("url.JoinPath > %w: %w", ErrInvalidInput, err)
	}
	return requestURL, nil
}

// lookupAPI returns the body of a successful response, or nil contents when
// the word is unknown.
func (c *Client) lookupAPI(ctx context.Context, word, requestURL string) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, &LookupError{Kind: LookupErrorNetwork, Word: word, Err: fmt.Errorf("limiter.Wait > %w", err)}
	}
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(requestURL)
	if err != nil {
		return nil, false, &LookupError{Kind: LookupErrorNetwork, Word: word, Err: fmt.Errorf("client.R.Get > %w", err)}
	}

	switch res.StatusCode() {
	case http.StatusOK:
		slog.Default().Debug("dictionary response", slog.String("word", word), slog.Duration("duration", res.Time()))
		return res.Body(), true, nil
	case http.StatusNotFound:
		return nil, false, nil
	}
	return nil, false, &LookupError{
		Kind: LookupErrorNetwork,
		Word: word,
		Err:  fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())),
	}
}
