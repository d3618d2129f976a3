package search

import (
	"net/url"
	"strings"
	"sync"
)

// QueryParam is the URL parameter carrying the search term.
const QueryParam = "query"

// Navigator moves to url without adding a history entry.
type Navigator interface {
	Replace(url string)
}

type NavigatorFunc func(url string)

func (f NavigatorFunc) Replace(url string) {
	f(url)
}

// Controller keeps the query parameter of the current URL in sync with a search box.
// Other parameters keep their position and encoding.
type Controller struct {
	mu       sync.Mutex
	pathname string
	rawQuery string
	nav      Navigator
	debounce *Debouncer
}

// NewController binds to the current URL (path plus optional query string).
func NewController(current string, nav Navigator, opts ...Option) (*Controller, error) {
	u, err := url.Parse(current)
	if err != nil {
		return nil, err
	}
	return &Controller{
		pathname: u.Path,
		rawQuery: u.RawQuery,
		nav:      nav,
		debounce: NewDebouncer(DefaultWait, opts...),
	}, nil
}

// InitialValue is the term the search box starts with.
func (c *Controller) InitialValue() string {
	return c.Params().Get(QueryParam)
}

// Params returns the decoded current parameters.
func (c *Controller) Params() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	values, _ := url.ParseQuery(c.rawQuery)
	return values
}

func (c *Controller) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return build(c.pathname, c.rawQuery)
}

// OnInput records a keystroke. Navigation happens once typing settles.
func (c *Controller) OnInput(term string) {
	c.debounce.Call(func() {
		c.mu.Lock()
		c.rawQuery = setRaw(c.rawQuery, QueryParam, strings.TrimSpace(term))
		target := build(c.pathname, c.rawQuery)
		c.mu.Unlock()

		c.nav.Replace(target)
	})
}

// SetParam changes one parameter right away. An empty value removes it.
func (c *Controller) SetParam(key, value string) {
	c.mu.Lock()
	c.rawQuery = setRaw(c.rawQuery, key, value)
	target := build(c.pathname, c.rawQuery)
	c.mu.Unlock()

	c.nav.Replace(target)
}

// Close drops a pending, not yet settled input.
func (c *Controller) Close() {
	c.debounce.Stop()
}

// WithQuery returns pathname with rawQuery, query set to the trimmed term or
// removed when the term is blank.
func WithQuery(pathname, rawQuery, term string) string {
	return build(pathname, setRaw(rawQuery, QueryParam, strings.TrimSpace(term)))
}

func build(pathname, rawQuery string) string {
	if rawQuery == "" {
		return pathname
	}
	return pathname + "?" + rawQuery
}

// setRaw replaces the first key pair in place and drops any repeats of it.
// A missing key is appended; an empty value removes every pair for key.
func setRaw(rawQuery, key, value string) string {
	var pairs []string
	replaced := value == ""
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		if pairKey(pair) != key {
			pairs = append(pairs, pair)
			continue
		}
		if !replaced {
			pairs = append(pairs, encodePair(key, value))
			replaced = true
		}
	}
	if !replaced {
		pairs = append(pairs, encodePair(key, value))
	}
	return strings.Join(pairs, "&")
}

func pairKey(pair string) string {
	k, _, _ := strings.Cut(pair, "=")
	if decoded, err := url.QueryUnescape(k); err == nil {
		return decoded
	}
	return k
}

func encodePair(key, value string) string {
	return url.QueryEscape(key) + "=" + url.QueryEscape(value)
}
