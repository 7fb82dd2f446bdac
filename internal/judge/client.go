// internal/judge/client.go
//
// HTTP client for the silhouette quiz service.
// Responsibilities:
//   - JSON calls: start, guess, give up, hint, prefix search.
//   - PNG downloads: silhouette (cache-busted per shown question) and artwork.
//   - Map non-2xx replies to *StatusError (404 → quiz.ErrSessionNotFound).
//
// The client is stateless apart from its http.Client and is safe for
// concurrent use.

package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/silhouette-quiz/internal/quiz"
)

// Client talks to one quiz service.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ quiz.Judge = (*Client)(nil)

// New returns a client for baseURL. timeout bounds every request; zero means
// no client-side limit beyond the caller's context.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("judge: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("judge: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("judge: base url has no host")
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}}, nil
}

// --------------------------------- payloads --------------------------------

type startReq struct {
	Regions     []string `json:"regions"`
	AllowMega   bool     `json:"allowMega"`
	AllowPrimal bool     `json:"allowPrimal"`
}
type startRes struct {
	SessionID string `json:"sessionId"`
}

type guessReq struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

type giveUpReq struct {
	SessionID string `json:"sessionId"`
}

// ------------------------------- operations --------------------------------

// CreateSession starts a question with the given filters.
func (c *Client) CreateSession(ctx context.Context, cfg quiz.Config) (string, error) {
	regions := cfg.Regions
	if regions == nil {
		regions = []string{}
	}
	var res startRes
	if err := c.postJSON(ctx, "/api/quiz/start", startReq{Regions: regions, AllowMega: cfg.AllowMega, AllowPrimal: cfg.AllowPrimal}, &res); err != nil {
		return "", err
	}
	if res.SessionID == "" {
		return "", errors.New("judge: start reply has no sessionId")
	}
	return res.SessionID, nil
}

// Guess submits one answer.
func (c *Client) Guess(ctx context.Context, sessionID, answer string) (quiz.GuessResult, error) {
	var res quiz.GuessResult
	err := c.postJSON(ctx, "/api/quiz/guess", guessReq{SessionID: sessionID, Answer: answer}, &res)
	return res, err
}

// GiveUp reveals the answer.
func (c *Client) GiveUp(ctx context.Context, sessionID string) (quiz.Answer, error) {
	var res quiz.Answer
	err := c.postJSON(ctx, "/api/quiz/giveup", giveUpReq{SessionID: sessionID}, &res)
	return res, err
}

// Hint fetches the hint bundle.
func (c *Client) Hint(ctx context.Context, sessionID string) (quiz.HintBundle, error) {
	var res quiz.HintBundle
	err := c.getJSON(ctx, "/api/quiz/hint/"+url.PathEscape(sessionID), nil, &res)
	return res, err
}

// Search returns candidate names starting with prefix.
func (c *Client) Search(ctx context.Context, prefix string) ([]string, error) {
	var res []string
	if err := c.getJSON(ctx, "/api/quiz/search", url.Values{"prefix": {prefix}}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Silhouette downloads the puzzle image. token defeats intermediate caches
// and must differ for every question shown.
func (c *Client) Silhouette(ctx context.Context, sessionID, token string) (image.Image, error) {
	return c.getPNG(ctx, "/api/quiz/silhouette/session/"+url.PathEscape(sessionID), url.Values{"ts": {token}})
}

// Artwork downloads the colour image; the service refuses it before the
// answer is revealed.
func (c *Client) Artwork(ctx context.Context, sessionID string) (image.Image, error) {
	return c.getPNG(ctx, "/api/quiz/artwork/session/"+url.PathEscape(sessionID), nil)
}

// ArtworkURL is the browser-openable address of the artwork.
func (c *Client) ArtworkURL(sessionID string) string {
	return c.endpoint("/api/quiz/artwork/session/"+url.PathEscape(sessionID), nil)
}

// --------------------------------- transport -------------------------------

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	u.RawPath = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("judge: encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("judge: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) getPNG(ctx context.Context, path string, q url.Values) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/png")
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	img, err := png.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("judge: decode %s: %w", req.URL.Path, err)
	}
	return img, nil
}

// do sends req and returns the response only for 2xx statuses.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("judge request failed")
		return nil, fmt.Errorf("judge: %s %s: %w", req.Method, req.URL.Path, err)
	}
	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", res.StatusCode).
		Dur("took", time.Since(start)).
		Msg("judge request")
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, statusError(res)
	}
	return res, nil
}
