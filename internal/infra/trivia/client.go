package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"quizbabu-service/internal/domain"
)

// DefaultBaseURL is the Open Trivia DB question endpoint.
const DefaultBaseURL = "https://opentdb.com/api.php"

// Response codes returned by Open Trivia DB.
const (
	CodeSuccess       = 0
	CodeNoResults     = 1
	CodeInvalidParam  = 2
	CodeTokenNotFound = 3
	CodeTokenEmpty    = 4
	CodeRateLimit     = 5
)

// ResponseError reports a non-zero response_code.
type ResponseError struct {
	Code int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("trivia api returned response code %d (%s)", e.Code, codeText(e.Code))
}

func (e *ResponseError) Unwrap() error { return domain.ErrSourceUnavailable }

func codeText(code int) string {
	switch code {
	case CodeNoResults:
		return "no results"
	case CodeInvalidParam:
		return "invalid parameter"
	case CodeTokenNotFound:
		return "token not found"
	case CodeTokenEmpty:
		return "token empty"
	case CodeRateLimit:
		return "rate limit"
	default:
		return "unknown"
	}
}

type apiResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

// Client fetches question batches from Open Trivia DB.
// Concurrent requests for the same amount share one upstream call, since the
// provider limits each client IP to one request every few seconds.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	sf      singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchQuestions requests amount questions. Any failure, including a
// non-zero response code, is returned as an error wrapping domain.ErrSourceUnavailable.
// The upstream call is shared by concurrent callers and is not bound to any one
// of them; each caller only stops waiting when its own ctx is done.
func (c *Client) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	key := strconv.Itoa(amount)
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		return c.fetch(shared, amount)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.log.Debug("trivia fetch shared with concurrent caller", zap.Int("amount", amount))
	}
	questions := res.Val.([]domain.Question)
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}

func (c *Client) fetch(ctx context.Context, amount int) ([]domain.Question, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse trivia url: %w", err)
	}
	q := endpoint.Query()
	q.Set("amount", strconv.Itoa(amount))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build trivia request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrSourceUnavailable, err)
	}
	if body.ResponseCode != CodeSuccess {
		return nil, &ResponseError{Code: body.ResponseCode}
	}

	c.log.Debug("fetched trivia questions", zap.Int("requested", amount), zap.Int("received", len(body.Results)))
	return body.Results, nil
}
