package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/platterhq/platter/domain"
)

var _ domain.FoodRepository = (*Client)(nil)

// maxErrorBody bounds how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// StatusError is returned when the remote answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a StatusError carrying a 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client is a typed HTTP client for the /foods collection.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client for the collection rooted at baseURL, e.g. "http://localhost:3333".
func New(baseURL string, options ...func(*Client)) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) func(*Client) {
	return func(client *Client) {
		client.httpClient.Timeout = timeout
	}
}

// BaseURL returns the collection root this client talks to.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// ListFoods fetches GET /foods.
func (client *Client) ListFoods(ctx context.Context) ([]domain.Food, error) {
	var foods []domain.Food
	if err := client.do(ctx, http.MethodGet, "/foods", nil, &foods); err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if foods == nil {
		foods = []domain.Food{}
	}
	return foods, nil
}

// GetFood fetches GET /foods/{id}.
func (client *Client) GetFood(ctx context.Context, id int) (domain.Food, error) {
	var food domain.Food
	if err := client.do(ctx, http.MethodGet, foodPath(id), nil, &food); err != nil {
		return domain.Food{}, fmt.Errorf("get food %d: %w", id, err)
	}
	return food, nil
}

// CreateFood sends POST /foods with the full food object.
func (client *Client) CreateFood(ctx context.Context, food domain.Food) (domain.Food, error) {
	var created domain.Food
	if err := client.do(ctx, http.MethodPost, "/foods", food, &created); err != nil {
		return domain.Food{}, fmt.Errorf("create food %d: %w", food.ID, err)
	}
	return created, nil
}

// ReplaceFood sends PUT /foods/{id} with the full food object.
func (client *Client) ReplaceFood(ctx context.Context, food domain.Food) (domain.Food, error) {
	var replaced domain.Food
	if err := client.do(ctx, http.MethodPut, foodPath(food.ID), food, &replaced); err != nil {
		return domain.Food{}, fmt.Errorf("replace food %d: %w", food.ID, err)
	}
	return replaced, nil
}

// DeleteFood sends DELETE /foods/{id}.
func (client *Client) DeleteFood(ctx context.Context, id int) error {
	if err := client.do(ctx, http.MethodDelete, foodPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	return nil
}

func foodPath(id int) string {
	return "/foods/" + strconv.Itoa(id)
}

// do issues a single request. When payload is non-nil it is sent as JSON; when
// result is non-nil a non-empty response body is decoded into it.
func (client *Client) do(ctx context.Context, method, path string, payload, result any) error {
	url := client.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       errorBody(resp.Body),
		}
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

func errorBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(data))
}
