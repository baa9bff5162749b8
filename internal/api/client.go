// Package api is a small client for the Lobster Notes REST backend.
// Views use it to load their own data; the router never does.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is where the development backend listens.
const DefaultBaseURL = "http://127.0.0.1:8080/api"

// Error is returned for any non-2xx answer.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Client talks JSON to the backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOpt configures a Client.
type ClientOpt func(c *Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on the default http.Client.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.  The default is slog.Default().
func WithLogger(l *slog.Logger) ClientOpt {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for the backend at baseURL (for example
// "http://127.0.0.1:8080/api").  An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOpt) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// BaseURL returns the backend URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListResources returns all resources.
func (c *Client) ListResources(ctx context.Context) ([]Resource, error) {
	var ret []Resource
	err := c.do(ctx, http.MethodGet, "/resources", nil, nil, &ret)
	return ret, err
}

// GetResource returns one resource with its format-specific details.
func (c *Client) GetResource(ctx context.Context, id int64) (*Resource, error) {
	var ret Resource
	err := c.do(ctx, http.MethodGet, "/resources/"+strconv.FormatInt(id, 10), nil, nil, &ret)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// SearchResources returns resources matching q.  An empty query returns
// no results without asking the backend.
func (c *Client) SearchResources(ctx context.Context, q string) ([]Resource, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var ret []Resource
	err := c.do(ctx, http.MethodGet, "/resources", url.Values{"search": {q}}, nil, &ret)
	return ret, err
}

// CreateResource saves a new resource.
func (c *Client) CreateResource(ctx context.Context, in NewResource) (*Created, error) {
	var ret Created
	if err := c.do(ctx, http.MethodPost, "/resources", nil, in, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var ret []User
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &ret)
	return ret, err
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, in NewUser) (*Created, error) {
	in.Name = strings.TrimSpace(in.Name)
	var ret Created
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListCourses returns all courses.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var ret []Course
	err := c.do(ctx, http.MethodGet, "/courses", nil, nil, &ret)
	return ret, err
}

// CourseRoster returns the students enrolled in a course.
// Professors listed on the roster are left out.
func (c *Client) CourseRoster(ctx context.Context, courseID int64) ([]User, error) {
	var all []User
	err := c.do(ctx, http.MethodGet, "/course/"+strconv.FormatInt(courseID, 10)+"/roster", nil, nil, &all)
	if err != nil {
		return nil, err
	}
	ret := all[:0]
	for _, u := range all {
		if !u.IsProfessor {
			ret = append(ret, u)
		}
	}
	return ret, nil
}

// ProfessorCourses returns the courses a professor teaches.
func (c *Client) ProfessorCourses(ctx context.Context, profID int64) ([]Course, error) {
	var ret []Course
	err := c.do(ctx, http.MethodGet, "/professor/"+strconv.FormatInt(profID, 10)+"/courses", nil, nil, &ret)
	return ret, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encoding request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &eb) == nil && eb.Error != "" {
		apiErr.Message = eb.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}
