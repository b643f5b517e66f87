package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/common"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// HTTPClient is the concrete Client over net/http. The cookie jar holds the
// session_id cookie between calls, the browser-equivalent of sending
// credentials with every request.
type HTTPClient struct {
	baseURL *url.URL
	jar     *cookiejar.Jar
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:3046".
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: u,
		jar:     jar,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log.With("component", "api"),
	}, nil
}

// loginEnvelope is the POST /api/v1/login and /api/v1/signup response shape.
type loginEnvelope struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// userEnvelope is the shape shared by the user fetch/update endpoints.
type userEnvelope struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
}

// searchEnvelope is the GET /api/v1/users/search response shape.
type searchEnvelope struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
	Count   int           `json:"count"`
	Error   string        `json:"error"`
	Message string        `json:"message"`
}

func (c *HTTPClient) endpoint(path string) string {
	u := *c.baseURL
	u.Path = path
	return u.String()
}

// do issues a request with a JSON body (may be nil) and a fresh correlation
// ID. Transport-level failures map to ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, query url.Values) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	u := c.endpoint(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeBody(resp *http.Response, v any) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}

// Login authenticates against POST /api/v1/login. The server sets the
// session cookie on success; the jar retains it for subsequent calls.
// Failure statuses map to a ServerError whose message is the backend's
// own when present, or the status-specific default otherwise.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	payload := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/login", payload, nil)
	if err != nil {
		return nil, "", err
	}

	var env loginEnvelope
	if decodeErr := decodeBody(resp, &env); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return nil, "", decodeErr
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if env.User == nil {
			return nil, "", fmt.Errorf("malformed login response: user missing")
		}
		return env.User, env.Message, nil
	case http.StatusNotFound:
		return nil, "", serverError(resp.StatusCode, env.Message, "User not found")
	case http.StatusUnauthorized:
		return nil, "", serverError(resp.StatusCode, env.Message, "Wrong password")
	case http.StatusBadRequest:
		return nil, "", serverError(resp.StatusCode, env.Message, "Bad request")
	case http.StatusInternalServerError:
		return nil, "", serverError(resp.StatusCode, "", "Server error. Please try again.")
	default:
		return nil, "", serverError(resp.StatusCode, env.Message, resp.Status)
	}
}

// Signup creates an account via POST /api/v1/signup.
func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/signup", req, nil)
	if err != nil {
		return "", err
	}

	var env loginEnvelope
	if decodeErr := decodeBody(resp, &env); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return "", decodeErr
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", serverError(resp.StatusCode, env.Message, "Signup failed. Please try again.")
	}
	return env.Message, nil
}

// Verify posts to /api/v1/middleware with the ambient session cookie.
// A single attempt, no retry: anything but a well-formed 200 means the
// session is treated as invalid.
func (c *HTTPClient) Verify(ctx context.Context) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/middleware", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: verification returned %d", ErrUnauthorized, resp.StatusCode)
	}

	var env userEnvelope
	if err := decodeBody(resp, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if env.User == nil {
		return nil, fmt.Errorf("%w: verification returned no user", ErrUnauthorized)
	}
	return env.User, nil
}

// GetUser fetches GET /api/v1/user/:email.
func (c *HTTPClient) GetUser(ctx context.Context, email string) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/user/"+url.PathEscape(email), nil, nil)
	if err != nil {
		return nil, err
	}

	var env userEnvelope
	if decodeErr := decodeBody(resp, &env); decodeErr != nil {
		if resp.StatusCode == http.StatusOK {
			return nil, decodeErr
		}
		env = userEnvelope{}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	case resp.StatusCode != http.StatusOK:
		return nil, serverError(resp.StatusCode, firstNonEmpty(env.Error, env.Message), "Failed to fetch user: "+resp.Status)
	case !env.Success || env.User == nil:
		return nil, serverError(resp.StatusCode, env.Error, "Failed to get user data")
	}
	return env.User, nil
}

// UpdateUser submits PUT /api/v1/users/:email with the changed fields.
// On failure the backend's error field is surfaced verbatim when present.
func (c *HTTPClient) UpdateUser(ctx context.Context, email string, req models.UpdateUserRequest) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodPut, "/api/v1/users/"+url.PathEscape(email), req, nil)
	if err != nil {
		return nil, err
	}

	var env userEnvelope
	if decodeErr := decodeBody(resp, &env); decodeErr != nil {
		if resp.StatusCode == http.StatusOK {
			return nil, decodeErr
		}
		env = userEnvelope{}
	}

	switch {
	case resp.StatusCode != http.StatusOK:
		return nil, serverError(resp.StatusCode, firstNonEmpty(env.Error, env.Message), fmt.Sprintf("Update failed: %d", resp.StatusCode))
	case !env.Success || env.User == nil:
		return nil, serverError(resp.StatusCode, env.Error, "Update failed")
	}
	return env.User, nil
}

// SearchUsers queries GET /api/v1/users/search?q=. A 401 maps to
// ErrUnauthorized so the caller can redirect to login.
func (c *HTTPClient) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	q := url.Values{}
	q.Set("q", query)
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/users/search", nil, q)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, ErrUnauthorized
	}

	var env searchEnvelope
	if decodeErr := decodeBody(resp, &env); decodeErr != nil {
		if resp.StatusCode == http.StatusOK {
			return nil, decodeErr
		}
		env = searchEnvelope{}
	}

	switch {
	case resp.StatusCode != http.StatusOK:
		return nil, serverError(resp.StatusCode, firstNonEmpty(env.Error, env.Message), "Search failed")
	case !env.Success:
		return nil, serverError(resp.StatusCode, firstNonEmpty(env.Error, env.Message), "Search failed")
	}
	return env.Users, nil
}

// Logout posts to /api/v1/logout carrying the current session cookie value
// in the body, mirroring what the browser client sent. The response is
// ignored beyond transport success.
func (c *HTTPClient) Logout(ctx context.Context) error {
	payload := map[string]string{"sessionId": c.SessionCookie()}
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/logout", payload, nil)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return serverError(resp.StatusCode, "", "logout failed: "+resp.Status)
	}
	return nil
}

func (c *HTTPClient) SessionCookie() string {
	for _, ck := range c.jar.Cookies(c.baseURL) {
		if ck.Name == common.SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

func (c *HTTPClient) SetSessionCookie(value string) {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  common.SessionCookieName,
		Value: value,
		Path:  "/",
	}})
}

func (c *HTTPClient) ClearSessionCookie() {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   common.SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
}

func serverError(status int, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &ServerError{StatusCode: status, Message: message}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
