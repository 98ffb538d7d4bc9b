package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/common"
)

const requestTimeout = 10 * time.Second

// HTTPClient implements Client over net/http. When a call fails with a
// "token expired" 401 and a refresh token is on hand, the token pair is
// rotated via POST /api/auth/refresh and the call is retried exactly once.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *HTTPClient) Tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("http %d: %s", e.status, e.message)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// roundTrip performs one request and decodes the response into out.
func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body, out any, authenticated bool) error {

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if authenticated {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		req.Header.Set(common.AccessTokenHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &httpError{status: resp.StatusCode, message: er.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// do wraps roundTrip with the expired-token retry.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {

	err := c.roundTrip(ctx, method, path, body, out, true)
	if err == nil {
		return nil
	}

	he, ok := err.(*httpError)
	if !ok {
		return err
	}
	if he.status != http.StatusUnauthorized || he.message != "token expired" {
		return mapError(he)
	}

	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return common.ErrTokenExpired
	}

	var pair api.TokenPair
	if err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh", api.RefreshRequest{RefreshToken: refresh}, &pair, false); err != nil {
		if he, ok := err.(*httpError); ok {
			return mapError(he)
		}
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)

	// tokens refreshed, retry once with the new access token
	if err := c.roundTrip(ctx, method, path, body, out, true); err != nil {
		if he, ok := err.(*httpError); ok {
			return mapError(he)
		}
		return err
	}
	return nil
}

func mapError(e *httpError) error {
	switch e.status {
	case http.StatusUnauthorized:
		if e.message == "token expired" {
			return common.ErrTokenExpired
		}
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrEmailTaken
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, e.message)
	case http.StatusTooManyRequests:
		return common.ErrTooManyAttempts
	default:
		return common.ErrInternal
	}
}

func (c *HTTPClient) SignUp(ctx context.Context, displayName, email, password string) (*api.Session, error) {
	var session api.Session
	err := c.roundTrip(ctx, http.MethodPost, "/api/auth/signup",
		api.SignUpRequest{DisplayName: displayName, Email: email, Password: password}, &session, false)
	if err != nil {
		if he, ok := err.(*httpError); ok {
			return nil, mapError(he)
		}
		return nil, err
	}
	c.SetTokens(session.AccessToken, session.RefreshToken)
	return &session, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*api.Session, error) {
	var session api.Session
	err := c.roundTrip(ctx, http.MethodPost, "/api/auth/signin",
		api.SignInRequest{Email: email, Password: password}, &session, false)
	if err != nil {
		if he, ok := err.(*httpError); ok {
			return nil, mapError(he)
		}
		return nil, err
	}
	c.SetTokens(session.AccessToken, session.RefreshToken)
	return &session, nil
}

func (c *HTTPClient) CheckSession(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.SetTokens("", "")
	return err
}

func (c *HTTPClient) ListJobs(ctx context.Context) ([]api.Job, error) {
	var jobs []api.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, job api.Job) (*api.Job, error) {
	var created api.Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs/", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateJob(ctx context.Context, job api.Job) error {
	return c.do(ctx, http.MethodPut, "/api/jobs/"+job.ID, job, nil)
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+id, nil, nil)
}

func (c *HTTPClient) ListPayments(ctx context.Context) ([]api.Payment, error) {
	var payments []api.Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *HTTPClient) CreatePayment(ctx context.Context, payment api.Payment) (*api.Payment, error) {
	var created api.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments/", payment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdatePayment(ctx context.Context, payment api.Payment) error {
	return c.do(ctx, http.MethodPut, "/api/payments/"+payment.ID, payment, nil)
}

func (c *HTTPClient) DeletePayment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/payments/"+id, nil, nil)
}

func (c *HTTPClient) ListAgencies(ctx context.Context) ([]api.Agency, error) {
	var agencies []api.Agency
	if err := c.do(ctx, http.MethodGet, "/api/agencies/", nil, &agencies); err != nil {
		return nil, err
	}
	return agencies, nil
}

func (c *HTTPClient) CreateAgency(ctx context.Context, agency api.Agency) (*api.Agency, error) {
	var created api.Agency
	if err := c.do(ctx, http.MethodPost, "/api/agencies/", agency, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateAgency(ctx context.Context, agency api.Agency) error {
	return c.do(ctx, http.MethodPut, "/api/agencies/"+agency.ID, agency, nil)
}

func (c *HTTPClient) DeleteAgency(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/agencies/"+id, nil, nil)
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]api.Document, error) {
	var docs []api.Document
	if err := c.do(ctx, http.MethodGet, "/api/documents/", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) RequestUpload(ctx context.Context, req api.UploadRequest) (*api.UploadResponse, error) {
	var resp api.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/documents/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) MarkUploaded(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/documents/"+id+"/uploaded", nil, nil)
}

func (c *HTTPClient) DownloadURL(ctx context.Context, id string) (string, error) {
	var resp api.DownloadResponse
	if err := c.do(ctx, http.MethodGet, "/api/documents/"+id+"/url", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
