package attemptclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quizzer_backend/internal/service"
)

const defaultHTTPTimeout = 10 * time.Second

// APIError carries the server's error envelope alongside the HTTP status,
// so callers can branch on the status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to the attempt endpoints. Every call is scoped to one
// examinee email; the server checks it against the convocatory roster.
type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

func NewClient(baseURL, email string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		email:      email,
		httpClient: httpClient,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

// finalizeResponse mirrors the finalize payload, which wraps the attempt
// together with the certificate granted on a passing score.
type finalizeResponse struct {
	Attempt     *service.QuizConvocatoryAttempt `json:"attempt"`
	Certificate json.RawMessage                 `json:"certificate"`
}

func (c *Client) Current(ctx context.Context, convocatoryID string) (*service.QuizConvocatoryAttempt, error) {
	var attempt service.QuizConvocatoryAttempt
	if err := c.doJSON(ctx, http.MethodGet, c.attemptPath(convocatoryID), nil, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (c *Client) Start(ctx context.Context, convocatoryID string) (*service.QuizConvocatoryAttempt, error) {
	var attempt service.QuizConvocatoryAttempt
	if err := c.doJSON(ctx, http.MethodPost, c.attemptPath(convocatoryID), nil, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (c *Client) Autosave(ctx context.Context, convocatoryID string, req service.AutosaveAttemptRequest) (*service.QuizConvocatoryAttempt, error) {
	var attempt service.QuizConvocatoryAttempt
	if err := c.doJSON(ctx, http.MethodPut, c.attemptPath(convocatoryID), req, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (c *Client) Finalize(ctx context.Context, convocatoryID string, req service.FinalizeAttemptRequest) (*service.QuizConvocatoryAttempt, error) {
	var payload finalizeResponse
	if err := c.doJSON(ctx, http.MethodDelete, c.attemptPath(convocatoryID), req, &payload); err != nil {
		return nil, err
	}
	if payload.Attempt == nil {
		return nil, errors.New("finalize response missing attempt")
	}
	return payload.Attempt, nil
}

func (c *Client) attemptPath(convocatoryID string) string {
	query := url.Values{}
	query.Set("email", c.email)
	return "/api/convocatories/" + url.PathEscape(convocatoryID) + "/attempts/current?" + query.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, out any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: response.StatusCode}
	}

	if response.StatusCode >= 400 {
		message := ""
		if env.Error != nil {
			message = *env.Error
		}
		return &APIError{StatusCode: response.StatusCode, Message: message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
