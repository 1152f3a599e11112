// Package backendhttp implements the session backend port over HTTP.
// The backend is the authoritative session service; this client mirrors
// local wizard transitions to it and translates the relevant HTTP
// statuses to the errs sentinels the synchronization layer dispatches on.
package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client is an HTTP implementation of ports.SessionBackend.
//
// Status translation:
//   - 409 Conflict -> errs.ErrStaleSession (version divergence)
//   - 404 Not Found / 410 Gone -> errs.ErrSessionExpired
//
// Everything else non-2xx is returned as a plain error and treated as
// transient by the synchronization layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// CreateSession opens a new authoritative session and returns its id.
func (c *Client) CreateSession(ctx context.Context) (kernel.UUID, error) {
	var response struct {
		ID string `json:"id"`
	}

	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/sessions", kernel.UUID{}, nil, &response)
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(response.ID)
}

// Advance mirrors a stage transition and returns the acknowledged state.
func (c *Client) Advance(
	ctx context.Context, sessionID kernel.UUID, version int, stage wizard.Stage,
) (wizard.RemoteState, error) {
	request := struct {
		Version int `json:"version"`
		Stage   int `json:"stage"`
	}{Version: version, Stage: int(stage)}

	var response remoteStateWire
	url := fmt.Sprintf("%s/api/v1/sessions/%s/advance", c.baseURL, sessionID.String())
	if err := c.do(ctx, http.MethodPost, url, sessionID, request, &response); err != nil {
		return wizard.RemoteState{}, err
	}

	return remoteStateFromWire(response)
}

// CommitItem mirrors an item commit and returns the acknowledged state.
func (c *Client) CommitItem(
	ctx context.Context, sessionID kernel.UUID, version int, item wizard.CommittedItem,
) (wizard.RemoteState, error) {
	request := struct {
		Version int      `json:"version"`
		Item    itemWire `json:"item"`
	}{Version: version, Item: itemToWire(item)}

	var response remoteStateWire
	url := fmt.Sprintf("%s/api/v1/sessions/%s/items", c.baseURL, sessionID.String())
	if err := c.do(ctx, http.MethodPost, url, sessionID, request, &response); err != nil {
		return wizard.RemoteState{}, err
	}

	return remoteStateFromWire(response)
}

// GetState fetches the authoritative session state.
func (c *Client) GetState(ctx context.Context, sessionID kernel.UUID) (wizard.RemoteState, error) {
	var response remoteStateWire
	url := fmt.Sprintf("%s/api/v1/sessions/%s", c.baseURL, sessionID.String())
	if err := c.do(ctx, http.MethodGet, url, sessionID, nil, &response); err != nil {
		return wizard.RemoteState{}, err
	}

	return remoteStateFromWire(response)
}

// Cancel abandons the authoritative session.
func (c *Client) Cancel(ctx context.Context, sessionID kernel.UUID) error {
	url := fmt.Sprintf("%s/api/v1/sessions/%s", c.baseURL, sessionID.String())
	return c.do(ctx, http.MethodDelete, url, sessionID, nil, nil)
}

// do sends one request and decodes the response into out when out is not
// nil. The sessionID is only used for error reporting.
func (c *Client) do(
	ctx context.Context, method, url string, sessionID kernel.UUID, in, out any,
) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
	case resp.StatusCode == http.StatusConflict:
		return c.staleError(resp, sessionID)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return errs.NewSessionExpiredError(sessionID.String())
	default:
		return fmt.Errorf("unexpected status %d for %s %s", resp.StatusCode, method, url)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, url, err)
	}
	return nil
}

// staleError builds a stale session error, picking the expected and
// actual versions out of the conflict body when the backend provides them.
func (c *Client) staleError(resp *http.Response, sessionID kernel.UUID) error {
	var conflict struct {
		ExpectedVersion int `json:"expected_version"`
		ActualVersion   int `json:"actual_version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
		return errs.NewStaleSessionError(sessionID.String(), 0, 0)
	}
	return errs.NewStaleSessionError(sessionID.String(), conflict.ExpectedVersion, conflict.ActualVersion)
}
