// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/council-ballot/models"
)

var ErrNoElection = errors.New("no election selected")

// APIError is a non-2xx reply from the election API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("election api: %s (status %d)", e.Message, e.StatusCode)
}

// IsAlreadyVoted reports whether err is the API refusing a second ballot.
func IsAlreadyVoted(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "already voted")
}

// IsElectionClosed reports whether err is the API refusing a vote because
// the election window is closed.
func IsElectionClosed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "closed")
}

// Client talks to the election API on behalf of one browser session. The
// API authenticates with a session cookie, so every Client has its own jar.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Session handles GET /auth/session
// A 401 means "not logged in" and is not an error.
func (c *Client) Session(ctx context.Context) (models.SessionInfo, error) {
	var info models.SessionInfo
	err := c.do(ctx, http.MethodGet, "/auth/session", nil, &info)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return models.SessionInfo{Authenticated: false}, nil
	}
	return info, err
}

// DemoLogin handles POST /auth/demo
func (c *Client) DemoLogin(ctx context.Context) (models.SessionInfo, error) {
	var info models.SessionInfo
	err := c.do(ctx, http.MethodPost, "/auth/demo", nil, &info)
	return info, err
}

// Logout handles POST /auth/logout
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Elections handles GET /elections
func (c *Client) Elections(ctx context.Context) ([]models.Election, error) {
	elections := []models.Election{}
	err := c.do(ctx, http.MethodGet, "/elections", nil, &elections)
	return elections, err
}

// CreateElection handles POST /elections
func (c *Client) CreateElection(ctx context.Context, req models.CreateElectionRequest) (models.Election, error) {
	var election models.Election
	err := c.do(ctx, http.MethodPost, "/elections", req, &election)
	return election, err
}

// Candidates handles GET /elections/{id}/candidates
func (c *Client) Candidates(ctx context.Context, electionID string) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	err := c.doElection(ctx, http.MethodGet, electionID, "/candidates", nil, &candidates)
	return candidates, err
}

// ElectionStatus handles GET /elections/{id}/election/status
func (c *Client) ElectionStatus(ctx context.Context, electionID string) (models.ElectionStatus, error) {
	var status models.ElectionStatus
	err := c.doElection(ctx, http.MethodGet, electionID, "/election/status", nil, &status)
	return status, err
}

// SubmitVote handles POST /elections/{id}/votes/submit
func (c *Client) SubmitVote(ctx context.Context, electionID string, payload models.BallotPayload) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.doElection(ctx, http.MethodPost, electionID, "/votes/submit", payload, &resp)
	return resp, err
}

// Results handles GET /elections/{id}/results
func (c *Client) Results(ctx context.Context, electionID string) (models.Results, error) {
	var results models.Results
	err := c.doElection(ctx, http.MethodGet, electionID, "/results", nil, &results)
	return results, err
}

// AdminCandidates handles GET /elections/{id}/admin/candidates
func (c *Client) AdminCandidates(ctx context.Context, electionID string) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	err := c.doElection(ctx, http.MethodGet, electionID, "/admin/candidates", nil, &candidates)
	return candidates, err
}

// AddCandidate handles POST /elections/{id}/admin/candidates
func (c *Client) AddCandidate(ctx context.Context, electionID string, req models.AddCandidateRequest) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.doElection(ctx, http.MethodPost, electionID, "/admin/candidates", req, &candidate)
	return candidate, err
}

// DeleteCandidate handles DELETE /elections/{id}/admin/candidates/{cid}
func (c *Client) DeleteCandidate(ctx context.Context, electionID string, candidateID int) error {
	return c.doElection(ctx, http.MethodDelete, electionID, "/admin/candidates/"+strconv.Itoa(candidateID), nil, nil)
}

// ToggleElection handles POST /elections/{id}/admin/election/toggle
func (c *Client) ToggleElection(ctx context.Context, electionID string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.doElection(ctx, http.MethodPost, electionID, "/admin/election/toggle", nil, &resp)
	return resp, err
}

// ScheduleElection handles POST /elections/{id}/admin/election/schedule
func (c *Client) ScheduleElection(ctx context.Context, electionID string, req models.ScheduleElectionRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.doElection(ctx, http.MethodPost, electionID, "/admin/election/schedule", req, &resp)
	return resp, err
}

// ExportVotes handles GET /elections/{id}/admin/votes/export[/csv]
// The caller must close the returned body.
func (c *Client) ExportVotes(ctx context.Context, electionID, format string) (io.ReadCloser, string, error) {
	if electionID == "" {
		return nil, "", ErrNoElection
	}

	path := "/elections/" + electionID + "/admin/votes/export"
	if format == models.ExportCSV {
		path += "/csv"
	}

	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) doElection(ctx context.Context, method, electionID, endpoint string, body, out interface{}) error {
	if electionID == "" {
		return ErrNoElection
	}
	return c.do(ctx, method, "/elections/"+electionID+endpoint, body, out)
}

// do sends a JSON request and decodes a JSON reply into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx replies into *APIError.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var errBody models.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	return resp, nil
}
