// Package client talks to the inventory HTTP API on behalf of the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/martinsuchenak/labelinv/internal/config"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/paularlott/cli"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
	Reason  string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("server error (%d): %s [%s]", e.Status, e.Message, e.Reason)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client is a small JSON client for /api
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the server at baseURL
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Flags are the connection flags shared by every client command
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "server", Usage: "Server URL", DefaultValue: defaultServerURL()},
		&cli.StringFlag{Name: "api-token", Usage: "API authentication token", EnvVars: []string{"LABELINV_API_TOKEN"}},
	}
}

// FromCommand builds a client from the flags registered by Flags
func FromCommand(cmd *cli.Command) *Client {
	return New(cmd.GetString("server"), cmd.GetString("api-token"))
}

func defaultServerURL() string {
	cfg := config.Load()
	return "http://localhost" + cfg.ListenAddr
}

// Do sends body as JSON (if non-nil) and decodes the response into out (if
// non-nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("Sending request", "method", method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Reason = payload.Reason
	} else {
		apiErr.Message = string(bytes.TrimSpace(data))
	}
	return apiErr
}
