// Package authclient exchanges a username and password for a bearer token.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const loginPath = "/login"

// maxBodySize caps how much of a response body is read
const maxBodySize = 1 << 20

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Client performs the login exchange against the dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a login client for the API rooted at baseURL.
func New(baseURL string, options ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[authclient New] base URL is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Login submits the credentials and returns the issued token.
//
// A rejected login returns an *AuthError holding the server's message. A request that never
// produced a response wraps ErrConnection. The token is not persisted here.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", errors.Wrap(err, "[Login] encode credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "[Login] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("url", req.URL.String()).Msg("login request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[Login] %w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("[Login] %w: reading response: %v", ErrConnection, err)
	}
	log.Debug().Int("status", resp.StatusCode).Msg("login response")

	var decoded loginResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode != http.StatusOK {
		message := decoded.Message
		if decodeErr != nil || message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return "", &AuthError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("[Login] %w: decode response: %v", ErrInvalidToken, decodeErr)
	}
	if decoded.Token == "" {
		return "", fmt.Errorf("[Login] %w: response carried no token", ErrInvalidToken)
	}
	return decoded.Token, nil
}
