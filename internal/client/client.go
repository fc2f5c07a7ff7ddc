// Package client implements the browser-side behavior of the listing
// application as a library: fetching listings from the API, holding them
// in an application state object, filtering them locally, rendering card
// markup, and managing the persisted session.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rentease/rentease/internal/core/domain"
)

// Client is a typed HTTP client for the listing API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

type propertiesEnvelope struct {
	Properties []*domain.Property `json:"properties"`
}

type propertyEnvelope struct {
	Property *domain.Property `json:"property"`
}

type loginEnvelope struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// FetchProperties retrieves the full public listing set. An empty result
// decodes to an empty slice, never nil, so renderers can count it directly.
func (c *Client) FetchProperties(ctx context.Context) ([]*domain.Property, error) {
	var env propertiesEnvelope
	if err := c.getJSON(ctx, "/api/properties", "", &env); err != nil {
		return nil, err
	}
	if env.Properties == nil {
		env.Properties = []*domain.Property{}
	}
	return env.Properties, nil
}

// FetchProperty retrieves a single listing by id.
func (c *Client) FetchProperty(ctx context.Context, id string) (*domain.Property, error) {
	var env propertyEnvelope
	if err := c.getJSON(ctx, "/api/properties/"+id, "", &env); err != nil {
		return nil, err
	}
	return env.Property, nil
}

// FetchMyProperties retrieves the owner-scoped listing set using the
// bearer token.
func (c *Client) FetchMyProperties(ctx context.Context, token string) ([]*domain.Property, error) {
	var env propertiesEnvelope
	if err := c.getJSON(ctx, "/api/properties/my-properties", token, &env); err != nil {
		return nil, err
	}
	return env.Properties, nil
}

// Login exchanges credentials for a bearer token and display name.
func (c *Client) Login(ctx context.Context, email, password string) (token, userName string, err error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", strings.NewReader(string(body)))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var env loginEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK || env.Token == "" {
		msg := env.Message
		if msg == "" {
			msg = "login failed"
		}
		return "", "", fmt.Errorf("%s", msg)
	}
	if env.UserName == "" {
		env.UserName = emailLocalPart(email)
	}
	return env.Token, env.UserName, nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d: %s", path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
