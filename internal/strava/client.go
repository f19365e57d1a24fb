package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// streamKeys are the streams requested for a point series
const streamKeys = "latlng,time,distance,heartrate"

// Options configures a Client
type Options struct {
	APIURL       string
	OAuthURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Timeout      time.Duration
}

// Client handles communication with the Strava API and its OAuth endpoints.
type Client struct {
	apiURL       string
	oauthURL     string
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

// New creates a new API client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL:       strings.TrimRight(opts.APIURL, "/"),
		oauthURL:     strings.TrimRight(opts.OAuthURL, "/"),
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		redirectURI:  opts.RedirectURI,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// AuthorizeURL returns the consent page URL the user is redirected to on login.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.redirectURI)
	q.Set("approval_prompt", "force")
	q.Set("scope", "activity:read_all")
	if state != "" {
		q.Set("state", state)
	}
	return c.oauthURL + "/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange failed: %w", models.ErrUnauthorized)
	}
	return &token, nil
}

// ListActivities returns the athlete's most recent activities.
func (c *Client) ListActivities(ctx context.Context, accessToken string, perPage, page int) ([]models.ActivitySummary, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var raw []activity
	if err := c.get(ctx, accessToken, "/athlete/activities?"+q.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("list activities failed: %w", err)
	}

	out := make([]models.ActivitySummary, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.summary())
	}
	return out, nil
}

// FetchActivitySummary returns the metadata of one activity.
func (c *Client) FetchActivitySummary(ctx context.Context, accessToken string, activityID int64) (*models.ActivitySummary, error) {
	var raw activity
	path := fmt.Sprintf("/activities/%d", activityID)
	if err := c.get(ctx, accessToken, path, &raw); err != nil {
		return nil, fmt.Errorf("fetch activity %d failed: %w", activityID, err)
	}
	s := raw.summary()
	return &s, nil
}

// FetchPointSeries returns the ordered samples of one activity.
func (c *Client) FetchPointSeries(ctx context.Context, accessToken string, activityID int64) (models.PointSeries, error) {
	q := url.Values{}
	q.Set("keys", streamKeys)
	q.Set("key_by_type", "true")

	var raw streams
	path := fmt.Sprintf("/activities/%d/streams?%s", activityID, q.Encode())
	if err := c.get(ctx, accessToken, path, &raw); err != nil {
		return nil, fmt.Errorf("fetch streams for activity %d failed: %w", activityID, err)
	}
	return raw.pointSeries(), nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError maps a non-2xx response onto the shared error kinds
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", models.ErrNotFound, detail)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", models.ErrUnauthorized, resp.StatusCode, detail)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", models.ErrUnavailable, resp.StatusCode, detail)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}
