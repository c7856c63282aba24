package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prtracker/prtracker/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// https://developers.strava.com/docs/authentication/

const authScope = "activity:read_all"

type Client struct {
	httpClient   *http.Client
	apiBaseURL   string
	authBaseURL  string
	clientID     string
	clientSecret string
	redirectURI  string
}

type NewClientParams struct {
	APIBaseURL   string
	AuthBaseURL  string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func NewClient(params NewClientParams) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiBaseURL:   strings.TrimSuffix(params.APIBaseURL, "/"),
		authBaseURL:  strings.TrimSuffix(params.AuthBaseURL, "/"),
		clientID:     params.ClientID,
		clientSecret: params.ClientSecret,
		redirectURI:  params.RedirectURI,
	}
}

// AuthCodeURL builds the strava authorization URL the user is redirected to.
func (c *Client) AuthCodeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", c.clientID)
	query.Set("redirect_uri", c.redirectURI)
	query.Set("response_type", "code")
	query.Set("approval_prompt", "auto")
	query.Set("scope", authScope)
	query.Set("state", state)
	return fmt.Sprintf("%s/oauth/authorize?%s", c.authBaseURL, query.Encode())
}

// ExchangeCode trades an authorization code for a token set.
func (c *Client) ExchangeCode(ctx context.Context, code string) (_ *TokenData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.exchangeCode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return c.tokenRequest(ctx, url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	})
}

// Refresh trades a refresh token for a fresh token set.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (_ *TokenData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return c.tokenRequest(ctx, url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	})
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*TokenData, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.authBaseURL+"/oauth/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, body)
	}

	var tokenData TokenData
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &tokenData, nil
}

// Activities fetches one page of the athlete's activities.
func (c *Client) Activities(ctx context.Context, accessToken string, page, perPage int) (_ []ActivitySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.activities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reqURL := fmt.Sprintf("%s/athlete/activities?page=%d&per_page=%d", c.apiBaseURL, page, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("activities endpoint status %d", resp.StatusCode)
	}

	var activities []ActivitySummary
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return activities, nil
}

type streamSet struct {
	HeartRate *struct {
		Data []int `json:"data"`
	} `json:"heartrate"`
	Time *struct {
		Data []int `json:"data"`
	} `json:"time"`
}

// ActivityStream fetches the heartrate and time streams of one activity.
// Activities without a heart-rate stream yield empty slices, not an error.
func (c *Client) ActivityStream(ctx context.Context, accessToken string, activityID int64) (_ *ActivityStream, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.activityStream")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reqURL := fmt.Sprintf(
		"%s/activities/%d/streams?keys=heartrate,time&key_by_type=true",
		c.apiBaseURL, activityID,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("streams endpoint status %d", resp.StatusCode)
	}

	var set streamSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	stream := &ActivityStream{}
	if set.HeartRate != nil {
		stream.HeartRates = set.HeartRate.Data
	}
	if set.Time != nil {
		stream.TimeOffsets = set.Time.Data
	}

	return stream, nil
}
