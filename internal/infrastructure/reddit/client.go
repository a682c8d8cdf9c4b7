// Package reddit reads the newest posts of a subreddit through the OAuth
// read API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gameday-relay/internal/config"
	"github.com/gameday-relay/internal/domain"
)

const (
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL   = "https://oauth.reddit.com"
)

// Client is an authenticated Reddit read client. It holds the short-lived
// access token obtained from the refresh-token grant and renews it on expiry.
type Client struct {
	tokenURL     string
	apiURL       string
	clientID     string
	clientSecret string
	refreshToken string
	userAgent    string
	subreddit    string
	client       *http.Client

	accessToken string
	tokenExpiry time.Time
}

// Option overrides a Client default.
type Option func(*Client)

// WithEndpoints points the client at alternate token and API base URLs.
func WithEndpoints(tokenURL, apiURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
		c.apiURL = apiURL
	}
}

func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		tokenURL:     defaultTokenURL,
		apiURL:       defaultAPIURL,
		clientID:     cfg.RedditClientID,
		clientSecret: cfg.RedditClientSecret,
		refreshToken: cfg.RedditRefreshToken,
		userAgent:    cfg.RedditUserAgent,
		subreddit:    cfg.RedditSubreddit,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken exchanges the refresh token for an access token, caching it
// until expiry.
func (c *Client) getAccessToken(ctx context.Context) error {
	if c.accessToken != "" && c.tokenExpiry.After(time.Now()) {
		return nil
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", c.refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, b)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return nil
}

// listing mirrors the slice of the /new response we care about.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title  string `json:"title"`
				Author string `json:"author"`
				URL    string `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewestPosts returns the default first page of the subreddit's newest
// posts, newest first. It does not paginate; callers get one batch.
func (c *Client) NewestPosts(ctx context.Context) ([]domain.Post, error) {
	if err := c.getAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("reddit auth: %w", err)
	}

	endpoint := fmt.Sprintf("%s/r/%s/new", c.apiURL, c.subreddit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing request failed with status %d", resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode listing response: %w", err)
	}

	posts := make([]domain.Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		posts = append(posts, domain.Post{
			Title:  child.Data.Title,
			Author: child.Data.Author,
			URL:    child.Data.URL,
		})
	}
	return posts, nil
}
