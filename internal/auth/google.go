package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleClient wraps the Google OAuth2 flow used for dashboard sign-in
type GoogleClient struct {
	config *providerConfig
}

// UserProfile represents a Google user profile returned after sign-in
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// NewGoogleClient creates a new Google OAuth2 client
func NewGoogleClient(config *providerConfig) *GoogleClient {
	return &GoogleClient{config: config}
}

// GetOAuth2Config returns the OAuth2 configuration for the Google provider
func (c *GoogleClient) GetOAuth2Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}
}

// GetUserProfile fetches the authenticated user's profile from Google
func (c *GoogleClient) GetUserProfile(ctx context.Context, accessToken string) (*UserProfile, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("invalid access token")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}

	return &UserProfile{
		ID:        info.ID,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}

// ValidateConfig validates the Google client configuration
func (c *GoogleClient) ValidateConfig() error {
	if c.config.ClientID == "" {
		return fmt.Errorf("client ID is required")
	}
	if c.config.ClientSecret == "" {
		return fmt.Errorf("client secret is required")
	}
	return nil
}
