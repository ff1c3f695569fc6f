package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// RefreshTokenData stores information about a refresh token
type RefreshTokenData struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	CompanyID   *string   `json:"company_id,omitempty"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserRepository defines the user lookup needed by the auth service
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
}

// AuthService provides authentication functionality
type AuthService struct {
	config        *AuthConfig
	googleClient  *GoogleClient
	refreshTokens map[string]*RefreshTokenData // In-memory store for refresh tokens
	tokenMutex    sync.RWMutex                 // Protect the refresh token store
	userRepo      UserRepository
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               string  `json:"user_id" example:"8e9db1a0-5b86-4b33-9f0b-2f6d6f8f8f10"`
	Email                string  `json:"email" example:"admin@example.com"`
	CompanyID            *string `json:"company_id,omitempty" example:"a2cbb3ac-6a8c-4f1e-8d7e-3c8d9c8f0001"`
	Role                 string  `json:"role" example:"company_admin"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// AuthStartResponse represents the response for auth start endpoint
type AuthStartResponse struct {
	URL string `json:"url"`
}

// AuthHandlerResponse represents the response for auth callback endpoint
type AuthHandlerResponse struct {
	AccessToken  string      `json:"accessToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	Profile      UserProfile `json:"profile"`
}

// RefreshTokenRequest represents the request for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthLogoutResponse represents the response from the logout endpoint
type AuthLogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid  bool        `json:"valid" example:"true"`
	Claims *AuthClaims `json:"claims"`
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, userRepo UserRepository) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &AuthService{
		config:        config,
		googleClient:  NewGoogleClient(&config.Google),
		refreshTokens: make(map[string]*RefreshTokenData),
		tokenMutex:    sync.RWMutex{},
		userRepo:      userRepo,
	}, nil
}

// GetAuthURL generates the Google OAuth2 authorization URL
func (s *AuthService) GetAuthURL(state string) (string, error) {
	callbackURL := fmt.Sprintf("%s/api/auth/google/callback", s.config.RedirectURL)
	oauth2Config := s.googleClient.GetOAuth2Config(callbackURL)
	return oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// HandleCallback processes the OAuth2 callback, maps the Google profile to a
// dashboard user and issues a JWT. Users unknown to the backend or flagged
// inactive are rejected.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (*AuthHandlerResponse, error) {
	callbackURL := fmt.Sprintf("%s/api/auth/google/callback", s.config.RedirectURL)
	oauth2Config := s.googleClient.GetOAuth2Config(callbackURL)

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	profile, err := s.googleClient.GetUserProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	user, err := s.userRepo.GetByEmail(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("no dashboard user for %s: %w", profile.Email, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %s is deactivated", profile.Email)
	}

	jwtToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	var companyID *string
	if user.CompanyID != nil {
		id := user.CompanyID.String()
		companyID = &id
	}

	s.tokenMutex.Lock()
	s.refreshTokens[refreshToken] = &RefreshTokenData{
		UserID:      user.ID.String(),
		Email:       user.Email,
		CompanyID:   companyID,
		Role:        string(user.Role),
		AccessToken: token.AccessToken,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
		CreatedAt:   time.Now(),
	}
	s.tokenMutex.Unlock()

	return &AuthHandlerResponse{
		AccessToken:  jwtToken,
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		RefreshToken: refreshToken,
		Profile:      *profile,
	}, nil
}

// RefreshToken generates a new JWT token from a refresh token
func (s *AuthService) RefreshToken(refreshToken string) (*AuthHandlerResponse, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("invalid refresh token")
	}

	if time.Now().After(tokenData.ExpiresAt) {
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, fmt.Errorf("refresh token has expired")
	}

	// Re-read the user so role or deactivation changes take effect on refresh
	user, err := s.userRepo.GetByEmail(tokenData.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh user %s: %w", tokenData.Email, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %s is deactivated", tokenData.Email)
	}

	jwtToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new JWT: %w", err)
	}

	newRefreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new refresh token: %w", err)
	}

	var companyID *string
	if user.CompanyID != nil {
		id := user.CompanyID.String()
		companyID = &id
	}

	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.refreshTokens[newRefreshToken] = &RefreshTokenData{
		UserID:      user.ID.String(),
		Email:       user.Email,
		CompanyID:   companyID,
		Role:        string(user.Role),
		AccessToken: tokenData.AccessToken,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
		CreatedAt:   time.Now(),
	}
	s.tokenMutex.Unlock()

	return &AuthHandlerResponse{
		AccessToken:  jwtToken,
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		RefreshToken: newRefreshToken,
		Profile: UserProfile{
			Email: user.Email,
			Name:  user.FullName(),
		},
	}, nil
}

// GenerateJWT creates a JWT token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()

	var companyID *string
	if user.CompanyID != nil {
		id := user.CompanyID.String()
		companyID = &id
	}

	claims := &AuthClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		CompanyID: companyID,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "saas-admin-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GenerateState generates a random state parameter for OAuth2
func (s *AuthService) GenerateState() (string, error) {
	return s.generateRandomString(32)
}

// Logout invalidates all refresh tokens belonging to the user
func (s *AuthService) Logout(userID string) {
	s.tokenMutex.Lock()
	defer s.tokenMutex.Unlock()

	for token, data := range s.refreshTokens {
		if data.UserID == userID {
			delete(s.refreshTokens, token)
		}
	}
}

// generateRefreshToken generates a random refresh token
func (s *AuthService) generateRefreshToken() (string, error) {
	return s.generateRandomString(64)
}

// generateRandomString generates a random base64 encoded string
func (s *AuthService) generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
