package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Start handles GET /api/auth/google/start
// @Summary Start Google OAuth authentication
// @Description Initiate the Google OAuth sign-in flow for the admin dashboard
// @Tags authentication
// @Accept json
// @Produce json
// @Success 302 {string} string "Redirect to Google authorization URL"
// @Failure 500 {object} map[string]interface{} "Failed to generate authorization URL"
// @Router /api/auth/google/start [get]
func (h *AuthHandler) Start(c *gin.Context) {
	state, err := h.service.GenerateState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state parameter"})
		return
	}

	authURL, err := h.service.GetAuthURL(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authorization URL", "details": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /api/auth/google/callback
// @Summary Handle Google OAuth callback
// @Description Exchange the authorization code, map the Google account to a dashboard user and issue a JWT
// @Tags authentication
// @Accept json
// @Produce json
// @Param code query string true "OAuth authorization code"
// @Param state query string true "OAuth state parameter"
// @Success 200 {object} AuthHandlerResponse
// @Failure 400 {object} map[string]interface{} "Invalid request parameters"
// @Failure 401 {object} map[string]interface{} "No dashboard user for this Google account"
// @Router /api/auth/google/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if errorParam := c.Query("error"); errorParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorParam, "details": c.Query("error_description")})
		return
	}
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "State parameter is required"})
		return
	}

	response, err := h.service.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh JWT token
// @Description Exchange a refresh token for a new JWT and refresh token pair
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} AuthHandlerResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid or expired refresh token"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to refresh token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Validate handles GET /api/auth/validate
// @Summary Validate JWT token
// @Description Validate the bearer token and return its claims
// @Tags authentication
// @Accept json
// @Produce json
// @Success 200 {object} AuthValidateResponse
// @Failure 401 {object} AuthValidateResponse "Invalid or missing token"
// @Router /api/auth/validate [get]
func (h *AuthHandler) Validate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader {
		c.JSON(http.StatusUnauthorized, AuthValidateResponse{Valid: false})
		return
	}

	claims, err := h.service.ValidateJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, AuthValidateResponse{Valid: false})
		return
	}

	c.JSON(http.StatusOK, AuthValidateResponse{Valid: true, Claims: claims})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Invalidate all refresh tokens for the authenticated user
// @Tags authentication
// @Accept json
// @Produce json
// @Success 200 {object} AuthLogoutResponse
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Security BearerAuth
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	h.service.Logout(userID.String())
	c.JSON(http.StatusOK, AuthLogoutResponse{Message: "Logged out successfully"})
}
