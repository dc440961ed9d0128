package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/services"
	"finboard/internal/session"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService     services.AuthServicer
	activityService services.ActivityServicer
	jwtSecret       string
	jwtTTL          time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, activityService services.ActivityServicer, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		activityService: activityService,
		jwtSecret:       jwtSecret,
		jwtTTL:          jwtTTL,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// GoogleLoginRequest represents a Google sign-in payload
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Photo    string `json:"photo" binding:"omitempty,url"`
}

// RecoverRequest represents a password recovery request
type RecoverRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ValidateOTPRequest represents a recovery code check
type ValidateOTPRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	OTP   string `json:"otp" binding:"required,max=32"`
}

// ChangePasswordRequest represents the final step of a password recovery
type ChangePasswordRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID    models.ID `json:"id" swaggertype:"string"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Photo string    `json:"photo,omitempty"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Photo: u.Photo}
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate against the backend, open a session and load the user's records
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithToken(c, sess)
}

// LoginGoogle handles Google sign-in
// @Summary     Login with Google
// @Description Exchange a Google identity credential for a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body GoogleLoginRequest true "Google credential"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /auth/google [post]
func (h *AuthHandler) LoginGoogle(c *gin.Context) {
	var req GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.authService.LoginGoogle(c.Request.Context(), req.Credential)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithToken(c, sess)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, sess *session.Session) {
	token, expiresAt, err := middleware.GenerateAccessToken(sess, h.jwtSecret, h.jwtTTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.activityService.Log(sess.UserID().String(), services.ActionLogin, "session", sess.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(sess.User),
	})
}

// Register handles user registration
// @Summary     Register a new user
// @Description Create a backend account. The new user still has to log in.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} map[string]UserResponse "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), gateway.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Photo:    req.Photo,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(*user)})
}

// Recover handles password recovery requests
// @Summary     Request a recovery code
// @Description Ask the backend to e-mail a one-time code
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RecoverRequest true "Account e-mail"
// @Success     200 {object} map[string]string "Code sent"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /auth/recover [post]
func (h *AuthHandler) Recover(c *gin.Context) {
	var req RecoverRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.Recover(c.Request.Context(), req.Email); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recovery code sent"})
}

// ValidateOTP handles recovery code checks
// @Summary     Validate a recovery code
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ValidateOTPRequest true "E-mail and code"
// @Success     200 {object} map[string]string "Code accepted"
// @Failure     400 {object} ErrorResponse "Invalid input or no recovery in progress"
// @Failure     502 {object} ErrorResponse "Backend rejected the code"
// @Router      /auth/validate-otp [post]
func (h *AuthHandler) ValidateOTP(c *gin.Context) {
	var req ValidateOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ValidateOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code validated"})
}

// ChangePassword handles the final step of a password recovery
// @Summary     Change password
// @Description Set a new password after the recovery code was validated
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ChangePasswordRequest true "E-mail and new password"
// @Success     200 {object} map[string]string "Password changed"
// @Failure     400 {object} ErrorResponse "Invalid input or code not validated"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), req.Email, req.Password); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// Logout ends the current session
// @Summary     Logout
// @Description Delete the session and forget the user's loaded records
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(sess.UserID().String(), services.ActionLogout, "session", sess.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile from the backend
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.authService.Profile(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(*user)})
}
