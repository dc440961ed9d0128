package gateway

import (
	"context"
	"fmt"
	"net/url"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google identity credential.
type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Photo    string `json:"photo,omitempty"`
}

// RecoverRequest asks the backend to send a one-time code.
type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPRequest checks a one-time code.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// ChangePasswordRequest sets a new password after a validated code.
type ChangePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login exchanges credentials for the user and their backend token.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	if err := c.public(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &user); err != nil {
		return models.User{}, err
	}
	return user, checkAuthenticated(user)
}

// LoginGoogle exchanges a Google credential for the user and their token.
func (c *Client) LoginGoogle(ctx context.Context, credential string) (models.User, error) {
	var user models.User
	if err := c.public(ctx, "/auth/google", GoogleLoginRequest{Token: credential}, &user); err != nil {
		return models.User{}, err
	}
	return user, checkAuthenticated(user)
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var user models.User
	if err := c.public(ctx, "/users/register", req, &user); err != nil {
		return models.User{}, err
	}
	if user.ID == "" {
		return models.User{}, malformed("/users/register", "missing id")
	}
	return user.Profile(), nil
}

// RecoverToken asks the backend to e-mail a recovery code.
func (c *Client) RecoverToken(ctx context.Context, email string) error {
	return c.public(ctx, "/auth/recover-token", RecoverRequest{Email: email}, nil)
}

// ValidateOTP checks a recovery code.
func (c *Client) ValidateOTP(ctx context.Context, email, otp string) error {
	return c.public(ctx, "/auth/validate-otp", OTPRequest{Email: email, OTP: otp}, nil)
}

// ChangePassword sets a new password for a validated recovery.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.public(ctx, "/auth/change-password", req, nil)
}

// GetUser fetches a user profile.
func (c *Client) GetUser(ctx context.Context, id models.ID) (models.User, error) {
	path := fmt.Sprintf("/users/%s", url.PathEscape(id.String()))
	var user models.User
	if err := c.read(ctx, path, &user); err != nil {
		return models.User{}, err
	}
	if user.ID == "" {
		return models.User{}, malformed(path, "missing id")
	}
	return user.Profile(), nil
}

func checkAuthenticated(u models.User) error {
	if u.ID == "" || u.Token == "" {
		return malformed("/auth", "missing user id or token")
	}
	return nil
}

func malformed(path, reason string) error {
	return apperrors.Wrap(apperrors.ErrBackendUnavailable, fmt.Errorf("%w: %s: %s", ErrMalformedResponse, path, reason))
}
