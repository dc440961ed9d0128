package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/session"
)

const tokenIssuer = "finboard-api"

// Gin context keys set by AuthMiddleware.
const (
	SessionKey = "session"
	UserIDKey  = "userID"
)

// DashboardClaims represents the claims in a dashboard access token. The
// subject is the session ID; the backend token never leaves the server.
type DashboardClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an access token for sess. It never outlives the
// session itself.
func GenerateAccessToken(sess *session.Session, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	if !sess.ExpiresAt.IsZero() && sess.ExpiresAt.Before(expiresAt) {
		expiresAt = sess.ExpiresAt
	}

	claims := &DashboardClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   sess.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccessToken validates a signed access token and returns its claims.
func ParseAccessToken(tokenString, secret string) (*DashboardClaims, error) {
	claims := &DashboardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}
	if claims.SessionID == "" || claims.SessionID != claims.Subject {
		return nil, fmt.Errorf("access token has no session")
	}
	return claims, nil
}

// AuthMiddleware verifies the access token, loads its session and makes it
// available to handlers and to the backend client through the request context.
func AuthMiddleware(secret string, sessions session.Storer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		// Check if the header is in the correct format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := sessions.Touch(c.Request.Context(), sess.ID); err != nil {
			logger.Get().Warnw("failed to touch session", "session_id", sess.ID, "error", err)
		}

		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Set(SessionKey, sess)
		c.Set(UserIDKey, sess.UserID().String())
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	writeError(c, err)
}
