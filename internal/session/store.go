package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
)

const nonceSize = 24

// Storer persists sessions across dashboard restarts.
type Storer interface {
	Create(ctx context.Context, user models.User, token string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// Store keeps sessions in the database with the backend token sealed by
// secretbox. Expired sessions are never returned. Times are stored in UTC.
type Store struct {
	db  *gorm.DB
	key [32]byte
	ttl time.Duration
	now func() time.Time
}

// NewStore creates a Store. The secret is stretched to a 32-byte key.
func NewStore(db *gorm.DB, secret string, ttl time.Duration) *Store {
	return &Store{
		db:  db,
		key: sha256.Sum256([]byte(secret)),
		ttl: ttl,
		now: time.Now,
	}
}

// Create persists a new session for user, authenticated by token.
func (s *Store) Create(ctx context.Context, user models.User, token string) (*Session, error) {
	if user.ID == "" || token == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "login response is missing the user id or token")
	}

	profile, err := json.Marshal(user.Profile())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sealed, err := s.seal(token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now().UTC()
	row := &models.Session{
		UserID:      user.ID.String(),
		Profile:     string(profile),
		SealedToken: sealed,
		ExpiresAt:   now.Add(s.ttl),
		LastSeenAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &Session{
		ID:        row.ID,
		User:      user.Profile(),
		Token:     token,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// Get loads a live session. Missing and expired sessions both yield ErrSessionExpired.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var row models.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now().UTC()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(row.Profile), &user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("decode profile: %w", err))
	}
	token, err := s.open(row.SealedToken)
	if err != nil {
		logger.Get().Warnw("discarding session with unreadable token", "session_id", id, "error", err)
		return nil, apperrors.ErrSessionExpired
	}

	return &Session{
		ID:        row.ID,
		User:      user,
		Token:     token,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// Touch records activity on a session.
func (s *Store) Touch(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("last_seen_at", s.now().UTC()).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PurgeExpired deletes every expired session and returns how many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) seal(token string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key), nil
}

func (s *Store) open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", errors.New("sealed token too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errors.New("sealed token failed authentication")
	}
	return string(plain), nil
}
