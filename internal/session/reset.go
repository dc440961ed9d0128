package session

import (
	"strings"
	"sync"
	"time"

	apperrors "finboard/internal/errors"
)

// Reset is the password-recovery handoff between the recover, validate-otp
// and change-password steps.
type Reset struct {
	Email     string
	OTP       string
	Validated bool
	ExpiresAt time.Time
}

// ResetStore keeps reset handoffs in memory, keyed by e-mail. Entries are
// single-use and expire after the configured TTL.
type ResetStore struct {
	mu      sync.Mutex
	entries map[string]Reset
	ttl     time.Duration
	now     func() time.Time
}

// NewResetStore creates a ResetStore whose entries live for ttl.
func NewResetStore(ttl time.Duration) *ResetStore {
	return &ResetStore{entries: make(map[string]Reset), ttl: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Start opens a handoff after a recovery token was requested.
func (r *ResetStore) Start(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gc()
	key := normalizeEmail(email)
	r.entries[key] = Reset{Email: key, ExpiresAt: r.now().Add(r.ttl)}
}

// Validate records a verified OTP for email.
func (r *ResetStore) Validate(email, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(email)
	entry, ok := r.live(key)
	if !ok {
		return apperrors.ErrResetNotStarted
	}
	entry.OTP = otp
	entry.Validated = true
	r.entries[key] = entry
	return nil
}

// Complete returns the verified handoff for email and clears it.
func (r *ResetStore) Complete(email string) (Reset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(email)
	entry, ok := r.live(key)
	if !ok {
		return Reset{}, apperrors.ErrResetNotStarted
	}
	if !entry.Validated {
		return Reset{}, apperrors.ErrResetNotVerified
	}
	delete(r.entries, key)
	return entry, nil
}

// live must be called with mu held.
func (r *ResetStore) live(key string) (Reset, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return Reset{}, false
	}
	if !r.now().Before(entry.ExpiresAt) {
		delete(r.entries, key)
		return Reset{}, false
	}
	return entry, true
}

// gc must be called with mu held.
func (r *ResetStore) gc() {
	now := r.now()
	for k, e := range r.entries {
		if !now.Before(e.ExpiresAt) {
			delete(r.entries, k)
		}
	}
}
