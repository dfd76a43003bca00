// Package tokenx issues and verifies ganfan session tokens.
//
// A token carries the member identity and an expiry; nothing is stored on
// the backend. Codec produces an unsigned token (base64 wrapped JSON) that a
// client could edit; SignedCodec produces an HS256 JWT for setups that
// configure a secret. Both satisfy Issuer and Verifier, and both report every
// failure as an error so that callers can treat "malformed", "expired" and
// "absent" the same way.
package tokenx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
)

// DefaultTTL is how long an issued session stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Issuer mints tokens for members.
type Issuer interface {
	Issue(u models.User) (string, error)
}

// Verifier turns a token back into a session.
type Verifier interface {
	Verify(token string) (*models.Session, error)
}

// IssueVerifier is implemented by Codec and SignedCodec.
type IssueVerifier interface {
	Issuer
	Verifier
	Encode(s models.Session) (string, error)
}

// Option configures a codec.
type Option func(*options)

type options struct {
	now func() time.Time
	ttl time.Duration
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, ttl: DefaultTTL}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

type payload struct {
	ID       string      `json:"id"`
	Nickname string      `json:"nickname"`
	Role     models.Role `json:"role"`
	Exp      int64       `json:"exp"`
}

// Codec is the unsigned token format.
type Codec struct {
	opts options
}

// NewCodec returns an unsigned codec.
func NewCodec(opts ...Option) *Codec {
	return &Codec{opts: buildOptions(opts)}
}

// Issue encodes a session for u valid for the configured TTL.
func (c *Codec) Issue(u models.User) (string, error) {
	return c.Encode(models.NewSession(u, c.opts.now().Add(c.opts.ttl)))
}

// Encode serializes s as is, including its expiry.
func (c *Codec) Encode(s models.Session) (string, error) {
	b, err := json.Marshal(payload{
		ID:       s.UserID,
		Nickname: s.Nickname,
		Role:     s.Role,
		Exp:      s.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Verify decodes token. It returns common.ErrInvalidToken for anything that
// does not decode into a session and common.ErrTokenExpired once the expiry
// is not in the future.
func (c *Codec) Verify(token string) (*models.Session, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, common.ErrInvalidToken
	}
	if p.ID == "" || !p.Role.Valid() {
		return nil, common.ErrInvalidToken
	}

	s := &models.Session{
		UserID:    p.ID,
		Nickname:  p.Nickname,
		Role:      p.Role,
		ExpiresAt: time.UnixMilli(p.Exp),
	}
	if s.Expired(c.opts.now()) {
		return nil, common.ErrTokenExpired
	}
	return s, nil
}
