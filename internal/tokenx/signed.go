package tokenx

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims of a signed session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"id"`
	Nickname string      `json:"nickname"`
	Role     models.Role `json:"role"`
}

// SignedCodec issues HS256 tokens that cannot be edited without the secret.
type SignedCodec struct {
	secret []byte
	opts   options
}

// NewSignedCodec returns a codec signing with secret.
func NewSignedCodec(secret []byte, opts ...Option) *SignedCodec {
	return &SignedCodec{secret: secret, opts: buildOptions(opts)}
}

// Issue signs a session for u valid for the configured TTL.
func (c *SignedCodec) Issue(u models.User) (string, error) {
	return c.Encode(models.NewSession(u, c.opts.now().Add(c.opts.ttl)))
}

// Encode signs s as is. JWT expiry has second precision.
func (c *SignedCodec) Encode(s models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		UserID:   s.UserID,
		Nickname: s.Nickname,
		Role:     s.Role,
	})

	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of token.
func (c *SignedCodec) Verify(tokenString string) (*models.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.opts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, common.ErrInvalidToken
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return &models.Session{
		UserID:    claims.UserID,
		Nickname:  claims.Nickname,
		Role:      claims.Role,
		ExpiresAt: exp,
	}, nil
}

// New picks SignedCodec when secret is set and the unsigned Codec otherwise.
func New(secret string, opts ...Option) IssueVerifier {
	if secret == "" {
		return NewCodec(opts...)
	}
	return NewSignedCodec([]byte(secret), opts...)
}
