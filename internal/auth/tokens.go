package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Config carries both signing contexts. Access and refresh tokens are
// structurally identical but signed with distinct secrets; a token issued
// under one context never verifies under the other.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

type Codec struct {
	cfg Config
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("auth: both access and refresh secrets are required")
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Codec{cfg: cfg}, nil
}

func (c *Codec) IssueAccess(subject string) (string, error) {
	return c.issue(subject, c.cfg.AccessSecret, c.cfg.AccessTTL)
}

func (c *Codec) IssueRefresh(subject string) (string, error) {
	return c.issue(subject, c.cfg.RefreshSecret, c.cfg.RefreshTTL)
}

// VerifyAccess validates a token under the access context only.
func (c *Codec) VerifyAccess(token string) (*Claims, error) {
	return c.verify(token, c.cfg.AccessSecret)
}

// VerifyRefresh validates a token under the refresh context only.
func (c *Codec) VerifyRefresh(token string) (*Claims, error) {
	return c.verify(token, c.cfg.RefreshSecret)
}

func (c *Codec) AccessTTL() time.Duration { return c.cfg.AccessTTL }

func (c *Codec) issue(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := c.cfg.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// verify returns ErrTokenExpired or ErrTokenInvalid only; raw jwt library
// errors never cross this boundary. A token is valid strictly before its
// exp claim: at t == exp it is already expired.
func (c *Codec) verify(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(c.cfg.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
