package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NordCoder/Bloggerus/internal/auth"
	"github.com/NordCoder/Bloggerus/internal/domain/user"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrRefreshInvalid     = errors.New("invalid refresh token")
)

type Usecase struct {
	users  user.Repo
	hasher *auth.PasswordHasher
	codec  *auth.Codec
}

func NewUsecase(users user.Repo, hasher *auth.PasswordHasher, codec *auth.Codec) *Usecase {
	return &Usecase{users: users, hasher: hasher, codec: codec}
}

func (u *Usecase) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	newUser := &user.User{Username: username, Email: email, PasswordHash: hash}
	if err := u.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, postgres.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return newUser, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown username and wrong password are indistinguishable to the caller.
func (u *Usecase) Login(ctx context.Context, username, password string) (*user.User, string, string, error) {
	rec, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("lookup user: %w", err)
	}
	if !u.hasher.Verify(password, rec.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials
	}
	access, err := u.codec.IssueAccess(rec.Username)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := u.codec.IssueRefresh(rec.Username)
	if err != nil {
		return nil, "", "", err
	}
	return rec, access, refresh, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself stays valid until its own expiry; no rotation happens here.
func (u *Usecase) Refresh(ctx context.Context, raw string) (string, error) {
	claims, err := u.codec.VerifyRefresh(raw)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", ErrRefreshExpired
		}
		return "", ErrRefreshInvalid
	}
	return u.codec.IssueAccess(claims.Subject)
}
