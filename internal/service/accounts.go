package service

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/pkg/security"
	"bitwise74/tourbuddy/validators"
	"context"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Accounts is the credential store. It owns password hashing and all
// writes to the users table
type Accounts struct {
	db    *gorm.DB
	argon *security.ArgonHash
}

func NewAccounts(db *gorm.DB, argon *security.ArgonHash) *Accounts {
	return &Accounts{db: db, argon: argon}
}

// Register validates u, hashes password and persists u. The caller is
// expected to have set u.VerificationToken.
func (a *Accounts) Register(ctx context.Context, u *model.User, password string) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if err := validators.UsernameValidator(u.Username); err != nil {
		return &ValidationError{Err: err}
	}

	if err := validators.EmailValidator(u.Email); err != nil {
		return &ValidationError{Err: err}
	}

	if err := validators.PasswordValidator(password); err != nil {
		return &ValidationError{Err: err}
	}

	var taken int64

	err := a.db.WithContext(ctx).
		Model(model.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&taken).
		Error
	if err != nil {
		return &OpError{Op: "check if user is registered", Err: err}
	}

	if taken > 0 {
		return ErrDuplicateIdentity
	}

	hash, err := a.argon.GenerateFromPassword(password)
	if err != nil {
		return &OpError{Op: "hash password", Err: err}
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return &OpError{Op: "generate user ID", Err: err}
	}

	u.ID = id
	u.PasswordHash = hash
	u.Verified = false

	if err := a.db.WithContext(ctx).Create(u).Error; err != nil {
		// Lost a race against a concurrent registration, the unique indexes caught it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentity
		}

		return &OpError{Op: "create user", Err: err}
	}

	return nil
}

// Verify marks the user waiting for token as verified and clears the token in
// a single conditional update, so a token can be consumed at most once
func (a *Accounts) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	r := a.db.WithContext(ctx).
		Model(&model.User{}).
		Where("verification_token = ? AND verified = ?", token, false).
		Updates(map[string]any{
			"verified":           true,
			"verification_token": nil,
		})
	if r.Error != nil {
		return fmt.Errorf("failed to verify user, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrInvalidToken
	}

	return nil
}

// Authenticate checks a username and password pair. ErrMissingCredentials and
// ErrAuthFailure mean the user should try again, any other error is an
// infrastructure failure
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var user model.User

	err := a.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthFailure
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := a.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrAuthFailure
	}

	return &user, nil
}

func (a *Accounts) Get(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := a.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}
