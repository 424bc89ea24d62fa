// Package localauth is an auth provider on the application database. Tokens
// are HS256 JWTs; passwords are bcrypt hashes. It serves development and tests
// where no Firebase project is available.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/credentials"
	"restaurant/internal/pkg/errs"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type Provider struct {
	db     *gorm.DB
	cfg    Config
	clock  clock.Clock
	logger zerolog.Logger
}

var (
	_ ports.AuthProvider        = (*Provider)(nil)
	_ ports.IsolatedAuthFactory = (*Provider)(nil)
)

func NewProvider(db *gorm.DB, cfg Config, c clock.Clock, logger zerolog.Logger) (*Provider, error) {
	if cfg.Secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if c == nil {
		c = clock.New()
	}
	return &Provider{db: db, cfg: cfg, clock: c, logger: logger}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (ports.Session, error) {
	cred, err := p.byEmail(ctx, email)
	if err != nil {
		return ports.Session{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ports.Session{}, errs.NewAuthErrorWithCause(ports.AuthWrongPassword, "", err)
	}

	now := p.clock.Now()
	expires := now.Add(p.cfg.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.cfg.Issuer,
			Subject:   cred.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: cred.Email,
	})

	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return ports.Session{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.Session{
		Subject:   ports.Subject{UID: cred.UID, Email: cred.Email},
		Token:     signed,
		ExpiresAt: expires,
	}, nil
}

// SignOut rejects every token issued before the current second.
func (p *Provider) SignOut(ctx context.Context, uid string) error {
	return p.db.WithContext(ctx).
		Model(&CredentialDTO{}).
		Where("uid = ?", uid).
		Update("tokens_valid_after", p.clock.Now().Truncate(time.Second)).Error
}

// SendPasswordReset only checks that the address is registered; there is no
// mail delivery in local mode.
func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	cred, err := p.byEmail(ctx, email)
	if err != nil {
		return err
	}
	p.logger.Info().Str("uid", cred.UID).Msg("password reset requested")
	return nil
}

func (p *Provider) VerifyToken(ctx context.Context, token string) (ports.Subject, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return []byte(p.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(p.clock.Now),
	)
	if err != nil {
		return ports.Subject{}, errs.NewAuthErrorWithCause(ports.AuthInvalidToken, "", err)
	}

	var cred CredentialDTO
	err = p.db.WithContext(ctx).Where("uid = ?", c.Subject).Take(&cred).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ports.Subject{}, errs.NewAuthError(ports.AuthUserNotFound, "")
	case err != nil:
		return ports.Subject{}, err
	}

	if c.IssuedAt == nil || c.IssuedAt.Before(cred.TokensValidAfter) {
		return ports.Subject{}, errs.NewAuthError(ports.AuthInvalidToken, "")
	}

	return ports.Subject{UID: cred.UID, Email: cred.Email}, nil
}

func (p *Provider) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	if err := credentials.Check(email, password); err != nil {
		return ports.Subject{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ports.Subject{}, fmt.Errorf("hash password: %w", err)
	}

	now := p.clock.Now()
	cred := CredentialDTO{
		UID:              uuid.NewString(),
		Email:            credentials.NormalizeEmail(email),
		PasswordHash:     string(hash),
		TokensValidAfter: now.Truncate(time.Second),
		CreatedAt:        now,
	}

	res := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&cred)
	if res.Error != nil {
		return ports.Subject{}, res.Error
	}
	if res.RowsAffected == 0 {
		return ports.Subject{}, errs.NewAuthError(ports.AuthEmailAlreadyInUse, "")
	}

	return ports.Subject{UID: cred.UID, Email: cred.Email}, nil
}

// Open returns a registration context. Local subjects never share session
// state, so it only tracks whether it was closed.
func (p *Provider) Open(context.Context) (ports.IsolatedAuth, error) {
	return &isolated{provider: p}, nil
}

func (p *Provider) byEmail(ctx context.Context, email string) (CredentialDTO, error) {
	var cred CredentialDTO
	err := p.db.WithContext(ctx).Where("email = ?", credentials.NormalizeEmail(email)).Take(&cred).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return CredentialDTO{}, errs.NewAuthError(ports.AuthUserNotFound, "")
	case err != nil:
		return CredentialDTO{}, err
	}
	return cred, nil
}

type isolated struct {
	provider *Provider
	closed   bool
}

func (i *isolated) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	if i.closed {
		return ports.Subject{}, errs.NewAuthError(ports.AuthContextClosed, "")
	}
	return i.provider.CreateSubject(ctx, email, password)
}

func (i *isolated) DeleteSubject(ctx context.Context, uid string) error {
	if i.closed {
		return errs.NewAuthError(ports.AuthContextClosed, "")
	}
	return i.provider.db.WithContext(ctx).Where("uid = ?", uid).Delete(&CredentialDTO{}).Error
}

func (i *isolated) Close(context.Context) error {
	i.closed = true
	return nil
}
