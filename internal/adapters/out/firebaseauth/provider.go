// Package firebaseauth is the production auth provider. Account management
// and token checks go through the Firebase Admin SDK; password sign-in and
// reset mails go through the Identity Toolkit REST API, which the Admin SDK
// does not cover.
package firebaseauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/credentials"
	"restaurant/internal/pkg/errs"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	APIKey          string
	CredentialsFile string
}

type Provider struct {
	cfg     Config
	admin   *auth.Client
	toolkit *identitytoolkit.Service
}

var (
	_ ports.AuthProvider        = (*Provider)(nil)
	_ ports.IsolatedAuthFactory = (*Provider)(nil)
)

func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("api_key")
	}

	admin, err := newAdminClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("identity toolkit: %w", err)
	}

	return &Provider{cfg: cfg, admin: admin, toolkit: toolkit}, nil
}

func newAdminClient(ctx context.Context, cfg Config) (*auth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return client, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (ports.Session, error) {
	resp, err := p.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             credentials.NormalizeEmail(email),
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return ports.Session{}, mapToolkitError(err)
	}

	return ports.Session{
		Subject:   ports.Subject{UID: resp.LocalId, Email: resp.Email},
		Token:     resp.IdToken,
		ExpiresAt: time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

func (p *Provider) SignOut(ctx context.Context, uid string) error {
	return mapAdminError(p.admin.RevokeRefreshTokens(ctx, uid))
}

func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	_, err := p.toolkit.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       credentials.NormalizeEmail(email),
	}).Context(ctx).Do()
	return mapToolkitError(err)
}

func (p *Provider) VerifyToken(ctx context.Context, token string) (ports.Subject, error) {
	verified, err := p.admin.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return ports.Subject{}, mapAdminError(err)
	}

	email, _ := verified.Claims["email"].(string)
	return ports.Subject{UID: verified.UID, Email: email}, nil
}

func (p *Provider) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	return createSubject(ctx, p.admin, email, password)
}

// Open starts a separate Firebase app. Accounts created through it are never
// signed in anywhere.
func (p *Provider) Open(ctx context.Context) (ports.IsolatedAuth, error) {
	client, err := newAdminClient(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	return &isolated{client: client}, nil
}

func createSubject(ctx context.Context, client *auth.Client, email, password string) (ports.Subject, error) {
	if err := credentials.Check(email, password); err != nil {
		return ports.Subject{}, err
	}

	record, err := client.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(credentials.NormalizeEmail(email)).
		Password(password))
	if err != nil {
		return ports.Subject{}, mapAdminError(err)
	}

	return ports.Subject{UID: record.UID, Email: record.Email}, nil
}

type isolated struct {
	mu     sync.Mutex
	client *auth.Client
}

func (i *isolated) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	i.mu.Lock()
	client := i.client
	i.mu.Unlock()

	if client == nil {
		return ports.Subject{}, errs.NewAuthError(ports.AuthContextClosed, "")
	}
	return createSubject(ctx, client, email, password)
}

func (i *isolated) DeleteSubject(ctx context.Context, uid string) error {
	i.mu.Lock()
	client := i.client
	i.mu.Unlock()

	if client == nil {
		return errs.NewAuthError(ports.AuthContextClosed, "")
	}
	return mapAdminError(client.DeleteUser(ctx, uid))
}

func (i *isolated) Close(context.Context) error {
	i.mu.Lock()
	i.client = nil
	i.mu.Unlock()
	return nil
}
