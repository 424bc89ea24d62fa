package ports

import (
	"context"
	"time"
)

// Auth provider error codes. Providers return an *errs.AuthError carrying one
// of these; the facade attaches the user-facing message.
const (
	AuthInvalidEmail      = "auth/invalid-email"
	AuthWeakPassword      = "auth/weak-password"
	AuthEmailAlreadyInUse = "auth/email-already-in-use"
	AuthUserNotFound      = "auth/user-not-found"
	AuthWrongPassword     = "auth/wrong-password"
	AuthInvalidCredential = "auth/invalid-credential"
	AuthInvalidToken      = "auth/invalid-id-token"
	AuthContextClosed     = "auth/app-deleted"
)

// Subject is an authenticated identity.
type Subject struct {
	UID   string
	Email string
}

// Session is the result of a sign-in.
type Session struct {
	Subject   Subject
	Token     string
	ExpiresAt time.Time
}

// AuthProvider verifies credentials on the primary auth context.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	// SignOut invalidates every token issued to uid so far.
	SignOut(ctx context.Context, uid string) error
	SendPasswordReset(ctx context.Context, email string) error
	VerifyToken(ctx context.Context, token string) (Subject, error)
	// CreateSubject registers credentials on the primary context. Only the
	// first-run setup uses it.
	CreateSubject(ctx context.Context, email, password string) (Subject, error)
}

// IsolatedAuth is a disposable auth context. Creating subjects through it never
// touches the caller's session.
type IsolatedAuth interface {
	CreateSubject(ctx context.Context, email, password string) (Subject, error)
	// DeleteSubject removes a subject created through this context.
	DeleteSubject(ctx context.Context, uid string) error
	Close(ctx context.Context) error
}

// IsolatedAuthFactory opens a new disposable auth context.
type IsolatedAuthFactory interface {
	Open(ctx context.Context) (IsolatedAuth, error)
}
