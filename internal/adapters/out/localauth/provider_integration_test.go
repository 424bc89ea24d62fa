package localauth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/internal/adapters/out/localauth"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type ProviderIntegrationTestSuite struct {
	suite.Suite
	pg       *pgtest.Database
	clock    *clock.Mock
	provider *localauth.Provider
}

func (suite *ProviderIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), &localauth.CredentialDTO{})
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ProviderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.DB.Exec("TRUNCATE TABLE credentials").Error)

	suite.clock = clock.NewMock()
	suite.clock.Set(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	provider, err := localauth.NewProvider(suite.pg.DB, localauth.Config{
		Secret:   "test-secret",
		Issuer:   "restaurant-test",
		TokenTTL: time.Hour,
	}, suite.clock, zerolog.Nop())
	suite.Require().NoError(err)
	suite.provider = provider
}

func (suite *ProviderIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ProviderIntegrationTestSuite) requireCode(err error, code string) {
	suite.T().Helper()
	var authErr *errs.AuthError
	suite.Require().True(errors.As(err, &authErr), "expected auth error, got %v", err)
	suite.Equal(code, authErr.Code)
}

func (suite *ProviderIntegrationTestSuite) TestSignInAndVerify() {
	ctx := context.Background()

	created, err := suite.provider.CreateSubject(ctx, "Dono@Casa.com", "segredo1")
	suite.Require().NoError(err)
	suite.Equal("dono@casa.com", created.Email)

	session, err := suite.provider.SignIn(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)
	suite.Equal(created.UID, session.Subject.UID)
	suite.Equal(suite.clock.Now().Add(time.Hour), session.ExpiresAt)

	subject, err := suite.provider.VerifyToken(ctx, session.Token)
	suite.Require().NoError(err)
	suite.Equal(created, subject)

	suite.clock.Add(2 * time.Hour)
	_, err = suite.provider.VerifyToken(ctx, session.Token)
	suite.requireCode(err, ports.AuthInvalidToken)
}

func (suite *ProviderIntegrationTestSuite) TestSignInErrors() {
	ctx := context.Background()

	_, err := suite.provider.SignIn(ctx, "ninguem@casa.com", "segredo1")
	suite.requireCode(err, ports.AuthUserNotFound)

	_, err = suite.provider.CreateSubject(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)

	_, err = suite.provider.SignIn(ctx, "dono@casa.com", "errada")
	suite.requireCode(err, ports.AuthWrongPassword)

	_, err = suite.provider.VerifyToken(ctx, "not-a-token")
	suite.requireCode(err, ports.AuthInvalidToken)
}

func (suite *ProviderIntegrationTestSuite) TestCreateSubjectErrors() {
	ctx := context.Background()

	_, err := suite.provider.CreateSubject(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)

	_, err = suite.provider.CreateSubject(ctx, " DONO@casa.com", "outrasenha")
	suite.requireCode(err, ports.AuthEmailAlreadyInUse)

	_, err = suite.provider.CreateSubject(ctx, "sem-arroba", "segredo1")
	suite.requireCode(err, ports.AuthInvalidEmail)

	_, err = suite.provider.CreateSubject(ctx, "novo@casa.com", "123")
	suite.requireCode(err, ports.AuthWeakPassword)
}

func (suite *ProviderIntegrationTestSuite) TestSignOutRevokesEarlierTokens() {
	ctx := context.Background()

	subject, err := suite.provider.CreateSubject(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)
	session, err := suite.provider.SignIn(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)

	suite.clock.Add(time.Minute)
	suite.Require().NoError(suite.provider.SignOut(ctx, subject.UID))

	_, err = suite.provider.VerifyToken(ctx, session.Token)
	suite.requireCode(err, ports.AuthInvalidToken)

	fresh, err := suite.provider.SignIn(ctx, "dono@casa.com", "segredo1")
	suite.Require().NoError(err)
	_, err = suite.provider.VerifyToken(ctx, fresh.Token)
	suite.NoError(err)
}

func (suite *ProviderIntegrationTestSuite) TestIsolatedContext() {
	ctx := context.Background()

	isolated, err := suite.provider.Open(ctx)
	suite.Require().NoError(err)

	_, err = isolated.CreateSubject(ctx, "garcom@casa.com", "segredo1")
	suite.Require().NoError(err)

	discarded, err := isolated.CreateSubject(ctx, "caixa@casa.com", "segredo1")
	suite.Require().NoError(err)
	suite.Require().NoError(isolated.DeleteSubject(ctx, discarded.UID))
	_, err = suite.provider.SignIn(ctx, "caixa@casa.com", "segredo1")
	suite.requireCode(err, ports.AuthUserNotFound)

	suite.Require().NoError(isolated.Close(ctx))

	_, err = isolated.CreateSubject(ctx, "outro@casa.com", "segredo1")
	suite.requireCode(err, ports.AuthContextClosed)
	suite.requireCode(isolated.DeleteSubject(ctx, "any"), ports.AuthContextClosed)

	_, err = suite.provider.SignIn(ctx, "garcom@casa.com", "segredo1")
	suite.NoError(err)
}

func TestProviderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderIntegrationTestSuite))
}
