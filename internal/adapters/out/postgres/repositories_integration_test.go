package postgres_test

import (
	"context"
	"testing"
	"time"

	store "restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RepositoriesIntegrationTestSuite struct {
	suite.Suite
	pg  *pgtest.Database
	uow ports.UnitOfWork
}

func (suite *RepositoriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *RepositoriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
	suite.uow = store.NewGormUnitOfWorkFactory(suite.pg.DB).Create()
}

func (suite *RepositoriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *RepositoriesIntegrationTestSuite) TestTenants() {
	ctx := context.Background()
	repo := suite.uow.TenantRepository()

	zeta, _ := tenant.NewTenant("zeta", "Zeta Bar", 0, time.Now())
	alfa, _ := tenant.NewTenant("alfa", "Alfa Bistrô", 60, time.Now())
	suite.Require().NoError(repo.Add(ctx, zeta))
	suite.Require().NoError(repo.Add(ctx, alfa))

	stored, err := repo.Get(ctx, "zeta")
	suite.Require().NoError(err)
	suite.True(stored.Active())
	suite.Nil(stored.IsOpen())
	suite.True(stored.OperationOpen())
	suite.Equal(tenant.DefaultRetentionDays, stored.RetentionDays())

	stored.SetActive(false)
	stored.SetOpen(false)
	suite.Require().NoError(stored.SetServiceFeePercent(decimal.RequireFromString("12.5")))
	suite.Require().NoError(repo.Update(ctx, stored))

	stored, err = repo.Get(ctx, "zeta")
	suite.Require().NoError(err)
	suite.False(stored.Active())
	suite.Require().NotNil(stored.IsOpen())
	suite.False(*stored.IsOpen())
	suite.True(decimal.RequireFromString("12.5").Equal(stored.ServiceFeePercent()))

	all, err := repo.List(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("alfa", all[0].ID(), "tenants are sorted by name")

	suite.Require().NoError(repo.Delete(ctx, "zeta"))
	suite.Require().NoError(repo.Delete(ctx, "zeta"))
	_, err = repo.Get(ctx, "zeta")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RepositoriesIntegrationTestSuite) TestUsers() {
	ctx := context.Background()
	repo := suite.uow.UserRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	owner, _ := user.NewUser("u-owner", "dono@casa.com", user.Owner, "t1", "Dona", base)
	first, _ := user.NewUser("u-1", "Ana@Casa.com", user.Employee, "t1", "Ana", base.Add(time.Hour))
	second, _ := user.NewUser("u-2", "bia@casa.com", user.Employee, "t1", "Bia", base.Add(2*time.Hour))
	admin, _ := user.NewUser("u-admin", "root@plataforma.com", user.SuperAdmin, "", "Root", base)
	for _, u := range []*user.User{second, owner, first, admin} {
		suite.Require().NoError(repo.Add(ctx, u))
	}

	stored, err := repo.Get(ctx, "u-1")
	suite.Require().NoError(err)
	suite.Equal("ana@casa.com", stored.Email())
	suite.Equal(user.Employee, stored.Role())

	employees, err := repo.ListByTenantAndRole(ctx, "t1", user.Employee)
	suite.Require().NoError(err)
	suite.Require().Len(employees, 2)
	suite.Equal("u-1", employees[0].UID())

	suite.Require().NoError(repo.Delete(ctx, "u-1"))
	suite.Require().NoError(repo.Delete(ctx, "u-1"), "deleting a missing record is not an error")

	n, err := repo.DeleteByTenant(ctx, "t1")
	suite.Require().NoError(err)
	suite.Equal(2, n)

	_, err = repo.DeleteByTenant(ctx, "")
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)

	_, err = repo.Get(ctx, "u-admin")
	suite.Require().NoError(err, "super admins survive tenant wipes")
}

func (suite *RepositoriesIntegrationTestSuite) TestCatalog() {
	ctx := context.Background()
	categories := suite.uow.CategoryRepository()
	products := suite.uow.ProductRepository()

	bebidas, _ := catalog.NewCategory(kernel.NewUUID(), "t1", " Bebidas ")
	suite.Require().NoError(categories.Add(ctx, bebidas))

	exists, err := categories.ExistsByName(ctx, "t1", "BEBIDAS")
	suite.Require().NoError(err)
	suite.True(exists)
	exists, err = categories.ExistsByName(ctx, "t2", "bebidas")
	suite.Require().NoError(err)
	suite.False(exists)

	duplicate, _ := catalog.NewCategory(kernel.NewUUID(), "t1", "bebidas")
	suite.Require().Error(categories.Add(ctx, duplicate), "the unique index rejects a second category of the same name")

	suco, _ := catalog.NewProduct(kernel.NewUUID(), "t1", "Suco", decimal.NewFromInt(7), "bebidas", true)
	suite.Require().NoError(products.Add(ctx, suco))

	updated, _ := catalog.NewProduct(suco.ID(), "t1", "Suco Natural", decimal.NewFromInt(8), "bebidas", false)
	suite.Require().NoError(products.Update(ctx, updated))

	foreign, _ := catalog.NewProduct(suco.ID(), "t2", "Suco", decimal.NewFromInt(1), "", true)
	suite.Require().ErrorIs(products.Update(ctx, foreign), errs.ErrObjectNotFound)

	suite.Require().NoError(products.Delete(ctx, "t2", suco.ID()))
	n, err := products.DeleteByTenant(ctx, "t1", 400)
	suite.Require().NoError(err)
	suite.Equal(1, n, "deleting under another tenant left the product in place")

	suite.Require().NoError(categories.Delete(ctx, "t1", bebidas.ID()))
	n, err = categories.DeleteByTenant(ctx, "t1", 400)
	suite.Require().NoError(err)
	suite.Zero(n)
}

func TestRepositoriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoriesIntegrationTestSuite))
}
