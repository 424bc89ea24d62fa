package commands

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/guard"
)

var ErrCreateTenantCommandIsNotConstructed = errors.New(
	"CreateTenantCommand must be created via NewCreateTenantCommand constructor",
)

// CreateTenantCommand provisions a restaurant. The slug becomes the tenant id.
type CreateTenantCommand struct { //nolint:recvcheck //using for validation
	slug          string
	name          string
	retentionDays int

	guard guard.ConstructorGuard
}

// NewCreateTenantCommand normalises the slug to lower case. Slug, name and
// retention are validated by the tenant aggregate.
func NewCreateTenantCommand(slug, name string, retentionDays int) (CreateTenantCommand, error) {
	return CreateTenantCommand{
		slug:          strings.ToLower(strings.TrimSpace(slug)),
		name:          strings.TrimSpace(name),
		retentionDays: retentionDays,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTenantCommand) Validate() error {
	return c.guard.Validate(ErrCreateTenantCommandIsNotConstructed)
}

func (c CreateTenantCommand) Slug() string       { return c.slug }
func (c CreateTenantCommand) Name() string       { return c.name }
func (c CreateTenantCommand) RetentionDays() int { return c.retentionDays }
