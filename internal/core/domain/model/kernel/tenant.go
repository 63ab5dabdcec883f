package kernel

import (
	"errors"
	"strings"

	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

// SystemActor is recorded when a request carries no acting user.
const SystemActor = "system"

var ErrTenantContextIsNotConstructed = errs.NewValueIsRequiredError(
	"tenant context must be created via NewTenantContext")

// TenantContext identifies the organization and user an operation runs for.
// It is passed explicitly to every command and query; there is no ambient tenant.
type TenantContext struct { //nolint:recvcheck //using for validation
	tenantID UUID
	actor    string
	guard    guard.ConstructorGuard
}

func NewTenantContext(tenantID UUID, actor string) (TenantContext, error) {
	tc := TenantContext{guard: guard.NewConstructorGuard()}

	if err := errors.Join(tc.setTenantID(tenantID), tc.setActor(actor)); err != nil {
		return TenantContext{}, err
	}

	return tc, nil
}

func (tc TenantContext) Validate() error {
	return tc.guard.Validate(ErrTenantContextIsNotConstructed)
}

func (tc TenantContext) TenantID() UUID {
	return tc.tenantID
}

func (tc TenantContext) Actor() string {
	return tc.actor
}

// Owns reports whether an entity stamped with ownerID belongs to this tenant.
func (tc TenantContext) Owns(ownerID UUID) bool {
	return tc.tenantID.IsEqual(ownerID)
}

// RequireOwnership fails with a CrossTenantReferenceError when a caller-supplied
// reference, named paramName, is owned by another tenant.
func (tc TenantContext) RequireOwnership(paramName string, id UUID, ownerID UUID) error {
	if !tc.Owns(ownerID) {
		return errs.NewCrossTenantReferenceError(paramName, id)
	}
	return nil
}

func (tc *TenantContext) setTenantID(id UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	tc.tenantID = id
	return nil
}

func (tc *TenantContext) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = SystemActor
	}
	v, err := OptionalText("actor", actor, MaxResponsibleLength)
	if err != nil {
		return err
	}
	tc.actor = v
	return nil
}
