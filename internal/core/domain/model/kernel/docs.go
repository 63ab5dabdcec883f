// Package kernel holds the value objects shared by every encomendas aggregate.
//
//   - UUID: identifier for tenants and entities; the nil UUID is never valid
//   - Money: two-place fixed-point amount backed by shopspring/decimal
//   - TenantContext: the acting tenant and user, passed to every operation
//   - Address: a client's delivery address
//
// Value objects embed guard.ConstructorGuard so that zero values built outside
// their constructors fail Validate.
package kernel
