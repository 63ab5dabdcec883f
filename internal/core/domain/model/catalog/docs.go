// Package catalog models the tenant-scoped reference data orders are built from:
// clients, suppliers and products.
//
// Every entity carries the tenant that owns it and a Code unique within that
// tenant and entity type. Uniqueness itself is enforced by the repositories,
// since it depends on what else is stored.
package catalog
