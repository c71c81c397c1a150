// Package models defines the core domain models for the lost-and-found
// platform.
//
// # Tenancy
//
// Every campus is a Tenant. Profiles, items, conversations and backups carry
// a TenantID and are never visible across tenants.
//
// # Identifiers and time
//
// IDs are UUID strings assigned by the store when empty. Timestamps are Unix
// seconds, zero meaning "unset".
//
// # Relationships
//
// Models reference each other by ID string, never by pointer. The store is
// the source of truth; services load related rows explicitly.
package models
