// Package database handles the connection to the catalog database.
//
// The catalog is small and local by default, so the default driver is a
// sqlite file next to the daemon. A mysql driver is kept for
// deployments that centralize state; in that case the connection is
// pinged at startup because a dead catalog store is fatal (recipe
// persistence failures abort the process by design).
//
// The inspector helpers verify that a pre-existing recipes table still
// carries the columns the store expects.
package database
