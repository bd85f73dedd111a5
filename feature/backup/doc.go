// Package backup writes catalog snapshots to object storage after every
// persist and can restore the catalog from the most recent one.
package backup
