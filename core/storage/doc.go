// Package storage provides the object-storage client used for catalog
// backups.
//
// It wraps the Minio SDK behind a small interface so the backup feature
// can be tested against a mock, and configures the underlying HTTP
// transport with strict timeouts so a dead storage endpoint cannot hang
// the daemon.
package storage
