// Package utils provides loose-typed conversion helpers for decoding
// the bridge's JSON records, whose field types vary by platform.
package utils
