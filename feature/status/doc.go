// Package status exposes the warden's state over HTTP: the cycle
// aggregate, the recipe list, catalog edits and out-of-band cycle
// triggers.
package status
