// Package item defines the identity model used to correlate catalog
// recipes with items observed on the crafting network.
//
// # Identity Keys
//
// Items are indexed by a derived string key "name:damage", optionally
// extended with a label discriminant when the underlying item carries
// opaque tag data (NBT) that the network bridge cannot expose
// structurally. The label is presentation-dependent, so two clients with
// different locales may derive different keys for the same item. This is
// a known limitation of the discriminant, not something we try to fix.
//
// # Containment
//
// Contains implements the structural subset test used to guard against
// key collisions: a sparse catalog identity matches a richer inventory
// record when every field it carries is present with an equal value.
package item
