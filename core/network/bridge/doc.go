// Package bridge implements the network interfaces against the
// in-world RPC bridge, a small HTTP endpoint exposed by the computer
// attached to the crafting network.
//
// The wire format is deliberately thin: every call is a JSON request or
// response mirroring the bridge's component API. Item records are
// passed through as loose maps so the structural containment matcher
// can see every field the platform reports, with the known fields
// lifted out via typed accessors.
package bridge
