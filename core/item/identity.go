package item

import (
	"math"
	"strconv"
)

// Identity identifies an item type on the crafting network.
type Identity struct {
	// Name is the internal item name (e.g. "minecraft:iron_ingot").
	Name string `json:"name"`
	// Damage is the item's damage/metadata value, floored.
	Damage int `json:"damage"`
	// Label is an optional display-name discriminant. It is set only for
	// items that carry opaque tag data, to reduce false-positive key
	// collisions between variants sharing name and damage.
	Label string `json:"label,omitempty"`
}

// Key derives the catalog index key for an item. The label is appended
// only when withLabel is set; damage is floored before formatting so
// fractional values reported by the network collapse onto the same key.
func Key(name string, damage float64, label string, withLabel bool) string {
	key := name + ":" + strconv.Itoa(int(math.Floor(damage)))
	if withLabel {
		key += ":" + label
	}
	return key
}

// Key returns the identity's index key. The label discriminant is
// included exactly when it is set.
func (id Identity) Key() string {
	return Key(id.Name, float64(id.Damage), id.Label, id.Label != "")
}

// Record returns the identity as a sparse field record suitable for the
// Contains test against a full inventory record.
func (id Identity) Record() map[string]any {
	record := map[string]any{
		"name":   id.Name,
		"damage": id.Damage,
	}
	if id.Label != "" {
		record["label"] = id.Label
	}
	return record
}
