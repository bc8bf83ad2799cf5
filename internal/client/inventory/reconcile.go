package inventory

import "github.com/hackinpovo/inventory/internal/client/models"

// Origin tells SetQuantity which form the value came from.
type Origin int

const (
	// OriginCreate is the new-item form; quantity is at least 1.
	OriginCreate Origin = iota
	// OriginEdit is the edit form and the quantity stepper; quantity may be 0.
	OriginEdit
)

// MinQuantity is the lower bound for a quantity entered from origin.
func (o Origin) MinQuantity() int {
	if o == OriginCreate {
		return 1
	}
	return 0
}

// Clamp raises quantity to the origin's minimum.
func (o Origin) Clamp(quantity int) int {
	return max(quantity, o.MinQuantity())
}

// SetQuantity sets the item's quantity, clamped to the origin's minimum, and
// pulls used down so it never exceeds the new quantity.
func SetQuantity(item models.Item, quantity int, origin Origin) models.Item {
	item.Quantity = origin.Clamp(quantity)
	item.Used = min(item.Used, item.Quantity)
	return item
}

// SetUsed sets the used count, clamped to zero, and raises quantity when
// used would exceed it.
func SetUsed(item models.Item, used int) models.Item {
	item.Used = max(used, 0)
	item.Quantity = max(item.Quantity, item.Used)
	return item
}

// Normalize repairs an item received from elsewhere so 0 <= used <= quantity.
// Used is lowered to quantity, never the other way round.
func Normalize(item models.Item) models.Item {
	item.Quantity = max(item.Quantity, 0)
	item.Used = max(item.Used, 0)
	item.Used = min(item.Used, item.Quantity)
	return item
}

// Controls reports which stepper buttons of an item are enabled.
type Controls struct {
	QuantityDec bool
	QuantityInc bool
	UsedDec     bool
	UsedInc     bool
}

// ControlsFor derives the stepper state from the item's counts alone.
// In-flight requests are masked on top of this by the caller.
func ControlsFor(item models.Item) Controls {
	return Controls{
		QuantityDec: item.Quantity > 0 && item.Used < item.Quantity,
		QuantityInc: true,
		UsedDec:     item.Used > 0,
		UsedInc:     item.Used < item.Quantity,
	}
}
