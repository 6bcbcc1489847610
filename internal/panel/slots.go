package panel

// SlotID names a physical button position on the panel.
type SlotID string

const (
	Slot1 SlotID = "1"
	Slot2 SlotID = "2"
	Slot3 SlotID = "3"
	Slot4 SlotID = "4"
	Slot5 SlotID = "5"
	Slot6 SlotID = "6"
	Slot7 SlotID = "7"
	Slot8 SlotID = "8"

	SlotStart SlotID = "START"
	SlotCoin  SlotID = "COIN"
)

// Point is a screen position in percent of the panel artwork.
type Point struct {
	X int
	Y int
}

// GameSlots lists the eight game-action slots in id order.
var GameSlots = []SlotID{Slot1, Slot2, Slot3, Slot4, Slot5, Slot6, Slot7, Slot8}

// bottom row 1 2 6 8, top row 3 4 5 7
var slotPositions = map[SlotID]Point{
	Slot1: {30, 60}, Slot2: {50, 60}, Slot6: {70, 60}, Slot8: {90, 60},
	Slot3: {30, 40}, Slot4: {50, 40}, Slot5: {70, 40}, Slot7: {90, 40},

	SlotStart: {85, 90},
	SlotCoin:  {95, 90},
}

// PositionOf returns the fixed screen position of slot.
func PositionOf(slot SlotID) (Point, error) {
	p, ok := slotPositions[slot]
	if !ok {
		return Point{}, defectf("slot %q is not in the physical slot table", slot)
	}
	return p, nil
}

// IsGameSlot reports whether slot is one of the eight game-action slots.
func IsGameSlot(slot SlotID) bool {
	switch slot {
	case Slot1, Slot2, Slot3, Slot4, Slot5, Slot6, Slot7, Slot8:
		return true
	}
	return false
}
