package panel

import "strings"

// Controller is the standard-gamepad identity a physical slot is wired to.
type Controller string

const (
	ControllerA        Controller = "A"
	ControllerB        Controller = "B"
	ControllerX        Controller = "X"
	ControllerY        Controller = "Y"
	ControllerPageUp   Controller = "PAGEUP"
	ControllerPageDown Controller = "PAGEDOWN"
	ControllerL2       Controller = "L2"
	ControllerR2       Controller = "R2"
	ControllerStart    Controller = "START"
	ControllerSelect   Controller = "SELECT"
)

var controllerBySlot = map[SlotID]Controller{
	Slot1:     ControllerA,
	Slot2:     ControllerB,
	Slot3:     ControllerX,
	Slot4:     ControllerY,
	Slot5:     ControllerPageUp,
	Slot6:     ControllerPageDown,
	Slot7:     ControllerL2,
	Slot8:     ControllerR2,
	SlotStart: ControllerStart,
	SlotCoin:  ControllerSelect,
}

// ControllerFor returns the controller identity wired to slot.
func ControllerFor(slot SlotID) (Controller, error) {
	c, ok := controllerBySlot[slot]
	if !ok {
		return "", defectf("no controller identity for slot %q", slot)
	}
	return c, nil
}

// device button names used by remap dictionaries (SDL game controller naming)
var deviceNameBySlot = map[SlotID]string{
	Slot1:     "a",
	Slot2:     "b",
	Slot3:     "x",
	Slot4:     "y",
	Slot5:     "leftshoulder",
	Slot6:     "rightshoulder",
	Slot7:     "lefttrigger",
	Slot8:     "righttrigger",
	SlotStart: "start",
	SlotCoin:  "back",
}

// DeviceButtonNameFor returns the canonical lowercase device button name of slot.
func DeviceButtonNameFor(slot SlotID) (string, error) {
	n, ok := deviceNameBySlot[slot]
	if !ok {
		return "", defectf("no device button name for slot %q", slot)
	}
	return n, nil
}

// SlotForDeviceName is the inverse of DeviceButtonNameFor. Matching ignores case.
func SlotForDeviceName(name string) (SlotID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for slot, n := range deviceNameBySlot {
		if n == name {
			return slot, true
		}
	}
	return "", false
}

// Retropad device ids.
const (
	RetropadB      = 0
	RetropadY      = 1
	RetropadSelect = 2
	RetropadStart  = 3
	RetropadUp     = 4
	RetropadDown   = 5
	RetropadLeft   = 6
	RetropadRight  = 7
	RetropadA      = 8
	RetropadX      = 9
	RetropadL1     = 10
	RetropadR1     = 11
	RetropadL2     = 12
	RetropadR2     = 13
	RetropadL3     = 14
	RetropadR3     = 15
)

// only the ids that land on an arcade button
var slotByRetropad = map[int]SlotID{
	RetropadA:  Slot1,
	RetropadB:  Slot2,
	RetropadX:  Slot3,
	RetropadY:  Slot4,
	RetropadL1: Slot5,
	RetropadR1: Slot6,
	RetropadL2: Slot7,
	RetropadR2: Slot8,
}

var retropadNames = map[int]string{
	RetropadB:      "B",
	RetropadY:      "Y",
	RetropadSelect: "SELECT",
	RetropadStart:  "START",
	RetropadUp:     "UP",
	RetropadDown:   "DOWN",
	RetropadLeft:   "LEFT",
	RetropadRight:  "RIGHT",
	RetropadA:      "A",
	RetropadX:      "X",
	RetropadL1:     "L1",
	RetropadR1:     "R1",
	RetropadL2:     "L2",
	RetropadR2:     "R2",
	RetropadL3:     "L3",
	RetropadR3:     "R3",
}

// PhysicalFor returns the slot a retropad device id is wired to.
func PhysicalFor(id int) (SlotID, bool) {
	s, ok := slotByRetropad[id]
	return s, ok
}

// RetropadIDFor is the inverse of PhysicalFor.
func RetropadIDFor(slot SlotID) (int, bool) {
	for id, s := range slotByRetropad {
		if s == slot {
			return id, true
		}
	}
	return -1, false
}

// ControllerForRetropad composes PhysicalFor and ControllerFor.
func ControllerForRetropad(id int) (Controller, error) {
	slot, ok := PhysicalFor(id)
	if !ok {
		return "", defectf("retropad id %d is not wired to a panel slot", id)
	}
	return ControllerFor(slot)
}

// RetropadButtonName returns the retropad label of id ("A", "L1", ...), or "NONE".
func RetropadButtonName(id int) string {
	if n, ok := retropadNames[id]; ok {
		return n
	}
	return "NONE"
}

// genericGameButton names shoulder buttons the way arcade control files do.
func genericGameButton(c Controller) string {
	switch c {
	case ControllerPageUp:
		return "L1"
	case ControllerPageDown:
		return "R1"
	default:
		return string(c)
	}
}
