package panel

import "sort"

// NativeButtonCount returns the panel size the title's configuration was written
// for: the smallest size covering its highest configured button, unless the
// title pins one.
func (e *Engine) NativeButtonCount(t Title) int {
	if t.Native != 0 {
		return t.Native
	}
	highest := 0
	switch t.Family {
	case Generic, LetteredLegacy:
		section := t.EffectiveFunctionSection()
		for _, k := range keys(e.src.Functions, section) {
			n, ok := ParseButtonOption(k)
			if !ok {
				continue
			}
			if v, _ := lookup(e.src.Functions, section, k); isNone(v) {
				continue
			}
			highest = max(highest, n)
		}
		if highest == 0 && t.Family == Generic {
			// no functions at all: the color file still says how big the panel was
			for _, k := range keys(e.src.Colors, t.EffectiveColorSection()) {
				if n, ok := ParseButtonOption(k); ok {
					highest = max(highest, n)
				}
			}
		}
	case RetropadDerived:
		full, err := e.catalogue.LayoutFor(RetropadDerived, 8)
		if err != nil {
			return 2
		}
		for i, slot := range full.Slots {
			id, _ := full.RetropadID(slot)
			if rm, ok := e.remap(t, id); ok && !isNone(rm.Label) {
				highest = i + 1
			}
		}
	}
	return sizeClass(highest)
}

func (e *Engine) nativeLayout(t Title) (Layout, error) {
	return e.catalogue.LayoutFor(t.Family, e.NativeButtonCount(t))
}

// collapse picks the two most meaningful buttons of a larger native layout for a
// 2-button panel. Candidates are gathered from the largest layout down to the
// 4-button one, unassigned buttons dropped, the first two kept and then placed
// left to right. Missing buttons become inactive placeholders.
//
// Generic candidates keep the key they carry on the native panel; slots the
// native layout does not use have nothing to offer.
func (e *Engine) collapse(t Title, two, native Layout) ([]ButtonDescriptor, error) {
	var picked []ButtonDescriptor
	seen := make(map[SlotID]bool)

	for _, size := range []int{8, 6, 4} {
		l, err := e.catalogue.LayoutFor(t.Family, size)
		if err != nil {
			return nil, err
		}
		for _, slot := range l.Slots {
			if seen[slot] {
				continue
			}
			seen[slot] = true
			keyed := l
			if t.Family == Generic {
				if native.IndexOf(slot) == 0 {
					continue
				}
				keyed = native
			}
			d, err := e.describe(t, slot, keyed)
			if err != nil {
				return nil, err
			}
			if d.Function == None {
				continue
			}
			picked = append(picked, d)
			if len(picked) == 2 {
				break
			}
		}
		if len(picked) == 2 {
			break
		}
	}

	sort.SliceStable(picked, func(i, j int) bool { return picked[i].At.X < picked[j].At.X })

	out := make([]ButtonDescriptor, 0, len(two.Slots))
	for i, fixed := range two.Slots {
		at, err := PositionOf(fixed)
		if err != nil {
			return nil, err
		}
		var d ButtonDescriptor
		if i < len(picked) {
			d = picked[i]
		} else {
			ctrl, err := ControllerFor(fixed)
			if err != nil {
				return nil, err
			}
			d = ButtonDescriptor{
				SourceSlot: fixed,
				Controller: ctrl,
				GameButton: genericGameButton(ctrl),
				RetropadID: -1,
				Function:   None,
				Color:      Black,
			}
			if t.DeviceBound {
				if d.GameButton, err = DeviceButtonNameFor(fixed); err != nil {
					return nil, err
				}
			}
			if t.Family == RetropadDerived {
				if id, ok := RetropadIDFor(fixed); ok {
					d.RetropadID = id
					d.GameButton = RetropadButtonName(id)
				}
			}
		}
		d.Position = i + 1
		d.Slot = fixed
		d.At = at
		out = append(out, d)
	}
	return out, nil
}
