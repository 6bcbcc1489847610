package panel

import "strings"

// Resolution is the effective function and color of one slot.
type Resolution struct {
	Key      Key
	HasKey   bool
	Function string
	Color    string
}

// Resolve returns the function and color slot shows for title on a panel of size
// buttons. Missing assignments fall back to documented defaults; only static
// table gaps are errors.
func (e *Engine) Resolve(t Title, slot SlotID, size int) (Resolution, error) {
	active, err := e.catalogue.LayoutFor(t.Family, size)
	if err != nil {
		return Resolution{}, err
	}
	native, err := e.nativeLayout(t)
	if err != nil {
		return Resolution{}, err
	}
	if active.IndexOf(slot) == 0 {
		return Resolution{}, defectf("slot %q is not part of the %s/%d layout", slot, t.Family, size)
	}
	return e.resolveIn(t, slot, keyedLayout(t, active, native)), nil
}

// keyedLayout is the layout a title's keys are read against on the panel
// described by active.
func keyedLayout(t Title, active, native Layout) Layout {
	if t.DeviceBound && t.Family == Generic {
		return native
	}
	return active
}

// resolveIn applies the override chain: base color, then Black for unassigned
// buttons, then the letter palette for lettered slots. Generic keys and color
// banks are indexed by the slot's position in active; device-bound titles pass
// their native layout instead.
func (e *Engine) resolveIn(t Title, slot SlotID, active Layout) Resolution {
	var r Resolution
	var pos int

	switch t.Family {
	case Generic:
		if i := active.IndexOf(slot); i > 0 {
			r.Key, r.HasKey = Key{Kind: IndexKey, Index: i}, true
			pos = i
		}
	case LetteredLegacy:
		if letter, ok := active.Letter(slot); ok {
			r.Key, r.HasKey = Key{Kind: LetterKey, Letter: letter}, true
		}
		pos = active.IndexOf(slot)
	case RetropadDerived:
		if id, ok := active.RetropadID(slot); ok {
			r.Key, r.HasKey = Key{Kind: DeviceKey, Index: id}, true
		}
		pos = active.IndexOf(slot)
	}

	r.Function = None
	if r.HasKey {
		if label, ok := e.function(t, r.Key); ok {
			r.Function = label
		}
	}

	r.Color = Gray
	if pos > 0 {
		r.Color = e.color(t, ButtonOption(pos), Gray)
	}
	if r.Function == None {
		r.Color = Black
	}
	if t.Family == LetteredLegacy && r.HasKey {
		if c, ok := PaletteColor(r.Key.Letter); ok {
			r.Color = c
		}
	}
	return r
}

// function looks up the label of key; "None" and blank labels count as absent.
func (e *Engine) function(t Title, k Key) (string, bool) {
	var label string
	var ok bool
	if k.Kind == DeviceKey {
		var rm Remap
		rm, ok = e.remap(t, k.Index)
		label = rm.Label
	} else {
		label, ok = lookup(e.src.Functions, t.EffectiveFunctionSection(), k.Option())
	}
	if !ok || isNone(label) {
		return "", false
	}
	return strings.TrimSpace(label), true
}

func (e *Engine) remap(t Title, id int) (Remap, bool) {
	if e.src.Remaps == nil {
		return Remap{}, false
	}
	return e.src.Remaps.Remap(t.EffectiveRemapSystem(), id)
}

// color reads option from the title's color section, falling back to def.
func (e *Engine) color(t Title, option, def string) string {
	c, ok := lookup(e.src.Colors, t.EffectiveColorSection(), option)
	c = strings.TrimSpace(c)
	if !ok || c == "" {
		return def
	}
	if t.Family == RetropadDerived {
		c = aliasColor(e.aliases, c)
	}
	return c
}
