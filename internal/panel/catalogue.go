package panel

import (
	"fmt"

	"go.uber.org/multierr"
)

// Layout is the ordered list of slots one family uses on one panel size.
type Layout struct {
	Family Family
	Count  int
	Slots  []SlotID

	letters  map[SlotID]string
	retropad map[SlotID]int
}

// IndexOf returns the 1-based position of slot in the layout, or 0.
func (l Layout) IndexOf(slot SlotID) int {
	for i, s := range l.Slots {
		if s == slot {
			return i + 1
		}
	}
	return 0
}

// Letter returns the letter assigned to slot (LetteredLegacy only).
func (l Layout) Letter(slot SlotID) (string, bool) {
	letter, ok := l.letters[slot]
	return letter, ok
}

// RetropadID returns the device id the slot carries (RetropadDerived only).
func (l Layout) RetropadID(slot SlotID) (int, bool) {
	id, ok := l.retropad[slot]
	return id, ok
}

// LayoutSpec is one raw catalogue row. Generic and LetteredLegacy rows list Slots;
// RetropadDerived rows list RetropadIDs and get their slots through PhysicalFor.
// Letters, when set, name each position of a LetteredLegacy row.
type LayoutSpec struct {
	Family      Family
	Count       int
	Slots       []SlotID
	RetropadIDs []int
	Letters     []string
}

type layoutKey struct {
	family Family
	count  int
}

// Catalogue holds the layout of every (family, panel size) pair. It is immutable
// once built and safe for concurrent use.
type Catalogue struct {
	layouts map[layoutKey]Layout
}

// NewCatalogue validates specs and builds a catalogue from them.
func NewCatalogue(specs []LayoutSpec) (*Catalogue, error) {
	c := &Catalogue{layouts: make(map[layoutKey]Layout, len(specs))}
	var errs error
	for _, spec := range specs {
		l, err := buildLayout(spec)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		k := layoutKey{spec.Family, spec.Count}
		if _, dup := c.layouts[k]; dup {
			errs = multierr.Append(errs, defectf("duplicate layout %s/%d", spec.Family, spec.Count))
			continue
		}
		c.layouts[k] = l
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

func buildLayout(spec LayoutSpec) (Layout, error) {
	name := fmt.Sprintf("%s/%d", spec.Family, spec.Count)
	if !IsPanelSize(spec.Count) {
		return Layout{}, defectf("layout %s: unsupported panel size", name)
	}
	l := Layout{Family: spec.Family, Count: spec.Count}

	switch spec.Family {
	case Generic, LetteredLegacy:
		l.Slots = append([]SlotID(nil), spec.Slots...)
	case RetropadDerived:
		l.retropad = make(map[SlotID]int, len(spec.RetropadIDs))
		for _, id := range spec.RetropadIDs {
			slot, ok := PhysicalFor(id)
			if !ok {
				return Layout{}, defectf("layout %s: retropad id %d has no panel slot", name, id)
			}
			l.Slots = append(l.Slots, slot)
			l.retropad[slot] = id
		}
	default:
		return Layout{}, defectf("layout %s: unknown family", name)
	}

	if len(l.Slots) != spec.Count {
		return Layout{}, defectf("layout %s: %d slots listed", name, len(l.Slots))
	}
	seen := make(map[SlotID]bool, len(l.Slots))
	for _, s := range l.Slots {
		if !IsGameSlot(s) {
			return Layout{}, defectf("layout %s: slot %q is not a game slot", name, s)
		}
		if seen[s] {
			return Layout{}, defectf("layout %s: slot %q listed twice", name, s)
		}
		seen[s] = true
	}

	if spec.Family == LetteredLegacy {
		letters := spec.Letters
		if letters == nil {
			for i := range l.Slots {
				letters = append(letters, LetterAt(i+1))
			}
		}
		if len(letters) != len(l.Slots) {
			return Layout{}, defectf("layout %s: %d letters for %d slots", name, len(letters), len(l.Slots))
		}
		l.letters = make(map[SlotID]string, len(letters))
		for i, letter := range letters {
			if letter == "" {
				continue
			}
			if _, ok := PaletteColor(letter); !ok {
				return Layout{}, defectf("layout %s: letter %q has no palette color", name, letter)
			}
			l.letters[l.Slots[i]] = letter
		}
	}
	return l, nil
}

// LayoutFor returns the ordered slots of family on a panel of count buttons.
// An unknown pair is a configuration defect, never an empty layout.
func (c *Catalogue) LayoutFor(f Family, count int) (Layout, error) {
	l, ok := c.layouts[layoutKey{f, count}]
	if !ok {
		return Layout{}, defectf("no layout for family %s with %d buttons", f, count)
	}
	l.Slots = append([]SlotID(nil), l.Slots...)
	return l, nil
}

// LetterFor returns the letter slot carries on a LetteredLegacy panel of count
// buttons. ok is false when the slot has no letter on that panel.
func (c *Catalogue) LetterFor(f Family, count int, slot SlotID) (letter string, ok bool, err error) {
	l, err := c.LayoutFor(f, count)
	if err != nil {
		return "", false, err
	}
	letter, ok = l.Letter(slot)
	return letter, ok, nil
}

// DefaultSpecs is the canonical catalogue.
//
// The lettered rows follow the eight-letter table: the letter of a slot is its
// position in the row, so slot 4 is A on every panel larger than two buttons.
// The older four-letter table (slot 1 as A) is not used.
var DefaultSpecs = []LayoutSpec{
	{Family: Generic, Count: 2, Slots: []SlotID{Slot1, Slot2}},
	{Family: Generic, Count: 4, Slots: []SlotID{Slot1, Slot2, Slot3, Slot4}},
	{Family: Generic, Count: 6, Slots: []SlotID{Slot1, Slot2, Slot6, Slot3, Slot4, Slot5}},
	{Family: Generic, Count: 8, Slots: []SlotID{Slot1, Slot2, Slot6, Slot8, Slot3, Slot4, Slot5, Slot7}},

	{Family: LetteredLegacy, Count: 2, Slots: []SlotID{Slot1, Slot2}},
	{Family: LetteredLegacy, Count: 4, Slots: []SlotID{Slot4, Slot3, Slot1, Slot2}},
	{Family: LetteredLegacy, Count: 6, Slots: []SlotID{Slot4, Slot3, Slot5, Slot1, Slot2, Slot6}},
	{Family: LetteredLegacy, Count: 8, Slots: []SlotID{Slot4, Slot3, Slot5, Slot7, Slot1, Slot2, Slot6, Slot8}},

	{Family: RetropadDerived, Count: 2, RetropadIDs: []int{RetropadA, RetropadB}},
	{Family: RetropadDerived, Count: 4, RetropadIDs: []int{RetropadA, RetropadB, RetropadX, RetropadY}},
	{Family: RetropadDerived, Count: 6, RetropadIDs: []int{
		RetropadA, RetropadB, RetropadR1, RetropadX, RetropadY, RetropadL1,
	}},
	{Family: RetropadDerived, Count: 8, RetropadIDs: []int{
		RetropadA, RetropadB, RetropadR1, RetropadR2, RetropadX, RetropadY, RetropadL1, RetropadL2,
	}},
}

// DeviceSpecs is DefaultSpecs with the Generic rows listed top row first, the
// order device-name mappings number their color banks in.
var DeviceSpecs = append([]LayoutSpec{
	{Family: Generic, Count: 2, Slots: []SlotID{Slot1, Slot2}},
	{Family: Generic, Count: 4, Slots: []SlotID{Slot4, Slot3, Slot1, Slot2}},
	{Family: Generic, Count: 6, Slots: []SlotID{Slot4, Slot3, Slot5, Slot1, Slot2, Slot6}},
	{Family: Generic, Count: 8, Slots: []SlotID{Slot4, Slot3, Slot5, Slot7, Slot1, Slot2, Slot6, Slot8}},
}, DefaultSpecs[4:]...)

var (
	defaultCatalogue = mustCatalogue(DefaultSpecs)
	deviceCatalogue  = mustCatalogue(DeviceSpecs)
)

func mustCatalogue(specs []LayoutSpec) *Catalogue {
	c, err := NewCatalogue(specs)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalogue returns the process-wide canonical catalogue.
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue
}

// DeviceCatalogue returns the catalogue for device-bound titles.
func DeviceCatalogue() *Catalogue {
	return deviceCatalogue
}
