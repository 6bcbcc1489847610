package panel

import (
	"testing"

	"go.viam.com/test"
)

func TestResolveLettered(t *testing.T) {
	functions := MapStore{}
	functions.Set("y", "P1_BUTTON3", "Grenade")
	colors := MapStore{}
	colors.Set("y", "P1_BUTTON3", "White")
	colors.Set("y", "P1_BUTTON5", "Purple")
	eng := NewEngine(Sources{Functions: functions, Colors: colors})
	y := Title{Name: "y", Family: LetteredLegacy}

	// slot 5 carries C on the 6-button panel
	r, err := eng.Resolve(y, Slot5, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, "Grenade")
	test.That(t, r.Color, test.ShouldEqual, "Green")
	test.That(t, r.HasKey, test.ShouldBeTrue)
	test.That(t, r.Key, test.ShouldResemble, Key{Kind: LetterKey, Letter: "C"})

	// unassigned letters keep their palette color
	r, err = eng.Resolve(y, Slot4, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, None)
	test.That(t, r.Color, test.ShouldEqual, "Red")

	// on the 4-button panel C moves to slot 1
	r, err = eng.Resolve(y, Slot1, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, "Grenade")
	test.That(t, r.Color, test.ShouldEqual, "Green")
}

func TestResolveGeneric(t *testing.T) {
	functions := MapStore{}
	functions.Set("sf2", "P1_BUTTON1", "Jab")
	functions.Set("sf2", "P1_BUTTON4", "Short")
	functions.Set("sf2", "P1_BUTTON5", " None ")
	functions.Set("sf2", "P1_BUTTON6", "Roundhouse")
	colors := MapStore{}
	colors.Set("sf2", "P1_BUTTON1", "Red")
	colors.Set("sf2", "P1_BUTTON4", "green")
	colors.Set("sf2", "P1_BUTTON5", "Blue")
	eng := NewEngine(Sources{Functions: functions, Colors: colors})
	sf2 := Title{Name: "sf2", Family: Generic}

	r, err := eng.Resolve(sf2, Slot1, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, "Jab")
	test.That(t, r.Color, test.ShouldEqual, "Red")

	// keys follow the ordering of the requested panel: slot 4 is the fourth
	// button on the 4-button panel but the fifth on the native one
	r, err = eng.Resolve(sf2, Slot4, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON4")
	test.That(t, r.Function, test.ShouldEqual, "Short")
	// aliases only apply to retropad titles
	test.That(t, r.Color, test.ShouldEqual, "green")

	// "None" is no assignment, whatever the configured color
	r, err = eng.Resolve(sf2, Slot4, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, None)
	test.That(t, r.Color, test.ShouldEqual, Black)

	// active without a color entry
	r, err = eng.Resolve(sf2, Slot5, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, "Roundhouse")
	test.That(t, r.Color, test.ShouldEqual, Gray)

	// slot 8 is the fourth button of the 8-button panel
	r, err = eng.Resolve(sf2, Slot8, 8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON4")
	test.That(t, r.Function, test.ShouldEqual, "Short")

	// slot 7 closes the 8-button ordering, past every configured button
	r, err = eng.Resolve(sf2, Slot7, 8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON8")
	test.That(t, r.Function, test.ShouldEqual, None)
	test.That(t, r.Color, test.ShouldEqual, Black)
}

func TestResolveSmallerPanel(t *testing.T) {
	functions := MapStore{}
	colors := MapStore{}
	labels := []string{"Jab", "Strong", "Fierce", "Short", "Forward", "Roundhouse"}
	shades := []string{"Red", "Yellow", "Green", "Blue", "Cyan", "Magenta"}
	for i := range labels {
		functions.Set("sf2", ButtonOption(i+1), labels[i])
		colors.Set("sf2", ButtonOption(i+1), shades[i])
	}
	eng := NewEngine(Sources{Functions: functions, Colors: colors})
	sf2 := Title{Name: "sf2", Family: Generic}
	test.That(t, eng.NativeButtonCount(sf2), test.ShouldEqual, 6)

	// the third button of a 4-button panel is slot 3, even though slot 3 is
	// the fourth button of the native panel
	r, err := eng.Resolve(sf2, Slot3, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON3")
	test.That(t, r.Function, test.ShouldEqual, "Fierce")
	test.That(t, r.Color, test.ShouldEqual, "Green")

	rec, err := eng.Assemble(sf2, 4)
	test.That(t, err, test.ShouldBeNil)
	for i, b := range rec.Buttons {
		test.That(t, b.Key, test.ShouldEqual, ButtonOption(i+1))
		test.That(t, b.Function, test.ShouldEqual, labels[i])
		test.That(t, b.Color, test.ShouldEqual, shades[i])
	}
	test.That(t, rec.Buttons[2].Slot, test.ShouldEqual, Slot3)
}

func TestResolveDeviceBound(t *testing.T) {
	functions := MapStore{}
	functions.Set("ddsom", "P1_BUTTON1", "Attack")
	functions.Set("ddsom", "P1_BUTTON2", "Jump")
	functions.Set("ddsom", "P1_BUTTON5", "Select")
	colors := MapStore{}
	colors.Set("ddsom", "P1_BUTTON1", "Red")
	colors.Set("ddsom", "P1_BUTTON5", "Blue")
	eng := NewEngine(Sources{Functions: functions, Colors: colors}, WithCatalogue(DeviceCatalogue()))
	ddsom := Title{Name: "ddsom", Family: Generic, Native: 6, DeviceBound: true}

	// slot 4 leads the native 6-button ordering and keeps that key everywhere
	for _, size := range []int{4, 6, 8} {
		r, err := eng.Resolve(ddsom, Slot4, size)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON1")
		test.That(t, r.Function, test.ShouldEqual, "Attack")
		test.That(t, r.Color, test.ShouldEqual, "Red")
	}

	r, err := eng.Resolve(ddsom, Slot1, 8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key.Option(), test.ShouldEqual, "P1_BUTTON4")
	test.That(t, r.Function, test.ShouldEqual, None)

	// slot 7 has no input on the native panel
	r, err = eng.Resolve(ddsom, Slot7, 8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.HasKey, test.ShouldBeFalse)
	test.That(t, r.Color, test.ShouldEqual, Black)
}

func TestResolveRetropad(t *testing.T) {
	colors := MapStore{}
	colors.Set("megadrive", "P1_BUTTON1", "green")
	colors.Set("megadrive", "P1_BUTTON3", "DarkGreen")
	remaps := RemapTable{"genesis": {
		RetropadA: {Label: "Jump", Entry: "C"},
		RetropadX: {Label: "Mode"},
	}}
	eng := NewEngine(Sources{Colors: colors, Remaps: remaps})
	md := Title{Name: "megadrive", Family: RetropadDerived, RemapSystem: "genesis"}

	r, err := eng.Resolve(md, Slot1, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Key, test.ShouldResemble, Key{Kind: DeviceKey, Index: RetropadA})
	test.That(t, r.Function, test.ShouldEqual, "Jump")
	test.That(t, r.Color, test.ShouldEqual, "Lime")

	r, err = eng.Resolve(md, Slot3, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, "Mode")
	test.That(t, r.Color, test.ShouldEqual, "Green")

	r, err = eng.Resolve(md, Slot2, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Function, test.ShouldEqual, None)
	test.That(t, r.Color, test.ShouldEqual, Black)

	custom := NewEngine(Sources{Colors: colors, Remaps: remaps}, WithColorAliases(map[string]string{}))
	r, err = custom.Resolve(md, Slot1, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Color, test.ShouldEqual, "green")
}

func TestResolveDeterministic(t *testing.T) {
	functions := MapStore{}
	functions.Set("x", "P1_BUTTON2", "Kick")
	eng := NewEngine(Sources{Functions: functions})
	x := Title{Name: "x", Family: Generic}

	first, err := eng.Resolve(x, Slot2, 2)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 5; i++ {
		again, err := eng.Resolve(x, Slot2, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, again, test.ShouldResemble, first)
	}
}

func TestResolveErrors(t *testing.T) {
	eng := NewEngine(Sources{})
	x := Title{Name: "x", Family: Generic}

	_, err := eng.Resolve(x, Slot7, 4)
	test.That(t, IsDefect(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not part of the generic/4 layout")

	_, err = eng.Resolve(x, Slot1, 5)
	test.That(t, IsDefect(err), test.ShouldBeTrue)

	_, err = eng.Resolve(Title{Name: "x", Family: Generic, Native: 3}, Slot1, 2)
	test.That(t, IsDefect(err), test.ShouldBeTrue)
}

func TestNativeButtonCount(t *testing.T) {
	functions := MapStore{}
	functions.Set("two", "P1_BUTTON2", "Kick")
	functions.Set("five", "P1_BUTTON5", "Bomb")
	functions.Set("seven", "P1_BUTTON7", "Taunt")
	functions.Set("blank", "P1_BUTTON6", "None")
	functions.Set("blank", "P1_BUTTON1", "Fire")
	functions.Set("lettered", "P1_BUTTON3", "Grenade")
	colors := MapStore{}
	colors.Set("dark", "P1_BUTTON4", "Red")
	colors.Set("dark", "P1_JOYSTICK", "Red")
	remaps := RemapTable{
		"nes":  {RetropadA: {Label: "Jump"}, RetropadB: {Label: "Fire"}},
		"snes": {RetropadA: {Label: "Jump"}, RetropadY: {Label: "Run"}, RetropadSelect: {Label: "Map"}},
	}
	eng := NewEngine(Sources{Functions: functions, Colors: colors, Remaps: remaps})

	for _, tc := range []struct {
		title Title
		want  int
	}{
		{Title{Name: "two", Family: Generic}, 2},
		{Title{Name: "five", Family: Generic}, 6},
		{Title{Name: "seven", Family: Generic}, 8},
		{Title{Name: "blank", Family: Generic}, 2},
		{Title{Name: "dark", Family: Generic}, 4},
		{Title{Name: "missing", Family: Generic}, 2},
		{Title{Name: "lettered", Family: LetteredLegacy}, 4},
		{Title{Name: "pinned", Family: Generic, Native: 8}, 8},
		{Title{Name: "nes", Family: RetropadDerived}, 2},
		{Title{Name: "snes", Family: RetropadDerived}, 6},
		{Title{Name: "psx", Family: RetropadDerived}, 2},
	} {
		test.That(t, eng.NativeButtonCount(tc.title), test.ShouldEqual, tc.want)
	}
}
