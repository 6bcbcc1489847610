package game

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/xtding233/panelmap/internal/panel"
)

const (
	testColors = `[DEFAULT]
P1_JOYSTICK=Red

[sf2]
P1_BUTTON1=Red
P1_BUTTON2=Blue
P1_BUTTON3=Green
P1_BUTTON4=Yellow
P1_BUTTON5=White
P1_BUTTON6=Orange

[NeoGeo]
P1_JOYSTICK=Blue
P1_START=White
`
	testColorsOverride = `[sf2]
P1_BUTTON6=Purple
`
	testControls = `[sf2]
P1_BUTTON1=Jab Punch
P1_BUTTON2=Strong Punch
P1_BUTTON3=Fierce Punch
P1_BUTTON4=Short Kick
P1_BUTTON5=Forward Kick
P1_BUTTON6=Roundhouse Kick

[pacman]
P1_JOYSTICK=Move

[neogeo]
P1_BUTTON1=A
P1_BUTTON2=B
P1_BUTTON3=C
P1_BUTTON4=D

[mslug]
P1_BUTTON1=Shoot
P1_BUTTON2=Jump
P1_BUTTON3=Grenade
`
	testFBNeo = `sf2:
  Weak Punch: x
  Strong Punch: y
  Coin: back
  Start: start
  players: 2
1941:
  Fire: a
  Loop: rightshoulder
`
	testSystemColors = `[megadrive]
P1_JOYSTICK=DarkGreen
P1_BUTTON1=Green
P1_BUTTON2=Blue

[snes]
P1_BUTTON1=Red
`
	testRemap = `<system name="megadrive" emulator="genesis_plus_gx">
  <input>
    <group name="MS Joypad 2 Button">
      <port type="P1_BUTTON1"><newseq type="standard" retropad_id="8">Button 1</newseq></port>
    </group>
    <group name="MD Joypad 6 Button">
      <port type="P1_BUTTON1"><newseq type="standard" retropad_id="8">C</newseq></port>
      <port type="P1_BUTTON2"><newseq type="standard" retropad_id="0">B</newseq></port>
      <port type="P1_BUTTON3"><newseq type="standard" retropad_id="9">Y</newseq></port>
    </group>
  </input>
</system>`
	testManifest = `version: "test"
sources:
  arcade_colors: [colors.ini, override.ini]
  fbneo_colors: [colors.ini]
  system_colors: [systems.ini]
  controls: controls.ini
  fbneo_controls: fbneo.yml
  remap_dir: retroarch
lettered:
  section: neogeo
  titles: [mslug, KOF98]
systems:
  emulators:
    megadrive: [picodrive, genesis_plus_gx]
`
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"colors.ini":                    testColors,
		"override.ini":                  testColorsOverride,
		"controls.ini":                  testControls,
		"fbneo.yml":                     testFBNeo,
		"systems.ini":                   testSystemColors,
		"retroarch/genesis_plus_gx.xml": testRemap,
		ManifestFile:                    testManifest,
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		test.That(t, os.MkdirAll(filepath.Dir(p), 0o755), test.ShouldBeNil)
		test.That(t, os.WriteFile(p, []byte(body), 0o644), test.ShouldBeNil)
	}
	return dir
}

func TestLoaderManifest(t *testing.T) {
	l := NewLoader(writeFixture(t), nil)
	m, err := l.Manifest()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Version, test.ShouldEqual, "test")
	test.That(t, m.Lettered.Titles, test.ShouldResemble, []string{"mslug", "KOF98"})
	// merged with the built-in manifest
	test.That(t, m.Systems.Emulators["megadrive"], test.ShouldResemble, []string{"picodrive", "genesis_plus_gx"})
	test.That(t, m.Systems.Groups["megadrive"], test.ShouldEqual, "MD Joypad 6 Button")
	test.That(t, m.Output.Arcade, test.ShouldEqual, "mame")
	test.That(t, ValidateManifest(m), test.ShouldBeNil)
}

func TestLoaderArcade(t *testing.T) {
	l := NewLoader(writeFixture(t), nil)
	b, err := l.Resolve(Arcade)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.System, test.ShouldEqual, "arcade")

	names := make([]string, 0, len(b.Titles))
	for _, ti := range b.Titles {
		names = append(names, ti.Name)
	}
	test.That(t, names, test.ShouldResemble, []string{"kof98", "mslug", "pacman", "sf2"})

	sf2, ok := b.Find("SF2")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sf2.Family, test.ShouldEqual, panel.Generic)

	mslug, _ := b.Find("mslug")
	test.That(t, mslug.Family, test.ShouldEqual, panel.LetteredLegacy)
	test.That(t, mslug.FunctionSection, test.ShouldEqual, "mslug")
	test.That(t, mslug.ColorSection, test.ShouldEqual, "neogeo")

	kof, _ := b.Find("kof98")
	test.That(t, kof.FunctionSection, test.ShouldEqual, "neogeo")

	eng := b.Engine()
	rec, err := eng.Assemble(sf2, 6)
	test.That(t, err, test.ShouldBeNil)
	// later color files override earlier ones
	test.That(t, rec.Buttons[2].Function, test.ShouldEqual, "Fierce Punch")
	test.That(t, rec.Buttons[5].Color, test.ShouldEqual, "Purple")
	// DEFAULT section fallback
	test.That(t, rec.Joystick, test.ShouldEqual, "Red")

	rec, err = eng.Assemble(mslug, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rec.Joystick, test.ShouldEqual, "Blue")

	again, err := l.Resolve(Arcade)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again, test.ShouldEqual, b)
	l.Invalidate()
	again, err = l.Resolve(Arcade)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again == b, test.ShouldBeFalse)
}

func TestLoaderFBNeo(t *testing.T) {
	l := NewLoader(writeFixture(t), nil)
	b, err := l.Resolve(FBNeo)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Titles, test.ShouldHaveLength, 2)

	sf2, ok := b.Find("sf2")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sf2.Native, test.ShouldEqual, 6)

	test.That(t, sf2.DeviceBound, test.ShouldBeTrue)
	test.That(t, b.Catalogue, test.ShouldEqual, panel.DeviceCatalogue())

	// y leads the top row, so it takes the first color
	v, ok := b.Sources.Functions.Lookup("sf2", "P1_BUTTON1")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "Strong Punch")

	rec, err := b.Engine().Assemble(sf2, 6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rec.Buttons[0].Slot, test.ShouldEqual, panel.Slot4)
	test.That(t, rec.Buttons[0].GameButton, test.ShouldEqual, "y")
	test.That(t, rec.Buttons[0].Function, test.ShouldEqual, "Strong Punch")
	test.That(t, rec.Buttons[0].Color, test.ShouldEqual, "Red")
	test.That(t, rec.Buttons[1].Slot, test.ShouldEqual, panel.Slot3)
	test.That(t, rec.Buttons[1].Function, test.ShouldEqual, "Weak Punch")
	test.That(t, rec.Buttons[1].Color, test.ShouldEqual, "Blue")
	test.That(t, rec.Start.GameButton, test.ShouldEqual, "start")
}

func TestLoaderSystems(t *testing.T) {
	l := NewLoader(writeFixture(t), nil)
	b, err := l.Resolve(Systems)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.System, test.ShouldEqual, "")

	md, ok := b.Find("megadrive")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, md.Family, test.ShouldEqual, panel.RetropadDerived)
	test.That(t, b.SystemFor(md), test.ShouldEqual, "megadrive")

	rec, err := b.Engine().Assemble(md, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rec.Joystick, test.ShouldEqual, "Green")
	test.That(t, rec.Buttons[0].Function, test.ShouldEqual, "C")
	test.That(t, rec.Buttons[0].Color, test.ShouldEqual, "Lime")

	snes, _ := b.Find("snes")
	rec, err = b.Engine().Assemble(snes, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rec.Buttons[0].Function, test.ShouldEqual, panel.None)
	test.That(t, rec.Buttons[0].Color, test.ShouldEqual, panel.Black)
}

func TestLoaderUnknownPlatform(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	_, err := l.Resolve(Platform("psx"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoaderEmptyDir(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	for _, p := range Platforms {
		b, err := l.Resolve(p)
		test.That(t, err, test.ShouldBeNil)
		if p == Arcade {
			// lettered titles exist without any source file
			test.That(t, len(b.Titles), test.ShouldBeGreaterThan, 100)
		} else {
			test.That(t, b.Titles, test.ShouldBeEmpty)
		}
	}
}

func TestWatchList(t *testing.T) {
	dir := writeFixture(t)
	l := NewLoader(dir, nil)
	files, err := l.WatchList()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, files, test.ShouldContain, filepath.Join(dir, ManifestFile))
	test.That(t, files, test.ShouldContain, filepath.Join(dir, "retroarch"))
	test.That(t, files, test.ShouldContain, filepath.Join(dir, "override.ini"))
}

func TestMergeManifest(t *testing.T) {
	a := Manifest{
		Version:  "1",
		Sources:  SourceConfig{ArcadeColors: []string{"a.ini"}, Controls: "c.ini"},
		Lettered: &LetteredConfig{Section: "neogeo", Titles: []string{"x"}},
		Systems:  &SystemsConfig{Groups: map[string]string{"md": "six"}},
		Output:   OutputConfig{Arcade: "mame", FBNeo: "fbneo", Systems: "systems"},
	}
	b := Manifest{
		Sources:  SourceConfig{ArcadeColors: []string{"b.ini"}},
		Lettered: &LetteredConfig{Titles: []string{"y", "z"}},
		Systems:  &SystemsConfig{Groups: map[string]string{"sms": "two"}},
		Colors:   &ColorConfig{Aliases: map[string]string{"blu": "Blue"}},
		Output:   OutputConfig{Arcade: "out"},
	}
	out := mergeManifest(a, b)
	test.That(t, out.Version, test.ShouldEqual, "1")
	test.That(t, out.Sources.ArcadeColors, test.ShouldResemble, []string{"b.ini"})
	test.That(t, out.Sources.Controls, test.ShouldEqual, "c.ini")
	test.That(t, out.Lettered.Section, test.ShouldEqual, "neogeo")
	test.That(t, out.Lettered.Titles, test.ShouldResemble, []string{"y", "z"})
	test.That(t, out.Systems.Groups, test.ShouldResemble, map[string]string{"md": "six", "sms": "two"})
	test.That(t, out.Colors.Aliases["blu"], test.ShouldEqual, "Blue")
	test.That(t, out.Output.Arcade, test.ShouldEqual, "out")
	test.That(t, out.Output.FBNeo, test.ShouldEqual, "fbneo")
	// a is left alone
	test.That(t, a.Lettered.Titles, test.ShouldResemble, []string{"x"})
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("FBNeo")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldEqual, FBNeo)
	_, err = ParsePlatform("amiga")
	test.That(t, err, test.ShouldNotBeNil)
}
