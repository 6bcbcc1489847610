// Package palette maps the color names used by LED controller configs to RGB.
package palette

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// names follow the HTML/LEDBlinky convention, where Green is the dark one and
// Lime the bright one.
var names = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"gray":      "#808080",
	"grey":      "#808080",
	"silver":    "#c0c0c0",
	"red":       "#ff0000",
	"darkred":   "#8b0000",
	"maroon":    "#800000",
	"green":     "#008000",
	"darkgreen": "#006400",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"blue":      "#0000ff",
	"darkblue":  "#00008b",
	"navy":      "#000080",
	"skyblue":   "#87ceeb",
	"lightblue": "#add8e6",
	"yellow":    "#ffff00",
	"gold":      "#ffd700",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"purple":    "#800080",
	"violet":    "#ee82ee",
	"indigo":    "#4b0082",
	"magenta":   "#ff00ff",
	"fuchsia":   "#ff00ff",
	"pink":      "#ffc0cb",
	"cyan":      "#00ffff",
	"aqua":      "#00ffff",
	"teal":      "#008080",
	"turquoise": "#40e0d0",
}

var colors = func() map[string]colorful.Color {
	out := make(map[string]colorful.Color, len(names))
	for n, hex := range names {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		out[n] = c
	}
	return out
}()

// Lookup returns the color called name, case-insensitively. Hex codes
// ("#rrggbb") are accepted as well.
func Lookup(name string) (colorful.Color, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if c, ok := colors[n]; ok {
		return c, true
	}
	if strings.HasPrefix(n, "#") {
		if c, err := colorful.Hex(n); err == nil {
			return c, true
		}
	}
	return colorful.Color{}, false
}

// Known reports whether Lookup would succeed.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Hex returns "#rrggbb" for name, or "" if it is unknown.
func Hex(name string) string {
	c, ok := Lookup(name)
	if !ok {
		return ""
	}
	return c.Hex()
}

// Names lists the known color names, sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Nearest returns the known name closest to c in Lab space.
func Nearest(c colorful.Color) string {
	best, dist := "", 0.0
	for _, n := range Names() {
		d := c.DistanceLab(colors[n])
		if best == "" || d < dist {
			best, dist = n, d
		}
	}
	return best
}

// Suggest names the known color closest to a value Lookup rejects but that
// still reads as a color: a hex code missing its '#', or an "r,g,b" triple.
func Suggest(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if len(v) == 6 {
		if c, err := colorful.Hex("#" + strings.ToLower(v)); err == nil {
			return Nearest(c), true
		}
	}
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return "", false
	}
	var rgb [3]float64
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		rgb[i] = float64(n) / 255
	}
	return Nearest(colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}), true
}
