package panel

import "strings"

// None is the function label of an unassigned button.
const None = "None"

// Default and sentinel colors.
const (
	Black = "Black"
	Gray  = "Gray"
	White = "White"
)

var letterPalette = map[string]string{
	"A": "Red",
	"B": "Yellow",
	"C": "Green",
	"D": "Blue",
	"E": "Magenta",
	"F": "Cyan",
	"G": "Orange",
	"H": "Pink",
}

// PaletteColor returns the fixed color of a legacy button letter.
func PaletteColor(letter string) (string, bool) {
	c, ok := letterPalette[letter]
	return c, ok
}

// DefaultColorAliases rename colors of the systems color file to the names the
// front-end expects. Keys are lowercase.
var DefaultColorAliases = map[string]string{
	"darkgreen": "Green",
	"green":     "Lime",
}

func aliasColor(aliases map[string]string, c string) string {
	if a, ok := aliases[strings.ToLower(strings.TrimSpace(c))]; ok {
		return a
	}
	return c
}

func isNone(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || label == None
}
