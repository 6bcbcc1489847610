package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Family is the addressing convention a title's buttons are keyed by.
type Family int

const (
	// Generic titles key functions and colors by P1_BUTTONn.
	Generic Family = iota
	// LetteredLegacy titles key functions by letter; the letter of a slot depends
	// on the panel size.
	LetteredLegacy
	// RetropadDerived titles take functions from a controller-name dictionary
	// keyed by retropad device id.
	RetropadDerived
)

// Families lists every family.
var Families = []Family{Generic, LetteredLegacy, RetropadDerived}

// PanelSizes lists the supported panel sizes, smallest first.
var PanelSizes = []int{2, 4, 6, 8}

func (f Family) String() string {
	switch f {
	case Generic:
		return "generic"
	case LetteredLegacy:
		return "lettered"
	case RetropadDerived:
		return "retropad"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily is the inverse of Family.String.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return Generic, errors.Errorf("unknown panel family %q", s)
}

// LayoutType is the "N-Button" name used by the front-end for a panel size.
func LayoutType(size int) string {
	return strconv.Itoa(size) + "-Button"
}

// IsPanelSize reports whether n is a supported panel size.
func IsPanelSize(n int) bool {
	switch n {
	case 2, 4, 6, 8:
		return true
	}
	return false
}

// sizeClass rounds a button index up to the smallest covering panel size.
func sizeClass(n int) int {
	switch {
	case n <= 2:
		return 2
	case n <= 4:
		return 4
	case n <= 6:
		return 6
	default:
		return 8
	}
}
