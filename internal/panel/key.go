package panel

import (
	"strconv"
	"strings"
)

// Store options that always exist beside the button entries.
const (
	OptionJoystick = "P1_JOYSTICK"
	OptionStart    = "P1_START"
	OptionCoin     = "P1_COIN"

	buttonPrefix = "P1_BUTTON"
)

// KeyKind tells how a Key addresses a title's assignments.
type KeyKind int

const (
	IndexKey KeyKind = iota
	LetterKey
	DeviceKey
)

// Key is the logical address of one button within a title's configuration.
type Key struct {
	Kind   KeyKind
	Index  int    // IndexKey: 1..8, DeviceKey: retropad id
	Letter string // LetterKey
}

// Option returns the store option the key is read from. Letters are stored by
// ordinal, so C reads P1_BUTTON3. Device keys are not stored in option form.
func (k Key) Option() string {
	switch k.Kind {
	case IndexKey:
		return ButtonOption(k.Index)
	case LetterKey:
		return ButtonOption(LetterOrdinal(k.Letter))
	default:
		return ""
	}
}

func (k Key) String() string {
	switch k.Kind {
	case LetterKey:
		return k.Letter
	case DeviceKey:
		return "retropad:" + strconv.Itoa(k.Index)
	default:
		return ButtonOption(k.Index)
	}
}

// ButtonOption returns the option name of button i, e.g. P1_BUTTON3.
func ButtonOption(i int) string {
	return buttonPrefix + strconv.Itoa(i)
}

// ParseButtonOption extracts n from P1_BUTTONn.
func ParseButtonOption(opt string) (int, bool) {
	if !strings.HasPrefix(opt, buttonPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(opt[len(buttonPrefix):])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// LetterAt returns the letter of 1-based position i (1 → A).
func LetterAt(i int) string {
	if i < 1 || i > 26 {
		return ""
	}
	return string(rune('A' + i - 1))
}

// LetterOrdinal is the inverse of LetterAt; it returns 0 for anything else.
func LetterOrdinal(l string) int {
	if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
		return 0
	}
	return int(l[0]-'A') + 1
}
