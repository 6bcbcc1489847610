package panel

import "github.com/pkg/errors"

// ErrConfigurationDefect marks a missing or inconsistent static table entry.
// It is never downgraded to a default.
var ErrConfigurationDefect = errors.New("configuration defect")

func defectf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfigurationDefect, format, args...)
}

// IsDefect reports whether err was caused by a configuration defect.
func IsDefect(err error) bool {
	return errors.Is(err, ErrConfigurationDefect)
}
