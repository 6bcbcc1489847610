package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/xtding233/panelmap/internal/palette"
	"github.com/xtding233/panelmap/internal/panel"
)

// ValidateManifest checks semantic constraints of a merged Manifest.
func ValidateManifest(m Manifest) error {
	var errs error
	add := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if m.Version == "" {
		add("version is required")
	}
	if m.Sources.Controls == "" && len(m.Sources.ArcadeColors) == 0 {
		add("sources: controls or arcade_colors is required")
	}

	if m.Lettered != nil {
		if m.Lettered.Section == "" {
			add("lettered.section is required")
		}
		for i, t := range m.Lettered.Titles {
			if strings.TrimSpace(t) == "" {
				add("lettered.titles[%d] is empty", i)
			}
		}
		lower := lo.Map(m.Lettered.Titles, func(s string, _ int) string { return strings.ToLower(s) })
		for _, d := range lo.FindDuplicates(lower) {
			add("lettered.titles: %q listed twice", d)
		}
	}

	if m.Systems != nil {
		for sys, cores := range m.Systems.Emulators {
			if sys == "" {
				add("systems.emulators: empty system name")
			}
			if lo.Contains(cores, "") {
				add("systems.emulators.%s: empty core name", sys)
			}
		}
		for sys, grp := range m.Systems.Groups {
			if grp == "" {
				add("systems.groups.%s: empty group name", sys)
			}
		}
	}

	if m.Colors != nil {
		for from, to := range m.Colors.Aliases {
			if strings.TrimSpace(to) == "" {
				add("colors.aliases.%s: empty replacement", from)
			}
		}
	}

	dirs := make([]string, 0, len(Platforms))
	for _, p := range Platforms {
		d := m.Output.Dir(p)
		if d == "" {
			add("output.%s is required", p)
			continue
		}
		dirs = append(dirs, d)
	}
	for _, d := range lo.FindDuplicates(dirs) {
		add("output: directory %q used by more than one platform", d)
	}

	if errs != nil {
		return errors.Wrap(errs, "config validation failed")
	}
	return nil
}

// ValidateBundle reports what the engine would silently paper over: button keys
// beyond the largest panel, color names nobody can display, and titles that do
// not assemble.
func ValidateBundle(b *Bundle) error {
	var errs error
	eng := b.Engine()

	for _, t := range b.Titles {
		if t.Family != panel.RetropadDerived && b.Sources.Functions != nil {
			for _, k := range b.Sources.Functions.Keys(t.EffectiveFunctionSection()) {
				if n, ok := panel.ParseButtonOption(k); ok && n > 8 {
					errs = multierr.Append(errs, fmt.Errorf("%s: %s is beyond the largest panel", t.Name, k))
				}
			}
		}
		if b.Sources.Colors != nil {
			sec := t.EffectiveColorSection()
			for _, k := range b.Sources.Colors.Keys(sec) {
				if !strings.HasPrefix(k, "P1_") {
					continue
				}
				c, _ := b.Sources.Colors.Lookup(sec, k)
				if err := checkColor(b, t, c); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %s: %w", t.Name, k, err))
				}
			}
		}
		if _, err := eng.AssembleAll(t); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, t.Name))
		}
	}

	if errs != nil {
		return errors.Wrapf(errs, "%s validation failed", b.Platform)
	}
	return nil
}

func checkColor(b *Bundle, t panel.Title, c string) error {
	c = strings.TrimSpace(c)
	if c == "" || strings.EqualFold(c, panel.None) {
		return nil
	}
	if t.Family == panel.RetropadDerived {
		if a, ok := b.Aliases[strings.ToLower(c)]; ok {
			c = a
		}
	}
	if !palette.Known(c) {
		if name, ok := palette.Suggest(c); ok {
			return errors.Errorf("unknown color %q (nearest %s)", c, name)
		}
		return errors.Errorf("unknown color %q", c)
	}
	return nil
}
