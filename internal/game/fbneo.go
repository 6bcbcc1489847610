package game

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/panelmap/internal/panel"
)

// fbneoIgnored are mapping entries that never land on a game button.
var fbneoIgnored = map[string]bool{
	"players":  true,
	"coin":     true,
	"start":    true,
	"noplayer": true,
	"service":  true,
}

// FBNeoControls is fbneo.yml: rom → function label → device button name.
type FBNeoControls map[string]map[string]interface{}

// ReadFBNeoControls loads path. A missing file is an empty mapping.
func ReadFBNeoControls(path string) (FBNeoControls, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FBNeoControls{}, nil
		}
		return nil, err
	}
	var c FBNeoControls
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return c, nil
}

// ImportFBNeo converts device-name mappings into device-bound generic titles.
// Each title is pinned to the smallest panel of cat that holds all its mapped
// slots and every button its color section configures; functions are stored
// under the position of their slot in that panel's ordering, which is also how
// the color bank is numbered. cat is normally panel.DeviceCatalogue.
func ImportFBNeo(controls FBNeoControls, colors panel.Store, cat *panel.Catalogue) (panel.MapStore, []panel.Title, error) {
	store := make(panel.MapStore)
	roms := make([]string, 0, len(controls))
	for rom := range controls {
		roms = append(roms, rom)
	}
	sort.Slice(roms, func(i, j int) bool { return strings.ToLower(roms[i]) < strings.ToLower(roms[j]) })

	titles := make([]panel.Title, 0, len(roms))
	for _, rom := range roms {
		name := strings.ToLower(rom)
		assigned := deviceAssignments(controls[rom])

		colorMax := 0
		if colors != nil {
			for _, k := range colors.Keys(name) {
				if n, ok := panel.ParseButtonOption(k); ok {
					colorMax = max(colorMax, n)
				}
			}
		}

		native := 0
		var layout panel.Layout
		for _, size := range panel.PanelSizes {
			if size < colorMax {
				continue
			}
			l, err := cat.LayoutFor(panel.Generic, size)
			if err != nil {
				return nil, nil, err
			}
			if lo.EveryBy(lo.Keys(assigned), func(s panel.SlotID) bool { return l.IndexOf(s) > 0 }) {
				native, layout = size, l
				break
			}
		}
		if native == 0 {
			// more buttons configured than any panel has
			native = panel.PanelSizes[len(panel.PanelSizes)-1]
			var err error
			if layout, err = cat.LayoutFor(panel.Generic, native); err != nil {
				return nil, nil, err
			}
		}

		for i, slot := range layout.Slots {
			if label, ok := assigned[slot]; ok {
				store.Set(name, panel.ButtonOption(i+1), label)
			}
		}
		titles = append(titles, panel.Title{Name: name, Family: panel.Generic, Native: native, DeviceBound: true})
	}
	return store, titles, nil
}

// deviceAssignments maps slots to function labels. When two labels share a
// device button the alphabetically first one wins.
func deviceAssignments(mapping map[string]interface{}) map[panel.SlotID]string {
	labels := lo.Keys(mapping)
	sort.Strings(labels)

	out := make(map[panel.SlotID]string)
	for _, label := range labels {
		if fbneoIgnored[strings.ToLower(label)] {
			continue
		}
		dev, ok := mapping[label].(string)
		if !ok {
			continue
		}
		slot, ok := panel.SlotForDeviceName(dev)
		if !ok || !panel.IsGameSlot(slot) {
			continue
		}
		if _, taken := out[slot]; !taken {
			out[slot] = label
		}
	}
	return out
}
