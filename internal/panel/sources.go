package panel

import "sort"

// Store is a read-only sectioned key/value lookup, such as a parsed INI file.
// Missing sections and keys report ok == false; they are never errors.
type Store interface {
	Lookup(section, key string) (string, bool)
	Keys(section string) []string
}

// Remap is one entry of a controller-name dictionary.
type Remap struct {
	Label string
	Entry string // system-specific button name, optional
}

// Remaps resolves retropad device ids to labels per system.
type Remaps interface {
	Remap(system string, id int) (Remap, bool)
}

// Sources bundles what the engine reads. Nil members behave as empty stores.
type Sources struct {
	Functions Store
	Colors    Store
	Remaps    Remaps
}

// Title is one game or system together with its addressing family. The family is
// attached when the configuration is loaded.
type Title struct {
	Name   string
	Family Family

	// Sections default to Name; lettered titles usually share one color section.
	FunctionSection string
	ColorSection    string
	RemapSystem     string

	// Native pins the panel size the title was authored for. Zero derives it
	// from the configuration.
	Native int

	// DeviceBound titles tie each function to a physical input rather than
	// to a position: a Generic slot keeps its native key on every panel size
	// and its game button is the device input name.
	DeviceBound bool
}

// EffectiveFunctionSection is the section functions are read from.
func (t Title) EffectiveFunctionSection() string {
	if t.FunctionSection != "" {
		return t.FunctionSection
	}
	return t.Name
}

// EffectiveColorSection is the section colors are read from.
func (t Title) EffectiveColorSection() string {
	if t.ColorSection != "" {
		return t.ColorSection
	}
	return t.Name
}

// EffectiveRemapSystem names the title in the remap dictionaries.
func (t Title) EffectiveRemapSystem() string {
	if t.RemapSystem != "" {
		return t.RemapSystem
	}
	return t.Name
}

// MapStore is an in-memory Store: section → key → value.
type MapStore map[string]map[string]string

// Lookup implements Store.
func (m MapStore) Lookup(section, key string) (string, bool) {
	v, ok := m[section][key]
	return v, ok
}

// Keys implements Store. Keys are sorted.
func (m MapStore) Keys(section string) []string {
	sec := m[section]
	keys := make([]string, 0, len(sec))
	for k := range sec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under section/key, creating the section.
func (m MapStore) Set(section, key, value string) {
	if m[section] == nil {
		m[section] = make(map[string]string)
	}
	m[section][key] = value
}

// RemapTable is an in-memory Remaps: system → retropad id → entry.
type RemapTable map[string]map[int]Remap

// Remap implements Remaps.
func (t RemapTable) Remap(system string, id int) (Remap, bool) {
	r, ok := t[system][id]
	return r, ok
}

func lookup(s Store, section, key string) (string, bool) {
	if s == nil || key == "" {
		return "", false
	}
	return s.Lookup(section, key)
}

func keys(s Store, section string) []string {
	if s == nil {
		return nil
	}
	return s.Keys(section)
}
