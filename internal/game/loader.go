package game

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
	"github.com/xtding233/panelmap/internal/remap"
)

//go:embed defaults/panelmap.yaml
var defaultManifest []byte

// ManifestFile is the manifest name inside the config directory.
const ManifestFile = "panelmap.yaml"

// Paths resolves files relative to the config directory.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/panelmap
}

func (p Paths) ManifestPath() string {
	return filepath.Join(p.BaseDir, ManifestFile)
}

// Source resolves name against BaseDir. Absolute names and "" pass through.
func (p Paths) Source(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.BaseDir, name)
}

// Sources resolves names, dropping empty ones.
func (p Paths) Sources(names []string) []string {
	return lo.FilterMap(names, func(n string, _ int) (string, bool) {
		return p.Source(n), n != ""
	})
}

// Loader reads the manifest and the sources it names, and caches one bundle per
// platform.
type Loader struct {
	paths  Paths
	logger *zap.SugaredLogger

	mu       sync.RWMutex
	manifest *Manifest
	cache    map[Platform]*Bundle
}

// NewLoader creates a loader for the given config directory.
func NewLoader(baseDir string, logger *zap.SugaredLogger) *Loader {
	return &Loader{
		paths:  Paths{BaseDir: baseDir},
		logger: logging.OrNop(logger),
		cache:  make(map[Platform]*Bundle),
	}
}

func (l *Loader) Paths() Paths {
	return l.paths
}

// Manifest returns the built-in manifest merged with the config directory's
// panelmap.yaml, if any.
func (l *Loader) Manifest() (Manifest, error) {
	l.mu.RLock()
	if l.manifest != nil {
		m := *l.manifest
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	def, err := DefaultManifest()
	if err != nil {
		return Manifest{}, err
	}
	user, err := readYAML(l.paths.ManifestPath())
	if err != nil {
		return Manifest{}, errors.Wrap(err, "read manifest")
	}
	merged := mergeManifest(def, user)

	l.mu.Lock()
	l.manifest = &merged
	l.mu.Unlock()
	return merged, nil
}

// Resolve implements Resolver.
func (l *Loader) Resolve(p Platform) (*Bundle, error) {
	l.mu.RLock()
	if b, ok := l.cache[p]; ok {
		l.mu.RUnlock()
		return b, nil
	}
	l.mu.RUnlock()

	m, err := l.Manifest()
	if err != nil {
		return nil, err
	}

	var b *Bundle
	switch p {
	case Arcade:
		b, err = l.loadArcade(m)
	case FBNeo:
		b, err = l.loadFBNeo(m)
	case Systems:
		b, err = l.loadSystems(m)
	default:
		return nil, errors.Errorf("unknown platform %q", p)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", p)
	}
	l.logger.Debugw("bundle loaded", "platform", p, "titles", len(b.Titles))

	l.mu.Lock()
	l.cache[p] = b
	l.mu.Unlock()
	return b, nil
}

// Invalidate clears loader's cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manifest = nil
	l.cache = make(map[Platform]*Bundle)
}

// WatchList returns every file and directory the loaded bundles depend on.
func (l *Loader) WatchList() ([]string, error) {
	m, err := l.Manifest()
	if err != nil {
		return nil, err
	}
	s := m.Sources
	files := []string{l.paths.ManifestPath()}
	files = append(files, l.paths.Sources(s.ArcadeColors)...)
	files = append(files, l.paths.Sources(s.FBNeoColors)...)
	files = append(files, l.paths.Sources(s.SystemColors)...)
	files = append(files, l.paths.Sources([]string{s.Controls, s.FBNeoControls, s.RemapDir})...)
	out := lo.Uniq(files)
	sort.Strings(out)
	return out, nil
}

func (l *Loader) loadArcade(m Manifest) (*Bundle, error) {
	colors, err := LoadINI(l.paths.Sources(m.Sources.ArcadeColors)...)
	if err != nil {
		return nil, err
	}
	controls, err := LoadINI(l.paths.Sources([]string{m.Sources.Controls})...)
	if err != nil {
		return nil, err
	}

	var shared string
	var lettered []string
	if m.Lettered != nil {
		shared = strings.ToLower(m.Lettered.Section)
		lettered = lo.Map(m.Lettered.Titles, func(s string, _ int) string { return strings.ToLower(s) })
	}
	isLettered := lo.SliceToMap(lettered, func(s string) (string, bool) { return s, true })

	named := lo.Filter(controls.Sections(), func(s string, _ int) bool { return s != shared })
	names := lo.Uniq(append(named, lettered...))
	sort.Strings(names)

	titles := make([]panel.Title, 0, len(names))
	for _, name := range names {
		t := panel.Title{Name: name, Family: panel.Generic}
		if isLettered[name] {
			t.Family = panel.LetteredLegacy
			t.FunctionSection, t.ColorSection = shared, shared
			if controls.Has(name) {
				t.FunctionSection = name
			}
			if colors.Has(name) {
				t.ColorSection = name
			}
		}
		titles = append(titles, t)
	}

	return newBundle(Arcade, "arcade", titles, panel.Sources{Functions: controls, Colors: colors}, m), nil
}

func (l *Loader) loadFBNeo(m Manifest) (*Bundle, error) {
	colors, err := LoadINI(l.paths.Sources(m.Sources.FBNeoColors)...)
	if err != nil {
		return nil, err
	}
	var controls FBNeoControls
	if m.Sources.FBNeoControls != "" {
		if controls, err = ReadFBNeoControls(l.paths.Source(m.Sources.FBNeoControls)); err != nil {
			return nil, err
		}
	}
	store, titles, err := ImportFBNeo(controls, colors, panel.DeviceCatalogue())
	if err != nil {
		return nil, err
	}
	b := newBundle(FBNeo, "arcade", titles, panel.Sources{Functions: store, Colors: colors}, m)
	b.Catalogue = panel.DeviceCatalogue()
	return b, nil
}

func (l *Loader) loadSystems(m Manifest) (*Bundle, error) {
	colors, err := LoadINI(l.paths.Sources(m.Sources.SystemColors)...)
	if err != nil {
		return nil, err
	}
	names := colors.Sections()

	ix := remap.Index{Dir: l.paths.Source(m.Sources.RemapDir)}
	if m.Systems != nil {
		ix.Emulators, ix.Groups = m.Systems.Emulators, m.Systems.Groups
	}
	table, err := ix.Load(names, l.logger)
	if err != nil {
		return nil, err
	}

	titles := lo.Map(names, func(n string, _ int) panel.Title {
		return panel.Title{Name: n, Family: panel.RetropadDerived}
	})
	// every system is its own front-end system
	return newBundle(Systems, "", titles, panel.Sources{Colors: colors, Remaps: table}, m), nil
}

// DefaultManifest parses the built-in manifest.
func DefaultManifest() (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(defaultManifest, &m); err != nil {
		return Manifest{}, errors.Wrap(err, "parse built-in manifest")
	}
	return m, nil
}

// readYAML loads a manifest file. Missing files return zero cfg, no error.
func readYAML(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, nil
		}
		return Manifest{}, err
	}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, errors.Wrap(err, path)
	}
	return m, nil
}

// mergeManifest performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Lists in 'b' replace those in 'a'; maps are merged key by key.
func mergeManifest(a, b Manifest) Manifest {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// sources
	if b.Sources.ArcadeColors != nil {
		out.Sources.ArcadeColors = append([]string(nil), b.Sources.ArcadeColors...)
	}
	if b.Sources.FBNeoColors != nil {
		out.Sources.FBNeoColors = append([]string(nil), b.Sources.FBNeoColors...)
	}
	if b.Sources.SystemColors != nil {
		out.Sources.SystemColors = append([]string(nil), b.Sources.SystemColors...)
	}
	if b.Sources.Controls != "" {
		out.Sources.Controls = b.Sources.Controls
	}
	if b.Sources.FBNeoControls != "" {
		out.Sources.FBNeoControls = b.Sources.FBNeoControls
	}
	if b.Sources.RemapDir != "" {
		out.Sources.RemapDir = b.Sources.RemapDir
	}

	// lettered
	switch {
	case out.Lettered == nil && b.Lettered != nil:
		c := *b.Lettered
		out.Lettered = &c
	case out.Lettered != nil && b.Lettered != nil:
		c := *out.Lettered
		if b.Lettered.Section != "" {
			c.Section = b.Lettered.Section
		}
		if b.Lettered.Titles != nil {
			c.Titles = append([]string(nil), b.Lettered.Titles...)
		}
		out.Lettered = &c
	}

	// systems
	switch {
	case out.Systems == nil && b.Systems != nil:
		c := *b.Systems
		out.Systems = &c
	case out.Systems != nil && b.Systems != nil:
		out.Systems = &SystemsConfig{
			Groups:    lo.Assign(out.Systems.Groups, b.Systems.Groups),
			Emulators: lo.Assign(out.Systems.Emulators, b.Systems.Emulators),
		}
	}

	// colors
	switch {
	case out.Colors == nil && b.Colors != nil:
		c := *b.Colors
		out.Colors = &c
	case out.Colors != nil && b.Colors != nil:
		out.Colors = &ColorConfig{Aliases: lo.Assign(out.Colors.Aliases, b.Colors.Aliases)}
	}

	// output
	if b.Output.Arcade != "" {
		out.Output.Arcade = b.Output.Arcade
	}
	if b.Output.FBNeo != "" {
		out.Output.FBNeo = b.Output.FBNeo
	}
	if b.Output.Systems != "" {
		out.Output.Systems = b.Output.Systems
	}

	return out
}
