// resolve.go
package game

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/xtding233/panelmap/internal/panel"
)

// Platform selects a set of sources and an output tree.
type Platform string

const (
	Arcade  Platform = "arcade"  // LEDBlinky controls and colors, lettered legacy titles
	FBNeo   Platform = "fbneo"   // device-name mappings
	Systems Platform = "systems" // console systems through retropad remaps
)

var Platforms = []Platform{Arcade, FBNeo, Systems}

// ParsePlatform is case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", errors.Errorf("unknown platform %q (want arcade, fbneo or systems)", s)
}

// Bundle is everything needed to assemble the titles of one platform.
type Bundle struct {
	Platform Platform
	// System is the front-end system every title belongs to; empty means each
	// title is a system of its own.
	System  string
	Titles  []panel.Title
	Sources panel.Sources
	Aliases map[string]string
	// Catalogue overrides panel.DefaultCatalogue when set.
	Catalogue *panel.Catalogue

	index map[string]int
}

// NewBundle indexes titles by name. Color aliases start as
// panel.DefaultColorAliases.
func NewBundle(p Platform, system string, titles []panel.Title, src panel.Sources) *Bundle {
	b := &Bundle{
		Platform: p,
		System:   system,
		Titles:   titles,
		Sources:  src,
		Aliases:  panel.DefaultColorAliases,
		index:    make(map[string]int, len(titles)),
	}
	for i, t := range titles {
		b.index[strings.ToLower(t.Name)] = i
	}
	return b
}

func newBundle(p Platform, system string, titles []panel.Title, src panel.Sources, m Manifest) *Bundle {
	b := NewBundle(p, system, titles, src)
	if m.Colors != nil && m.Colors.Aliases != nil {
		b.Aliases = make(map[string]string, len(m.Colors.Aliases))
		for k, v := range m.Colors.Aliases {
			b.Aliases[strings.ToLower(k)] = v
		}
	}
	return b
}

// Find looks a title up by name, case-insensitively.
func (b *Bundle) Find(name string) (panel.Title, bool) {
	i, ok := b.index[strings.ToLower(name)]
	if !ok {
		return panel.Title{}, false
	}
	return b.Titles[i], true
}

// SystemFor returns the front-end system t is written under.
func (b *Bundle) SystemFor(t panel.Title) string {
	if b.System != "" {
		return b.System
	}
	return t.Name
}

// Engine returns an engine over the bundle's sources.
func (b *Bundle) Engine() *panel.Engine {
	opts := []panel.Option{panel.WithColorAliases(b.Aliases)}
	if b.Catalogue != nil {
		opts = append(opts, panel.WithCatalogue(b.Catalogue))
	}
	return panel.NewEngine(b.Sources, opts...)
}

// Resolver hands out per-platform bundles.
type Resolver interface {
	Resolve(p Platform) (*Bundle, error)
}
