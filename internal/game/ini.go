package game

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// iniOptions reads LEDBlinky/LEDSpicer style files: section names are case
// insensitive, keys keep their case, labels are taken verbatim and missing
// files are skipped.
var iniOptions = ini.LoadOptions{
	Loose:                   true,
	Insensitive:             false,
	InsensitiveSections:     true,
	InsensitiveKeys:         false,
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: true,
	AllowShadows:            false,
}

// INIStore is a panel.Store over one or more INI files. Keys absent from a
// section fall back to the DEFAULT section.
type INIStore struct {
	file *ini.File
}

// LoadINI parses files in order; later files override earlier ones.
func LoadINI(files ...string) (*INIStore, error) {
	if len(files) == 0 {
		return &INIStore{file: ini.Empty(iniOptions)}, nil
	}
	srcs := make([]interface{}, len(files))
	for i, f := range files {
		srcs[i] = f
	}
	f, err := ini.LoadSources(iniOptions, srcs[0], srcs[1:]...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", strings.Join(files, ", "))
	}
	return &INIStore{file: f}, nil
}

// ParseINI reads a single in-memory document.
func ParseINI(data []byte) (*INIStore, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, "parse ini")
	}
	return &INIStore{file: f}, nil
}

// Lookup implements panel.Store.
func (s *INIStore) Lookup(section, key string) (string, bool) {
	if sec, err := s.file.GetSection(section); err == nil && sec.HasKey(key) {
		return sec.Key(key).String(), true
	}
	def, err := s.file.GetSection(ini.DefaultSection)
	if err != nil || !def.HasKey(key) {
		return "", false
	}
	return def.Key(key).String(), true
}

// Keys implements panel.Store. Only the section's own keys are listed.
func (s *INIStore) Keys(section string) []string {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	keys := sec.KeyStrings()
	sort.Strings(keys)
	return keys
}

// Sections lists every named section, lowercased, without DEFAULT.
func (s *INIStore) Sections() []string {
	var out []string
	for _, name := range s.file.SectionStrings() {
		if strings.EqualFold(name, ini.DefaultSection) {
			continue
		}
		out = append(out, strings.ToLower(name))
	}
	sort.Strings(out)
	return out
}

// Has reports whether section exists.
func (s *INIStore) Has(section string) bool {
	_, err := s.file.GetSection(section)
	return err == nil
}
