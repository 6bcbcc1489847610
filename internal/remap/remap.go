// Package remap reads the per-core controller remap dictionaries: XML files
// that name, per retropad device id, what a button does in a given system.
package remap

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
)

// Document is one <system> remap file.
type Document struct {
	XMLName  xml.Name `xml:"system"`
	Name     string   `xml:"name,attr"`
	Emulator string   `xml:"emulator,attr"`
	Groups   []Group  `xml:"input>group"`
}

// Group is one controller profile of a core.
type Group struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Ports []Port `xml:"port"`
}

type Port struct {
	Type string `xml:"type,attr"`
	Seq  *Seq   `xml:"newseq"`
}

type Seq struct {
	Type        string `xml:"type,attr"`
	Button      string `xml:"button,attr"`
	RetropadID  string `xml:"retropad_id,attr"`
	SystemEntry string `xml:"system_entry,attr"`
	Value       string `xml:",chardata"`
}

// Parse decodes a remap document.
func Parse(r io.Reader) (*Document, error) {
	var d Document
	if err := xml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode remap")
	}
	return &d, nil
}

// ReadFile parses the remap document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return d, nil
}

// Select returns the group called name, or the first group. It is nil when the
// document has no groups.
func (d *Document) Select(name string) *Group {
	if name != "" {
		for i := range d.Groups {
			if d.Groups[i].Name == name {
				return &d.Groups[i]
			}
		}
	}
	if len(d.Groups) == 0 {
		return nil
	}
	return &d.Groups[0]
}

// Entries returns the group's mappings by retropad id. Ports without an id
// are skipped; the first port wins for a repeated id.
func (g *Group) Entries() map[int]panel.Remap {
	out := make(map[int]panel.Remap)
	if g == nil {
		return out
	}
	for _, p := range g.Ports {
		if p.Seq == nil || p.Seq.RetropadID == "" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(p.Seq.RetropadID))
		if err != nil {
			continue
		}
		if _, dup := out[id]; dup {
			continue
		}
		out[id] = panel.Remap{
			Label: strings.TrimSpace(p.Seq.Value),
			Entry: strings.TrimSpace(p.Seq.SystemEntry),
		}
	}
	return out
}

// Index locates remap files: <Dir>/<core>.xml, trying a system's cores in order.
type Index struct {
	Dir       string
	Emulators map[string][]string // system → cores
	Groups    map[string]string   // system → preferred group
}

// Find returns the first existing remap file for system.
func (ix Index) Find(system string) (string, bool) {
	if ix.Dir == "" {
		return "", false
	}
	for _, core := range ix.Emulators[strings.ToLower(system)] {
		p := filepath.Join(ix.Dir, core+".xml")
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load builds the remap table of systems. Systems without a remap file get no
// entries; a file that cannot be parsed is an error.
func (ix Index) Load(systems []string, logger *zap.SugaredLogger) (panel.RemapTable, error) {
	logger = logging.OrNop(logger)
	table := make(panel.RemapTable, len(systems))
	docs := make(map[string]*Document)

	for _, sys := range systems {
		key := strings.ToLower(sys)
		path, ok := ix.Find(key)
		if !ok {
			logger.Debugw("no remap file", "system", key)
			continue
		}
		doc, cached := docs[path]
		if !cached {
			var err error
			if doc, err = ReadFile(path); err != nil {
				return nil, err
			}
			docs[path] = doc
		}
		grp := doc.Select(ix.Groups[key])
		if grp == nil {
			logger.Debugw("remap file has no groups", "system", key, "file", path)
			continue
		}
		table[key] = grp.Entries()
		logger.Debugw("remap loaded", "system", key, "file", path, "group", grp.Name, "entries", len(table[key]))
	}
	return table, nil
}
