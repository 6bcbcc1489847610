// Package render serializes layout records for front ends: XML artifacts on
// disk and generic field maps for the HTTP and gRPC surfaces.
package render

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/xtding233/panelmap/internal/palette"
	"github.com/xtding233/panelmap/internal/panel"
)

// Document is one artifact file: a system holding either one game's layouts or,
// for console systems, the layouts directly.
type Document struct {
	XMLName xml.Name `xml:"system"`
	Name    string   `xml:"name,attr"`
	Game    *Game    `xml:"game,omitempty"`
	Layouts *Layouts `xml:"layouts,omitempty"`
}

type Game struct {
	Name    string  `xml:"name,attr"`
	Rom     string  `xml:"rom,attr"`
	Layouts Layouts `xml:"layouts"`
}

type Layouts struct {
	Layout []Layout `xml:"layout"`
}

type Layout struct {
	PanelButtons int      `xml:"panelButtons,attr"`
	Type         string   `xml:"type,attr"`
	Native       int      `xml:"nativeButtons,attr,omitempty"`
	Joystick     Joystick `xml:"joystick"`
	Buttons      []Button `xml:"button"`
}

type Joystick struct {
	Color string `xml:"color,attr"`
	RGB   string `xml:"rgb,attr,omitempty"`
}

type Button struct {
	ID         string `xml:"id,attr"`
	Physical   string `xml:"physical,attr"`
	Controller string `xml:"controller,attr"`
	RetropadID string `xml:"retropad_id,attr,omitempty"`
	GameButton string `xml:"gameButton,attr"`
	Function   string `xml:"function,attr"`
	X          int    `xml:"x,attr"`
	Y          int    `xml:"y,attr"`
	Color      string `xml:"color,attr"`
	RGB        string `xml:"rgb,attr,omitempty"`
}

// GameDocument wraps the records of one game under system. Games are named
// after their rom.
func GameDocument(system, game string, recs []panel.LayoutRecord) Document {
	return Document{
		Name: system,
		Game: &Game{Name: game, Rom: game, Layouts: layouts(recs)},
	}
}

// SystemDocument holds the records of a console system.
func SystemDocument(system string, recs []panel.LayoutRecord) Document {
	l := layouts(recs)
	return Document{Name: system, Layouts: &l}
}

func layouts(recs []panel.LayoutRecord) Layouts {
	out := Layouts{Layout: make([]Layout, 0, len(recs))}
	for _, r := range recs {
		l := Layout{
			PanelButtons: r.PanelSize,
			Type:         r.Type(),
			Native:       r.Native,
			Joystick:     Joystick{Color: r.Joystick, RGB: palette.Hex(r.Joystick)},
		}
		for _, b := range r.All() {
			l.Buttons = append(l.Buttons, button(b))
		}
		out.Layout = append(out.Layout, l)
	}
	return out
}

func button(b panel.ButtonDescriptor) Button {
	out := Button{
		ID:         strconv.Itoa(b.Position),
		Physical:   string(b.Slot),
		Controller: string(b.Controller),
		GameButton: b.GameButton,
		Function:   b.Function,
		X:          b.At.X,
		Y:          b.At.Y,
		Color:      b.Color,
		RGB:        palette.Hex(b.Color),
	}
	if !panel.IsGameSlot(b.Slot) {
		// Start and Coin are numbered after the game buttons
		out.ID = string(b.Slot)
		out.Physical = strconv.Itoa(b.Position)
	}
	if b.RetropadID >= 0 {
		out.RetropadID = strconv.Itoa(b.RetropadID)
	}
	return out
}

// Marshal renders doc as an indented XML file.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
