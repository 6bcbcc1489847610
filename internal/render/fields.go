package render

import (
	"github.com/xtding233/panelmap/internal/palette"
	"github.com/xtding233/panelmap/internal/panel"
)

// Fields flattens a record into plain maps and slices, the shape accepted by
// both encoding/json and structpb.NewStruct.
func Fields(r panel.LayoutRecord) map[string]interface{} {
	buttons := make([]interface{}, 0, len(r.Buttons)+2)
	for _, b := range r.All() {
		buttons = append(buttons, buttonFields(b))
	}
	return map[string]interface{}{
		"title":         r.Title,
		"family":        r.Family.String(),
		"type":          r.Type(),
		"panelButtons":  r.PanelSize,
		"nativeButtons": r.Native,
		"joystick": map[string]interface{}{
			"color": r.Joystick,
			"rgb":   palette.Hex(r.Joystick),
		},
		"buttons": buttons,
	}
}

func buttonFields(b panel.ButtonDescriptor) map[string]interface{} {
	x := button(b)
	m := map[string]interface{}{
		"id":         x.ID,
		"physical":   x.Physical,
		"sourceSlot": string(b.SourceSlot),
		"controller": x.Controller,
		"gameButton": x.GameButton,
		"function":   x.Function,
		"key":        b.Key,
		"x":          x.X,
		"y":          x.Y,
		"color":      x.Color,
		"rgb":        x.RGB,
	}
	if b.RetropadID >= 0 {
		m["retropadId"] = b.RetropadID
	}
	return m
}

