package panel

// ButtonDescriptor is one resolved button of a layout record.
type ButtonDescriptor struct {
	Position   int    // 1-based; Start and Coin follow the game buttons
	Slot       SlotID // where the button is drawn
	SourceSlot SlotID // slot whose mapping it carries; differs from Slot after a collapse
	Controller Controller
	GameButton string
	RetropadID int    // -1 when the button has no retropad id
	Key        string // assignment key the function was read from, empty if none
	Function   string
	Color      string
	At         Point
}

// LayoutRecord is the resolved layout of one title on one panel size.
type LayoutRecord struct {
	Title     string
	Family    Family
	PanelSize int
	Native    int
	Joystick  string // joystick color
	Buttons   []ButtonDescriptor
	Start     ButtonDescriptor
	Coin      ButtonDescriptor
}

// Type returns the front-end layout name, e.g. "6-Button".
func (r LayoutRecord) Type() string {
	return LayoutType(r.PanelSize)
}

// All returns the game buttons followed by Start and Coin.
func (r LayoutRecord) All() []ButtonDescriptor {
	out := make([]ButtonDescriptor, 0, len(r.Buttons)+2)
	out = append(out, r.Buttons...)
	return append(out, r.Start, r.Coin)
}

// Active counts the game buttons carrying a function.
func (r LayoutRecord) Active() int {
	n := 0
	for _, b := range r.Buttons {
		if b.Function != None {
			n++
		}
	}
	return n
}

// Engine resolves layouts. It holds only read-only state and may be shared
// between goroutines.
type Engine struct {
	catalogue *Catalogue
	src       Sources
	aliases   map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalogue replaces the default catalogue.
func WithCatalogue(c *Catalogue) Option {
	return func(e *Engine) { e.catalogue = c }
}

// WithColorAliases replaces DefaultColorAliases. Keys must be lowercase.
func WithColorAliases(aliases map[string]string) Option {
	return func(e *Engine) { e.aliases = aliases }
}

// NewEngine returns an engine reading from src.
func NewEngine(src Sources, opts ...Option) *Engine {
	e := &Engine{
		catalogue: DefaultCatalogue(),
		src:       src,
		aliases:   DefaultColorAliases,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalogue returns the catalogue the engine resolves against.
func (e *Engine) Catalogue() *Catalogue {
	return e.catalogue
}

// Assemble resolves title on a panel of size buttons.
func (e *Engine) Assemble(t Title, size int) (LayoutRecord, error) {
	active, err := e.catalogue.LayoutFor(t.Family, size)
	if err != nil {
		return LayoutRecord{}, err
	}
	nativeCount := e.NativeButtonCount(t)
	native, err := e.catalogue.LayoutFor(t.Family, nativeCount)
	if err != nil {
		return LayoutRecord{}, err
	}

	rec := LayoutRecord{
		Title:     t.Name,
		Family:    t.Family,
		PanelSize: size,
		Native:    nativeCount,
		Joystick:  e.color(t, OptionJoystick, Gray),
	}

	if size == 2 && nativeCount > 2 && t.Family != LetteredLegacy {
		rec.Buttons, err = e.collapse(t, active, native)
		if err != nil {
			return LayoutRecord{}, err
		}
	} else {
		keyed := keyedLayout(t, active, native)
		rec.Buttons = make([]ButtonDescriptor, 0, len(active.Slots))
		for i, slot := range active.Slots {
			d, err := e.describe(t, slot, keyed)
			if err != nil {
				return LayoutRecord{}, err
			}
			d.Position = i + 1
			rec.Buttons = append(rec.Buttons, d)
		}
	}

	if rec.Start, err = e.system(t, SlotStart, size+1); err != nil {
		return LayoutRecord{}, err
	}
	if rec.Coin, err = e.system(t, SlotCoin, size+2); err != nil {
		return LayoutRecord{}, err
	}
	return rec, nil
}

// AssembleAll resolves title on every panel size, smallest first.
func (e *Engine) AssembleAll(t Title) ([]LayoutRecord, error) {
	out := make([]LayoutRecord, 0, len(PanelSizes))
	for _, size := range PanelSizes {
		rec, err := e.Assemble(t, size)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// describe builds the descriptor of slot keyed against active; Position is
// left to the caller.
func (e *Engine) describe(t Title, slot SlotID, active Layout) (ButtonDescriptor, error) {
	at, err := PositionOf(slot)
	if err != nil {
		return ButtonDescriptor{}, err
	}
	d := ButtonDescriptor{Slot: slot, SourceSlot: slot, RetropadID: -1, At: at}

	res := e.resolveIn(t, slot, active)
	d.Function, d.Color = res.Function, res.Color
	if res.HasKey {
		d.Key = res.Key.String()
	}

	switch t.Family {
	case Generic:
		if d.Controller, err = ControllerFor(slot); err != nil {
			return ButtonDescriptor{}, err
		}
		d.GameButton = genericGameButton(d.Controller)
		if t.DeviceBound {
			if d.GameButton, err = DeviceButtonNameFor(slot); err != nil {
				return ButtonDescriptor{}, err
			}
		}
	case LetteredLegacy:
		if d.Controller, err = ControllerFor(slot); err != nil {
			return ButtonDescriptor{}, err
		}
		d.GameButton = "NONE"
		if res.HasKey {
			d.GameButton = res.Key.Letter
		}
	case RetropadDerived:
		id, ok := active.RetropadID(slot)
		if !ok {
			return ButtonDescriptor{}, defectf("slot %q has no retropad id in the %d-button layout", slot, active.Count)
		}
		if d.Controller, err = ControllerForRetropad(id); err != nil {
			return ButtonDescriptor{}, err
		}
		d.RetropadID = id
		d.GameButton = RetropadButtonName(id)
		if rm, ok := e.remap(t, id); ok && rm.Entry != "" {
			d.GameButton = rm.Entry
		}
	default:
		return ButtonDescriptor{}, defectf("unknown family %s", t.Family)
	}
	return d, nil
}

// system builds the Start or Coin descriptor.
func (e *Engine) system(t Title, slot SlotID, position int) (ButtonDescriptor, error) {
	at, err := PositionOf(slot)
	if err != nil {
		return ButtonDescriptor{}, err
	}
	ctrl, err := ControllerFor(slot)
	if err != nil {
		return ButtonDescriptor{}, err
	}
	d := ButtonDescriptor{
		Position:   position,
		Slot:       slot,
		SourceSlot: slot,
		Controller: ctrl,
		RetropadID: -1,
		At:         at,
	}
	id := RetropadStart
	switch slot {
	case SlotStart:
		d.GameButton, d.Function, d.Key = "START", "Start", OptionStart
		d.Color = e.color(t, OptionStart, White)
	case SlotCoin:
		id = RetropadSelect
		d.GameButton, d.Function, d.Key = "COIN", "Coin", OptionCoin
		d.Color = e.color(t, OptionCoin, White)
	default:
		return ButtonDescriptor{}, defectf("slot %q is not a system button", slot)
	}
	if t.DeviceBound {
		if d.GameButton, err = DeviceButtonNameFor(slot); err != nil {
			return ButtonDescriptor{}, err
		}
	}
	if t.Family == RetropadDerived {
		d.RetropadID = id
		if rm, ok := e.remap(t, id); ok {
			if !isNone(rm.Label) {
				d.Function = rm.Label
			}
			if rm.Entry != "" {
				d.GameButton = rm.Entry
			}
		}
	}
	return d, nil
}
