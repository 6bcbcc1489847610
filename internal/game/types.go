// types.go
package game

// Manifest is panelmap.yaml: where the sources live and which titles belong to
// which addressing family.
type Manifest struct {
	Version  string          `yaml:"version"`
	Sources  SourceConfig    `yaml:"sources"`
	Lettered *LetteredConfig `yaml:"lettered,omitempty"`
	Systems  *SystemsConfig  `yaml:"systems,omitempty"`
	Colors   *ColorConfig    `yaml:"colors,omitempty"`
	Output   OutputConfig    `yaml:"output"`
	Notes    string          `yaml:"notes,omitempty"`
}

// SourceConfig names the input files, relative to the config directory.
// Later color files override earlier ones key by key.
type SourceConfig struct {
	ArcadeColors  []string `yaml:"arcade_colors"`
	FBNeoColors   []string `yaml:"fbneo_colors"`
	SystemColors  []string `yaml:"system_colors"`
	Controls      string   `yaml:"controls"`
	FBNeoControls string   `yaml:"fbneo_controls"`
	RemapDir      string   `yaml:"remap_dir"`
}

// LetteredConfig lists the titles whose buttons are addressed by letter.
type LetteredConfig struct {
	Section string   `yaml:"section"` // shared functions/colors section
	Titles  []string `yaml:"titles"`
}

type SystemsConfig struct {
	Groups    map[string]string   `yaml:"groups"`    // system → preferred remap group
	Emulators map[string][]string `yaml:"emulators"` // system → cores, most preferred first
}

type ColorConfig struct {
	Aliases map[string]string `yaml:"aliases"` // lowercase name → replacement
}

type OutputConfig struct {
	Arcade  string `yaml:"arcade"`
	FBNeo   string `yaml:"fbneo"`
	Systems string `yaml:"systems"`
}

// Dir returns the output directory of platform.
func (o OutputConfig) Dir(p Platform) string {
	switch p {
	case Arcade:
		return o.Arcade
	case FBNeo:
		return o.FBNeo
	case Systems:
		return o.Systems
	}
	return ""
}
