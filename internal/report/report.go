// Package report summarizes a generation run: how many titles were laid out,
// what they were authored for and how full their panels end up.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/xtding233/panelmap/internal/panel"
)

// Stats summarizes a sample of button counts.
type Stats struct {
	N      int
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	Max    int
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	// linear interpolation between closest ranks
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(cp[n-1])
		}
		f := pos - float64(i)
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		N:      n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		Max:    cp[n-1],
	}
}

// Summary is the coverage of one platform.
type Summary struct {
	Platform  string
	Titles    int
	Failed    int
	Collapsed int // titles whose 2-button layout was reduced from a larger one
	Empty     int // titles without a single assigned game button

	ByFamily map[string]int
	ByNative map[int]int
	Active   map[int]Stats // panel size → assigned game buttons per title
}

// Summarize builds the summary of titles, each given as its records for every
// panel size.
func Summarize(platform string, titles [][]panel.LayoutRecord, failed int) Summary {
	s := Summary{
		Platform: platform,
		Titles:   len(titles),
		Failed:   failed,
		ByFamily: make(map[string]int),
		ByNative: make(map[int]int),
		Active:   make(map[int]Stats),
	}
	samples := make(map[int][]int)
	for _, recs := range titles {
		if len(recs) == 0 {
			continue
		}
		s.ByFamily[recs[0].Family.String()]++
		s.ByNative[recs[0].Native]++

		assigned := false
		for _, r := range recs {
			n := r.Active()
			samples[r.PanelSize] = append(samples[r.PanelSize], n)
			if n > 0 {
				assigned = true
			}
			if r.PanelSize == 2 && r.Native > 2 && r.Family != panel.LetteredLegacy {
				s.Collapsed++
			}
		}
		if !assigned {
			s.Empty++
		}
	}
	for size, xs := range samples {
		s.Active[size] = calcStats(xs)
	}
	return s
}

// Table renders the summary for a terminal.
func (s Summary) Table() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s: %d titles, %d failed, %d collapsed, %d empty",
		s.Platform, s.Titles, s.Failed, s.Collapsed, s.Empty))
	t.AppendHeader(table.Row{"Panel", "Native titles", "Mean active", "StdDev", "P50", "P90", "Max"})
	for _, size := range panel.PanelSizes {
		st := s.Active[size]
		t.AppendRow(table.Row{
			panel.LayoutType(size),
			s.ByNative[size],
			fmt.Sprintf("%.2f", st.Mean),
			fmt.Sprintf("%.2f", st.StdDev),
			fmt.Sprintf("%.1f", st.P50),
			fmt.Sprintf("%.1f", st.P90),
			st.Max,
		})
	}

	families := make([]string, 0, len(s.ByFamily))
	for f, n := range s.ByFamily {
		families = append(families, fmt.Sprintf("%s=%d", f, n))
	}
	sort.Strings(families)
	t.AppendFooter(table.Row{"families", strings.Join(families, " ")})
	return t.Render()
}

// LayoutTable renders one record button by button.
func LayoutTable(r panel.LayoutRecord) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (%s, %s, native %d)", r.Title, r.Family, r.Type(), r.Native))
	t.AppendHeader(table.Row{"#", "Slot", "Controller", "Game button", "Function", "Color", "Key", "X", "Y"})
	for _, b := range r.All() {
		slot := string(b.Slot)
		if b.SourceSlot != b.Slot {
			slot = fmt.Sprintf("%s←%s", b.Slot, b.SourceSlot)
		}
		t.AppendRow(table.Row{b.Position, slot, b.Controller, b.GameButton, b.Function, b.Color, b.Key, b.At.X, b.At.Y})
	}
	t.AppendFooter(table.Row{"", "", "joystick", "", "", r.Joystick})
	return t.Render()
}
