package hover

import (
	"testing"

	"github.com/zyweven/daily-stock-analysis-sub001/src/scale"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

var surf = types.SurfaceConfig{Width: 800, Height: 400, Padding: types.Padding{Top: 40, Right: 30, Bottom: 50, Left: 70}}

func expanded(t *testing.T, closes ...float64) (*scale.Mapping, *series.Series) {
	t.Helper()
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08"}
	pts := make([]types.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = types.PricePoint{Date: dates[i], Close: c, High: c + 1, Low: c - 1}
	}
	s, err := series.Normalize(pts)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	m, err := scale.New(s, types.OverlayValues{}, surf, scale.Config{Vertical: scale.Padded, Horizontal: scale.ByIndex})
	if err != nil {
		t.Fatalf("mapping: %v", err)
	}
	return m, s
}

func TestPointerOnSampleReportsThatSample(t *testing.T) {
	m, s := expanded(t, 10, 12, 8)
	x, y := m.Point(s, 1)
	h := Test(m, s, x, y)
	if h == nil {
		t.Fatalf("expected hover")
	}
	if h.Index != 1 || h.Date != "2024-01-02" || h.Price != 12 {
		t.Fatalf("unexpected hover %+v", h)
	}
	if h.PixelX != x || h.PixelY != y {
		t.Fatalf("anchor must be the sample pixel, got (%v,%v) want (%v,%v)", h.PixelX, h.PixelY, x, y)
	}
}

func TestHoverSnapsToSampleNotPointer(t *testing.T) {
	m, s := expanded(t, 10, 12, 8)
	x1, y1 := m.Point(s, 1)
	h := Test(m, s, x1+20, surf.Padding.Top+1)
	if h == nil || h.Index != 1 || h.PixelX != x1 || h.PixelY != y1 {
		t.Fatalf("expected snap to sample 1, got %+v", h)
	}
}

func TestOutsidePlotYieldsNoHover(t *testing.T) {
	m, s := expanded(t, 10, 12, 8)
	outside := [][2]float64{
		{surf.Padding.Left - 0.5, 200},
		{surf.Width - surf.Padding.Right + 0.5, 200},
		{400, surf.Padding.Top - 0.5},
		{400, surf.Height - surf.Padding.Bottom + 0.5},
		{-5, -5},
	}
	for _, p := range outside {
		if h := Test(m, s, p[0], p[1]); h != nil {
			t.Fatalf("pointer %v must not hover, got %+v", p, h)
		}
	}
}

func TestInsidePlotAlwaysInRange(t *testing.T) {
	m, s := expanded(t, 10, 12, 8, 9, 11, 7)
	for x := surf.Padding.Left + 0.25; x < surf.Width-surf.Padding.Right; x += 3.7 {
		for y := surf.Padding.Top + 0.25; y < surf.Height-surf.Padding.Bottom; y += 41 {
			h := Test(m, s, x, y)
			if h == nil || h.Index < 0 || h.Index >= s.Len() {
				t.Fatalf("pointer (%v,%v) gave %+v", x, y, h)
			}
		}
	}
}

func TestTrackerLifecycle(t *testing.T) {
	m, s := expanded(t, 10, 12, 8)
	var changes []*State
	tr := &Tracker{OnChange: func(h *State) { changes = append(changes, h) }}
	tr.Bind(m, s)
	if len(changes) != 0 {
		t.Fatalf("binding without hover must not fire")
	}
	x, y := m.Point(s, 2)
	if !tr.Move(x, y) || tr.Current() == nil || tr.Current().Index != 2 {
		t.Fatalf("move should hover sample 2, got %+v", tr.Current())
	}
	if tr.Move(x-1, y) {
		t.Fatalf("same sample must not report a change")
	}
	if !tr.Move(0, 0) || tr.Current() != nil {
		t.Fatalf("leaving the plot clears hover")
	}
	tr.Move(x, y)
	if !tr.Leave() || tr.Current() != nil {
		t.Fatalf("leave clears hover")
	}
	tr.Move(x, y)
	tr.Bind(m, s)
	if tr.Current() != nil {
		t.Fatalf("rebinding clears hover")
	}
	if len(changes) != 6 {
		t.Fatalf("expected 6 change notifications, got %d", len(changes))
	}
}

func TestTooltipLines(t *testing.T) {
	m, s := expanded(t, 10, 12)
	x, y := m.Point(s, 0)
	lines := Test(m, s, x, y).Lines(s)
	if len(lines) != 3 || lines[0] != "2024-01-01" || lines[1] != "Close: 10.00" || lines[2] != "High: 11.00  Low: 9.00" {
		t.Fatalf("unexpected tooltip %q", lines)
	}
}
