package uihelpers

import (
	"reflect"
	"testing"
)

func TestContainerWidth(t *testing.T) {
	cases := []struct {
		win, want float32
	}{
		{1000, 976},
		{200, 240},
		{264, 240},
	}
	for _, c := range cases {
		if got := ContainerWidth(c.win, 12, 240); got != c.want {
			t.Fatalf("win %.0f => %.0f want %.0f", c.win, got, c.want)
		}
	}
}

func TestTooltipPosition(t *testing.T) {
	x, y := TooltipPosition(100, 100, 80, 40, 600, 300)
	if x != 110 || y != 110 {
		t.Fatalf("default placement got %.0f,%.0f", x, y)
	}
	x, y = TooltipPosition(560, 280, 80, 40, 600, 300)
	if x != 470 || y != 230 {
		t.Fatalf("flipped placement got %.0f,%.0f", x, y)
	}
	x, y = TooltipPosition(20, 20, 500, 400, 300, 300)
	if x != 0 || y != 0 {
		t.Fatalf("clamped placement got %.0f,%.0f", x, y)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := TruncateMiddle("short", 10); got != "short" {
		t.Fatalf("unchanged got %q", got)
	}
	if got := TruncateMiddle("/very/long/path/to/bars.csv", 11); got != "/very…s.csv" {
		t.Fatalf("middle got %q", got)
	}
	if got := TruncateMiddle("abcdef", 2); got != "ab" {
		t.Fatalf("tiny got %q", got)
	}
}

func TestWindowTitle(t *testing.T) {
	cases := map[[2]string]string{
		{"", ""}:             "Price Chart",
		{"600519", ""}:       "600519",
		{"600519", "Moutai"}: "600519 · Moutai",
		{"AAPL", "AAPL"}:     "AAPL",
	}
	for in, want := range cases {
		if got := WindowTitle(in[0], in[1]); got != want {
			t.Fatalf("WindowTitle(%q,%q) = %q want %q", in[0], in[1], got, want)
		}
	}
}

func TestRecentList(t *testing.T) {
	got := RecentList([]string{"a", "b", "", "c", "d"}, "c", 3)
	if !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("recent got %#v", got)
	}
	if got := RecentList(nil, "", 3); len(got) != 0 {
		t.Fatalf("blank item got %#v", got)
	}
}
