package uihelpers

import (
	"strings"
	"unicode/utf8"
)

// ContainerWidth is the width offered to the expanded chart for a given window width: the window
// minus the outer padding, never below minW.
func ContainerWidth(winW, pad, minW float32) float32 {
	w := winW - 2*pad
	if w < minW {
		w = minW
	}
	return w
}

// TooltipPosition places a box of size bw x bh next to the anchor (x,y), flipping to the other side
// when it would leave the w x h area, and clamping to the top-left corner.
func TooltipPosition(x, y, bw, bh, w, h float32) (float32, float32) {
	const gap = 10
	tx, ty := x+gap, y+gap
	if tx+bw > w {
		tx = x - gap - bw
	}
	if ty+bh > h {
		ty = y - gap - bh
	}
	if tx < 0 {
		tx = 0
	}
	if ty < 0 {
		ty = 0
	}
	return tx, ty
}

// TruncateMiddle shortens s to at most n runes by replacing its middle with an ellipsis.
func TruncateMiddle(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	r := []rune(s)
	keep := n - 1
	head := keep / 2
	tail := keep - head
	return string(r[:head]) + "…" + string(r[len(r)-tail:])
}

// WindowTitle is "<code> · <title>" or just the non-empty part, defaulting to the app name.
func WindowTitle(code, title string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(code), strings.TrimSpace(title)} {
		if p != "" && (len(parts) == 0 || parts[0] != p) {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Price Chart"
	}
	return strings.Join(parts, " · ")
}

// RecentList puts item first in list, drops duplicates and blanks, and caps the result at max.
func RecentList(list []string, item string, max int) []string {
	out := []string{}
	if strings.TrimSpace(item) != "" {
		out = append(out, item)
	}
	for _, v := range list {
		if len(out) >= max {
			break
		}
		if v == item || strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
