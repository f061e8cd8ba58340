package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"fordview/internal/render/fbdraw"
)

// panicked logs a recovered frame panic with its stack, draws it over the
// framebuffer and returns it as an error so the host stops.
func (v *viewer) panicked(r any) error {
	stack := debug.Stack()
	lines := []string{
		"fordview panic:",
		fmt.Sprintf("panic: %v", r),
		fmt.Sprintf("view: center=%.17g width=%g", v.state.Center, v.state.Width),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := v.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	v.drawPanic(lines)
	return fmt.Errorf("panic in frame %d: %v", v.frames, r)
}

func (v *viewer) drawPanic(lines []string) {
	disp := v.h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	c := fbdraw.New(fb)
	c.Clear(fbdraw.White)

	fontHeight := fbdraw.LineHeight()
	fontWidth := fbdraw.TextWidth("0")
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = c.Display()
		return
	}
	maxW, maxH := fb.Width(), fb.Height()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = c.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.Text(0, y, chunk, fbdraw.Black)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = c.Display()
}

// takeRunes splits s after its first n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
