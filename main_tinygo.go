//go:build tinygo && baremetal && picocalc

package main

import (
	"errors"
	"time"

	"fordview/app"
	"fordview/hal"
)

// framePeriod paces the device loop; the panel refresh over SPI bounds the
// useful rate well below the host's.
const framePeriod = time.Second / 20

func main() {
	h := hal.New()
	step := app.New(h)
	for {
		start := time.Now()
		if err := step(); err != nil {
			// There is nowhere to exit to, so Escape and fatal errors restart
			// the viewer from the configured view.
			if !errors.Is(err, app.ErrQuit) {
				h.Logger().WriteLineString("fordview: " + err.Error())
			}
			step = app.New(h)
		}
		if d := framePeriod - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}
