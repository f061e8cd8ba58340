//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"fmt"
	"machine"
	"time"
)

// ili9488 drives the PicoCalc panel over SPI1 in 16bpp mode.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	// tx holds one byte-swapped chunk of the frame.
	tx []byte
}

type lcdCommand struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

var ili9488Init = []lcdCommand{
	{cmd: 0xC0, data: []byte{0x17, 0x15}},             // PWCTRL1
	{cmd: 0xC1, data: []byte{0x41}},                   // PWCTRL2
	{cmd: 0xC5, data: []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL
	{cmd: 0x3A, data: []byte{0x55}},                   // COLMOD: 16bpp
	{cmd: 0xB1, data: []byte{0xA0, 0x11}},             // FRMCTRL1
	{cmd: 0xB6, data: []byte{0x02, 0x22, 0x27}},       // DISCTRL: 320 lines
	{cmd: 0x21},                                       // INVON
	{cmd: 0x36, data: []byte{0x40 | 0x04 | 0x08}},     // MADCTL: MX|MH|BGR for the carrier's wiring
	{cmd: 0x11, delay: 120 * time.Millisecond},        // SLPOUT
	{cmd: 0x29},                                       // DISPON
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})
	if err != nil {
		return nil, fmt.Errorf("SPI1: %w", err)
	}

	d := &ili9488{
		spi: *machine.SPI1,
		cs:  machine.GP13,
		dc:  machine.GP14,
		rst: machine.GP15,
		tx:  make([]byte, 4096),
	}
	for _, p := range []machine.Pin{d.cs, d.dc, d.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)

	for _, c := range ili9488Init {
		d.command(c.cmd, c.data...)
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}
	return d, nil
}

func (d *ili9488) command(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) window(x0, y0, x1, y1 uint16) {
	d.command(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)) // CASET
	d.command(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)) // PASET
	d.command(0x2C)                                               // RAMWR
}

// blitRGB565LittleEndian streams a full frame. The framebuffer holds
// little-endian pixels and the panel reads big-endian, so each chunk is
// byte-swapped through tx.
func (d *ili9488) blitRGB565LittleEndian(buf []byte, w, h int) error {
	size := w * h * 2
	if w <= 0 || h <= 0 || len(buf) < size {
		return fmt.Errorf("display: framebuffer %dx%d has %d bytes", w, h, len(buf))
	}

	d.window(0, 0, uint16(w-1), uint16(h-1))
	d.cs.Low()
	d.dc.High()
	defer d.cs.High()

	chunk := d.tx[:len(d.tx)&^1]
	for off := 0; off < size; {
		n := min(len(chunk), size-off)
		src := buf[off : off+n]
		for i := 0; i+1 < n; i += 2 {
			chunk[i], chunk[i+1] = src[i+1], src[i]
		}
		if err := d.spi.Tx(chunk[:n], nil); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		off += n
	}
	return nil
}
