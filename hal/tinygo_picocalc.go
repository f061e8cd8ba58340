//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
	"time"
)

// PicoCalcSize is the side of the PicoCalc's square panel in pixels.
const PicoCalcSize = 320

type picoCalcHAL struct {
	logger *uartLogger
	fb     *panelFramebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns the PicoCalc HAL (Pico/Pico2 on the PicoCalc carrier).
//
// Logs go to UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. Without a panel the
// viewer still steps and logs, presenting nowhere; without a keyboard it
// receives no key events.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	log := &uartLogger{uart: uart}

	var blit func([]byte, int, int) error
	if lcd, err := initILI9488(); err == nil {
		blit = lcd.blitRGB565LittleEndian
	} else {
		log.WriteLineString("display: " + err.Error())
	}
	fb := newPanelFramebuffer(PicoCalcSize, PicoCalcSize, blit)

	var kbd Keyboard = stubKeyboard{}
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		log.WriteLineString(err.Error())
	}

	return &picoCalcHAL{
		logger: log,
		fb:     fb,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time       { return h.t }

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

// newPicoCalcKeyboard polls the keyboard MCU every 2ms. Events are dropped
// when the viewer falls behind.
func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}
	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return dev, nil
}
