//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdFIFO        = 0x09
)

const (
	picoCalcEventPress   = 0x01
	picoCalcEventHold    = 0x02
	picoCalcEventRelease = 0x03
)

var errNoKeyboard = errors.New("keyboard: I2C unavailable")

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	// I2C1 is the stock wiring; some TinyGo targets only expose I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			})
			if err != nil {
				continue
			}
			k := &i2cKeyboard{i2c: bus, write: [1]byte{picoCalcKbdFIFO}}
			// The keyboard MCU can take a while to answer after power-on.
			for range 50 {
				if k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]) == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
	return nil, errNoKeyboard
}

// readEvent pops one entry from the keyboard FIFO. Hold events are dropped;
// the viewer derives holds from press and release.
func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	switch k.read[0] {
	case picoCalcEventPress:
		return translatePicoCalcKey(k.read[1], true)
	case picoCalcEventRelease:
		return translatePicoCalcKey(k.read[1], false)
	default:
		return KeyEvent{}, false
	}
}
