package hal

// Scan codes the PicoCalc keyboard MCU reports for non-printing keys.
// Printing keys arrive as their ASCII code.
const (
	picoCalcKeyTab   byte = 0x09
	picoCalcKeyF1    byte = 0x81
	picoCalcKeyEsc   byte = 0xB1
	picoCalcKeyLeft  byte = 0xB4
	picoCalcKeyUp    byte = 0xB5
	picoCalcKeyDown  byte = 0xB6
	picoCalcKeyRight byte = 0xB7
	picoCalcKeyHome  byte = 0xD2
)

// translatePicoCalcKey maps a keyboard FIFO entry to a key event. Keys the
// viewer does not use are dropped.
func translatePicoCalcKey(code byte, press bool) (KeyEvent, bool) {
	kc := picoCalcKeyCode(code)
	if kc == KeyUnknown {
		return KeyEvent{}, false
	}
	return KeyEvent{Code: kc, Press: press}, true
}

func picoCalcKeyCode(code byte) KeyCode {
	switch code {
	case picoCalcKeyUp:
		return KeyUp
	case picoCalcKeyDown:
		return KeyDown
	case picoCalcKeyLeft:
		return KeyLeft
	case picoCalcKeyRight:
		return KeyRight
	case picoCalcKeyEsc:
		return KeyEscape
	case picoCalcKeyTab:
		return KeyTab
	case picoCalcKeyHome:
		return KeyHome
	case picoCalcKeyF1:
		return KeyF1
	case 'w', 'W':
		return KeyW
	case 'a', 'A':
		return KeyA
	case 's', 'S':
		return KeyS
	case 'd', 'D':
		return KeyD
	case '+', '=':
		return KeyPlus
	case '-', '_':
		return KeyMinus
	default:
		return KeyUnknown
	}
}
