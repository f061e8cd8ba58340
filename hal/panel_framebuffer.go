package hal

// panelFramebuffer is a fixed-size RGB565 buffer pushed to a device panel on
// Present. Without a panel Present does nothing, so the viewer keeps running
// and logging with no display attached.
type panelFramebuffer struct {
	w, h int
	buf  []byte
	blit func(buf []byte, w, h int) error
}

func newPanelFramebuffer(w, h int, blit func([]byte, int, int) error) *panelFramebuffer {
	return &panelFramebuffer{w: w, h: h, buf: make([]byte, w*h*2), blit: blit}
}

func (f *panelFramebuffer) Width() int          { return f.w }
func (f *panelFramebuffer) Height() int         { return f.h }
func (f *panelFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *panelFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *panelFramebuffer) Buffer() []byte      { return f.buf }

func (f *panelFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo, hi := byte(pixel), byte(pixel>>8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *panelFramebuffer) Present() error {
	if f.blit == nil {
		return nil
	}
	return f.blit(f.buf, f.w, f.h)
}
