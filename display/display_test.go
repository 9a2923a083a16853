package display

import (
	"errors"
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type fakeBackend struct {
	flushes  int
	closed   bool
	flushErr error
	last     []byte
}

func (b *fakeBackend) Flush(f *Frame) error {
	b.flushes++
	b.last = append(b.last[:0], f.Bytes()...)
	return b.flushErr
}

func (b *fakeBackend) Close() error {
	b.closed = true
	return nil
}

type fakeDriver struct {
	opened   []*fakeBackend
	failWith error
}

func (d *fakeDriver) Open(kind PanelKind, unit Unit) (Backend, error) {
	if d.failWith != nil {
		return nil, d.failWith
	}
	b := &fakeBackend{}
	d.opened = append(d.opened, b)
	return b, nil
}

func openMono(t *testing.T) (*Context, *Display, *fakeDriver) {
	t.Helper()
	drv := &fakeDriver{}
	ctx := NewContext(drv)
	d, err := ctx.Open(SSD1306I2C, ISU2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ctx, d, drv
}

func TestOpenInitialState(t *testing.T) {
	_, d, _ := openMono(t)
	f := d.Frame()
	if f.Width() != 128 || f.Height() != 64 || !f.Packed() {
		t.Fatalf("frame %dx%d packed=%v", f.Width(), f.Height(), f.Packed())
	}
	for i, b := range f.Bytes() {
		if b != 0xFF {
			t.Fatalf("byte %d = %#x, want cleared 0xFF", i, b)
		}
	}
	if d.Background() != Black {
		t.Fatalf("background %#04x", d.Background())
	}

	ctx := NewContext(&fakeDriver{})
	c, err := ctx.Open(SSD1331SPI, ISU0)
	if err != nil {
		t.Fatalf("Open color: %v", err)
	}
	if c.Frame().Width() != 96 || c.Frame().Packed() || len(c.Frame().Colors()) != 96*64 {
		t.Fatalf("color frame %dx%d", c.Frame().Width(), c.Frame().Height())
	}
}

func TestOpenErrors(t *testing.T) {
	ctx := NewContext(&fakeDriver{})
	if _, err := ctx.Open(PanelKind(9), ISU0); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad kind err=%v", err)
	}
	if _, err := ctx.Open(SSD1306I2C, Unit(6)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad unit err=%v", err)
	}

	for i := 0; i < MaxDisplays; i++ {
		if _, err := ctx.Open(SSD1306I2C, ISU0); err != nil {
			t.Fatalf("Open %d: %v", i, err)
		}
	}
	if _, err := ctx.Open(SSD1306I2C, ISU0); !errors.Is(err, ErrExhausted) {
		t.Fatalf("third open err=%v, want ErrExhausted", err)
	}

	cause := errors.New("no ack")
	failing := NewContext(&fakeDriver{failWith: cause})
	_, err := failing.Open(SSD1306I2C, ISU1)
	if !errors.Is(err, ErrBackendInit) || !errors.Is(err, cause) {
		t.Fatalf("driver failure err=%v", err)
	}
	// the slot is still free
	failing.drv = &fakeDriver{}
	if _, err := failing.Open(SSD1306I2C, ISU1); err != nil {
		t.Fatalf("Open after failure: %v", err)
	}
}

func TestCloseReleasesPrimitivesAndBackend(t *testing.T) {
	ctx, d, drv := openMono(t)
	for i := 0; i < 3; i++ {
		if _, err := d.Add(Point(V(int32(i), 0)), Style{Color: White}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if ctx.Available() != MaxPrimitives-3 {
		t.Fatalf("Available=%d", ctx.Available())
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ctx.Available() != MaxPrimitives {
		t.Fatalf("Available=%d after Close", ctx.Available())
	}
	if !drv.opened[0].closed {
		t.Fatal("backend not closed")
	}
	if err := d.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second Close err=%v", err)
	}
	if _, err := d.Add(Point(V(0, 0)), Style{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Add on closed err=%v", err)
	}
}

func TestSetBackgroundRoundTrip(t *testing.T) {
	_, mono, _ := openMono(t)
	for _, c := range []Color{Black, White} {
		if err := mono.SetBackground(c); err != nil {
			t.Fatalf("SetBackground: %v", err)
		}
		assertFilled(t, mono.Frame(), c)
		if mono.Background() != c {
			t.Fatalf("Background=%#04x", mono.Background())
		}
	}

	ctx := NewContext(&fakeDriver{})
	rgb, err := ctx.Open(SSD1331SPI, ISU1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, c := range []Color{Black, Blue, Green, Red, White, RGB(3, 40, 17)} {
		if err := rgb.SetBackground(c); err != nil {
			t.Fatalf("SetBackground: %v", err)
		}
		assertFilled(t, rgb.Frame(), c)
	}
}

func assertFilled(t *testing.T, f *Frame, want Color) {
	t.Helper()
	var p Vector
	for p.Y = 0; p.Y < f.Height(); p.Y++ {
		for p.X = 0; p.X < f.Width(); p.X++ {
			got, err := f.Pixel(p)
			if err != nil {
				t.Fatalf("Pixel(%v): %v", p, err)
			}
			if got != want {
				t.Fatalf("Pixel(%v)=%#04x, want %#04x", p, got, want)
			}
		}
	}
}

func TestLineTracesBothOctants(t *testing.T) {
	_, d, drv := openMono(t)
	if err := d.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	// lit pixels are cleared bits on the inverted panel
	if err := d.SetBackground(White); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	style := Style{Color: Black}
	if _, err := d.Add(Line(V(0, 0), V(10, 5)), style); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := d.Add(Line(V(10, 0), V(0, 5)), style); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := d.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if drv.opened[0].flushes != 1 {
		t.Fatalf("flushes=%d", drv.opened[0].flushes)
	}

	want := map[Vector]bool{}
	for _, p := range []Vector{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {6, 3}, {7, 3}, {8, 4}, {9, 4}, {10, 5},
		{0, 5}, {1, 5}, {2, 4}, {3, 4}, {4, 3}, {5, 3}, {6, 2}, {7, 2}, {8, 1}, {9, 1}, {10, 0},
	} {
		want[p] = true
	}

	f := d.Frame()
	var p Vector
	for p.Y = 0; p.Y < f.Height(); p.Y++ {
		for p.X = 0; p.X < f.Width(); p.X++ {
			c, _ := f.Pixel(p)
			drawn := c == Black
			if drawn != want[p] {
				t.Fatalf("pixel %v drawn=%v, want %v", p, drawn, want[p])
			}
		}
	}
	if len(drv.opened[0].last) != 1024 {
		t.Fatalf("flushed %d bytes", len(drv.opened[0].last))
	}
}

func TestPrimitivePoolExhaustion(t *testing.T) {
	ctx, d, _ := openMono(t)
	other, err := ctx.Open(SSD1331SPI, ISU3)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ids := make([]PrimitiveID, 0, MaxPrimitives)
	for i := 0; i < MaxPrimitives; i++ {
		target := d
		if i%2 == 1 {
			target = other
		}
		id, err := target.Add(Point(V(int32(i%128), 0)), Style{})
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	if ctx.Available() != 0 {
		t.Fatalf("Available=%d", ctx.Available())
	}

	if _, err := d.Add(Point(V(0, 0)), Style{}); !errors.Is(err, ErrExhausted) {
		t.Fatalf("513th Add err=%v, want ErrExhausted", err)
	}
	if d.Len() != MaxPrimitives/2 || other.Len() != MaxPrimitives/2 {
		t.Fatalf("lens %d/%d", d.Len(), other.Len())
	}
	for i, id := range d.IDs(nil) {
		if id != ids[2*i] {
			t.Fatalf("draw list[%d]=%#x, want %#x", i, id, ids[2*i])
		}
	}

	if err := d.Free(ids[10]); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if _, err := d.Add(Point(V(1, 1)), Style{}); err != nil {
		t.Fatalf("Add after Free: %v", err)
	}
	if _, err := d.Add(Point(V(1, 1)), Style{}); !errors.Is(err, ErrExhausted) {
		t.Fatalf("Add err=%v, want ErrExhausted", err)
	}
}

func TestFreeKeepsChildren(t *testing.T) {
	ctx, d, _ := openMono(t)
	parent, _ := d.Add(Rectangle(V(0, 0), V(9, 9)), Style{})
	a, _ := d.Add(Point(V(1, 1)), Style{})
	b, _ := d.Add(Point(V(2, 2)), Style{})
	if err := ctx.AddChild(parent, a); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := ctx.AddChild(parent, b); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	kids, err := ctx.Children(parent, nil)
	if err != nil || len(kids) != 2 || kids[0] != a || kids[1] != b {
		t.Fatalf("Children=%v err=%v", kids, err)
	}

	if err := d.Free(parent); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if ctx.Available() != MaxPrimitives-2 {
		t.Fatalf("Available=%d, children were freed", ctx.Available())
	}
	for _, id := range []PrimitiveID{a, b} {
		if _, err := d.Primitive(id); err != nil {
			t.Fatalf("child %#x: %v", id, err)
		}
		if _, ok, err := ctx.Parent(id); err != nil || ok {
			t.Fatalf("child %#x still has a parent", id)
		}
	}
	if got := d.IDs(nil); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("draw list %v", got)
	}
}

func TestChildCycleRejected(t *testing.T) {
	ctx, d, _ := openMono(t)
	a, _ := d.Add(Point(V(0, 0)), Style{})
	b, _ := d.Add(Point(V(0, 0)), Style{})
	c, _ := d.Add(Point(V(0, 0)), Style{})
	if err := ctx.AddChild(a, b); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := ctx.AddChild(b, c); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := ctx.AddChild(c, a); !errors.Is(err, ErrInvalid) {
		t.Fatalf("cycle err=%v", err)
	}
	if err := ctx.AddChild(a, a); !errors.Is(err, ErrInvalid) {
		t.Fatalf("self err=%v", err)
	}
	if err := ctx.RemoveChild(a, c); !errors.Is(err, ErrInvalid) {
		t.Fatalf("RemoveChild non-child err=%v", err)
	}
	if err := ctx.RemoveChild(b, c); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if kids, _ := ctx.Children(b, nil); len(kids) != 0 {
		t.Fatalf("Children=%v", kids)
	}
}

func TestStaleHandleRejected(t *testing.T) {
	_, d, _ := openMono(t)
	id, err := d.Add(Point(V(3, 3)), Style{Color: White})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := d.Free(id); err != nil {
		t.Fatalf("Free: %v", err)
	}
	reused, err := d.Add(Point(V(4, 4)), Style{})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if reused == id {
		t.Fatal("reused slot kept the old handle")
	}
	if err := d.Free(id); !errors.Is(err, ErrStale) {
		t.Fatalf("Free stale err=%v", err)
	}
	if _, err := d.Primitive(id); !errors.Is(err, ErrStale) {
		t.Fatalf("Primitive stale err=%v", err)
	}
	if _, err := d.Primitive(0); !errors.Is(err, ErrStale) {
		t.Fatalf("zero handle err=%v", err)
	}
}

func TestPrimitiveOwnedByOtherDisplay(t *testing.T) {
	ctx, d, _ := openMono(t)
	other, _ := ctx.Open(SSD1331SPI, ISU0)
	id, _ := other.Add(Point(V(0, 0)), Style{})
	if err := d.Free(id); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Free err=%v", err)
	}
}

func TestDrawReportsFirstRasterErrorAfterFlush(t *testing.T) {
	_, d, drv := openMono(t)
	d.Add(Point(V(500, 0)), Style{Color: Black})
	d.Add(Point(V(1, 1)), Style{Color: Black})
	err := d.Draw()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Draw err=%v", err)
	}
	if drv.opened[0].flushes != 1 {
		t.Fatal("frame not flushed")
	}
	if c, _ := d.Frame().Pixel(V(1, 1)); c != Black {
		t.Fatal("later primitive skipped")
	}

	flushErr := errors.New("nak")
	drv.opened[0].flushErr = flushErr
	if err := d.Draw(); !errors.Is(err, flushErr) {
		t.Fatalf("Draw err=%v, want flush error", err)
	}
}

func TestDisplayerAdapter(t *testing.T) {
	ctx := NewContext(&fakeDriver{})
	d, err := ctx.Open(SSD1331SPI, ISU0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	d.SetBackground(Black)
	tinyfont.WriteLine(d, Font, 2, 12, "ok", color.RGBA{R: 255, A: 255})
	if len(litPixels(d.Frame())) == 0 {
		t.Fatal("tinyfont drew nothing")
	}
	if err := d.FillRectangle(0, 0, 2, 2, color.RGBA{G: 255, A: 255}); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if c, _ := d.Frame().Pixel(V(1, 1)); c != Green {
		t.Fatalf("pixel=%#04x, want Green", c)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
}

func TestSetScrollRotatesFlushOnly(t *testing.T) {
	_, d, drv := openMono(t)
	d.SetBackground(Black)
	d.SetPixel(3, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	d.SetScroll(-56) // same as 8
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	// column 3 spans bytes 24..31; frame row 0 is flushed as row 56, bit 0 of byte 31
	if got := drv.opened[0].last[31]; got != 0x01 {
		t.Fatalf("flushed byte %#02x, want 0x01", got)
	}
	if c, _ := d.Frame().Pixel(V(3, 0)); c != White {
		t.Fatal("frame left rotated after flush")
	}
}

func TestScrolledFlushDoesNotAllocate(t *testing.T) {
	_, d, _ := openMono(t)
	d.SetScroll(10)
	d.Display()
	if n := testing.AllocsPerRun(10, func() { d.Display() }); n != 0 {
		t.Fatalf("scrolled flush allocates %.0f times", n)
	}
}
