package img

import (
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/DanielQ-51/cpu-pathtracer/types"
	"golang.org/x/image/bmp"
)

func writeBMP(t *testing.T, buf *Buffer) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := WriteBMP(buf, path); err != nil {
		t.Fatal(err)
	}
	return path
}

// A 1x1 zero image is the 54 byte header pair plus one padded 4 byte row.
func TestWriteBMPEmptyPixel(t *testing.T) {
	buf := NewBuffer(1, 1)
	path := writeBMP(t, buf)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 58 {
		t.Fatalf("expected 58 bytes; got %d", len(data))
	}

	if data[0] != 'B' || data[1] != 'M' {
		t.Fatalf("bad magic: %q", data[0:2])
	}
	if size := binary.LittleEndian.Uint32(data[2:6]); size != 58 {
		t.Fatalf("expected file size field 58; got %d", size)
	}
	if offBits := binary.LittleEndian.Uint32(data[10:14]); offBits != 54 {
		t.Fatalf("expected pixel data offset 54; got %d", offBits)
	}
	if width := binary.LittleEndian.Uint32(data[18:22]); width != 1 {
		t.Fatalf("expected width 1; got %d", width)
	}
	if height := binary.LittleEndian.Uint32(data[22:26]); height != 1 {
		t.Fatalf("expected height 1; got %d", height)
	}
	if bitCount := binary.LittleEndian.Uint16(data[28:30]); bitCount != 24 {
		t.Fatalf("expected 24 bits per pixel; got %d", bitCount)
	}

	for i, b := range data[54:] {
		if b != 0 {
			t.Fatalf("expected zero pixel row; byte %d is %d", i, b)
		}
	}
}

// Rows are padded to a 4 byte stride: 3 pixels take 9 bytes, padded to 12.
func TestWriteBMPRowStride(t *testing.T) {
	buf := NewBuffer(3, 2)
	path := writeBMP(t, buf)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if exp := 54 + 12*2; len(data) != exp {
		t.Fatalf("expected %d bytes; got %d", exp, len(data))
	}
}

// Pixels are stored bottom-up in BGR order; the stdlib-compatible decoder
// must read back what was written.
func TestWriteBMPRoundTrip(t *testing.T) {
	buf := NewBuffer(2, 2)
	buf.Set(0, 0, types.XYZ(1, 0, 0))
	buf.Set(1, 0, types.XYZ(0, 0.5, 0))
	buf.Set(0, 1, types.XYZ(0, 0, 1))
	buf.Set(1, 1, types.XYZ(1, 1, 1))
	path := writeBMP(t, buf)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	// Buffer row 0 is the image's bottom row.
	type spec struct {
		x, y int // buffer coords
		exp  color.RGBA
	}
	specs := []spec{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 128, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
	}

	for idx, s := range specs {
		imgY := buf.Height() - 1 - s.y
		got := color.RGBAModel.Convert(decoded.At(s.x, imgY)).(color.RGBA)
		if got != s.exp {
			t.Fatalf("[spec %d] expected %v at (%d, %d); got %v", idx, s.exp, s.x, imgY, got)
		}
	}
}

// Channel values clamp into [0, 1] before quantization.
func TestWriteBMPClamping(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.Set(0, 0, types.XYZ(300.0, -2.0, 0.5))
	path := writeBMP(t, buf)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// BGR order at the start of the pixel row.
	if b, g, r := data[54], data[55], data[56]; b != 128 || g != 0 || r != 255 {
		t.Fatalf("expected (B G R) = (128 0 255); got (%d %d %d)", b, g, r)
	}
}

func TestWriteBMPBadPath(t *testing.T) {
	buf := NewBuffer(1, 1)
	if err := WriteBMP(buf, filepath.Join(t.TempDir(), "no-such-dir", "out.bmp")); err == nil {
		t.Fatal("expected error for an unwritable path")
	}
}

func TestBufferAccess(t *testing.T) {
	buf := NewBuffer(4, 3)
	if buf.Width() != 4 || buf.Height() != 3 {
		t.Fatalf("unexpected dims %dx%d", buf.Width(), buf.Height())
	}

	c := types.XYZ(0.1, 0.2, 0.3)
	buf.Set(3, 2, c)
	if buf.At(3, 2) != c {
		t.Fatalf("expected %v; got %v", c, buf.At(3, 2))
	}
	if buf.At(0, 0) != (types.Vec3{}) {
		t.Fatal("expected untouched pixels to stay zero")
	}
}
