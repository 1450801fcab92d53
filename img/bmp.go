package img

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// 24-bit uncompressed bitmap output: little-endian headers, bottom-up rows
// padded to a 4 byte stride, blue/green/red byte order.

type bmpFileHeader struct {
	Type      uint16
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

type bmpInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

const bmpHeaderSize = 14 + 40

// WriteBMP serializes the frame buffer to a 24-bit bitmap file. The file is
// rewritten from the start on every call; a failed write may leave a
// truncated file behind.
func WriteBMP(buf *Buffer, path string) error {
	rowSize := (3*buf.Width() + 3) &^ 3
	imageSize := rowSize * buf.Height()

	fileHeader := bmpFileHeader{
		Type:    0x4d42, // "BM"
		Size:    uint32(bmpHeaderSize + imageSize),
		OffBits: bmpHeaderSize,
	}
	infoHeader := bmpInfoHeader{
		Size:        40,
		Width:       int32(buf.Width()),
		Height:      int32(buf.Height()),
		Planes:      1,
		BitCount:    24,
		Compression: 0,
		SizeImage:   uint32(imageSize),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("img: could not create %s: %s", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err = binary.Write(w, binary.LittleEndian, &fileHeader); err != nil {
		return fmt.Errorf("img: error writing %s: %s", path, err)
	}
	if err = binary.Write(w, binary.LittleEndian, &infoHeader); err != nil {
		return fmt.Errorf("img: error writing %s: %s", path, err)
	}

	row := make([]byte, rowSize)
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.At(x, y)
			row[x*3+0] = quantize(c[2])
			row[x*3+1] = quantize(c[1])
			row[x*3+2] = quantize(c[0])
		}
		if _, err = w.Write(row); err != nil {
			return fmt.Errorf("img: error writing %s: %s", path, err)
		}
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("img: error writing %s: %s", path, err)
	}
	return nil
}

// Map a linear channel value to its byte encoding, clamping to [0, 1] and
// rounding to nearest.
func quantize(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255.0 + 0.5)
}
