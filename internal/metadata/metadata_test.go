package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestCaptureDate verifies extraction and reformatting of an embedded
// EXIF capture timestamp.
func TestCaptureDate(t *testing.T) {
	t.Parallel()

	t.Run("returns date portion of embedded timestamp", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "photo.jpg")
		writeJPEGWithEXIF(t, path, "2024:03:15 10:20:30")

		got, err := CaptureDate(path)
		if err != nil {
			t.Fatalf("CaptureDate() returned error: %v", err)
		}
		if got != "2024-03-15" {
			t.Errorf("CaptureDate() = %q, want %q", got, "2024-03-15")
		}
	})

	t.Run("image without metadata returns ErrNoCaptureDate", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plain.png")
		writePlainPNG(t, path)

		_, err := CaptureDate(path)
		if !errors.Is(err, ErrNoCaptureDate) {
			t.Errorf("CaptureDate() error = %v, want ErrNoCaptureDate", err)
		}
	})

	t.Run("unparseable timestamp returns ErrNoCaptureDate", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.jpg")
		writeJPEGWithEXIF(t, path, "not a timestamp....")

		_, err := CaptureDate(path)
		if !errors.Is(err, ErrNoCaptureDate) {
			t.Errorf("CaptureDate() error = %v, want ErrNoCaptureDate", err)
		}
	})

	t.Run("missing file wraps the read error", func(t *testing.T) {
		t.Parallel()

		_, err := CaptureDate(filepath.Join(t.TempDir(), "nope.jpg"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if errors.Is(err, ErrNoCaptureDate) {
			t.Error("missing file should not report ErrNoCaptureDate")
		}
	})
}

// TestFormatCaptureDate covers the EXIF timestamp reformatting rules.
func TestFormatCaptureDate(t *testing.T) {
	t.Parallel()

	t.Run("valid timestamp", func(t *testing.T) {
		t.Parallel()

		got, err := formatCaptureDate("2021:12:31 23:59:59")
		if err != nil {
			t.Fatalf("formatCaptureDate() returned error: %v", err)
		}
		if got != "2021-12-31" {
			t.Errorf("formatCaptureDate() = %q, want %q", got, "2021-12-31")
		}
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		t.Parallel()

		_, err := formatCaptureDate("2021-12-31T23:59:59")
		if !errors.Is(err, ErrNoCaptureDate) {
			t.Errorf("formatCaptureDate() error = %v, want ErrNoCaptureDate", err)
		}
	})
}

// writeJPEGWithEXIF writes a small JPEG whose APP1 segment carries a single
// EXIF DateTime tag with the given value. The fixture is built by hand so
// tests do not depend on binary testdata files. The timestamp must be
// exactly 19 bytes, matching the EXIF "YYYY:MM:DD HH:MM:SS" layout.
func writeJPEGWithEXIF(t *testing.T, path, timestamp string) {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	jpegData := buf.Bytes()

	app1 := append([]byte("Exif\x00\x00"), tiffWithDateTime(t, timestamp)...)
	segLen := len(app1) + 2

	out := make([]byte, 0, len(jpegData)+segLen+2)
	out = append(out, 0xFF, 0xD8) // SOI
	out = append(out, 0xFF, 0xE1, byte(segLen>>8), byte(segLen&0xFF))
	out = append(out, app1...)
	out = append(out, jpegData[2:]...) // rest of the encoded image

	if err := os.WriteFile(path, out, 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

// tiffWithDateTime builds a minimal big-endian TIFF block containing one
// IFD0 entry: tag 0x0132 (DateTime), ASCII, NUL-terminated.
func tiffWithDateTime(t *testing.T, timestamp string) []byte {
	t.Helper()

	value := append([]byte(timestamp), 0x00)

	buf := new(bytes.Buffer)
	buf.WriteString("MM")
	writeBE(t, buf, uint16(0x002A))
	writeBE(t, buf, uint32(8)) // offset of IFD0

	writeBE(t, buf, uint16(1))      // one directory entry
	writeBE(t, buf, uint16(0x0132)) // DateTime
	writeBE(t, buf, uint16(2))      // ASCII
	writeBE(t, buf, uint32(len(value)))
	writeBE(t, buf, uint32(26)) // value sits right after the IFD
	writeBE(t, buf, uint32(0))  // no next IFD

	buf.Write(value)
	return buf.Bytes()
}

func writeBE(t *testing.T, buf *bytes.Buffer, v any) {
	t.Helper()
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		t.Fatalf("write fixture bytes: %v", err)
	}
}

// writePlainPNG writes a small PNG with no embedded metadata.
func writePlainPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}
