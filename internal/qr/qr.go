// Package qr renders table payloads as QR codes and bundles them into zip
// archives for bulk download.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// ImageExt is the extension of every rendered artifact.
	ImageExt = "png"

	// modulePixels is the edge length of one QR module in the raster.
	modulePixels = 10

	level = qrcode.Medium
)

var ErrEmptyPayload = errors.New("qr payload is empty")

// Matrix returns the module matrix for data, quiet zone included. Equal
// input always yields an equal matrix; true marks a dark module.
func Matrix(data string) ([][]bool, error) {
	code, err := encode(data)
	if err != nil {
		return nil, err
	}
	return code.Bitmap(), nil
}

// PNG rasterizes data with a fixed number of pixels per module.
func PNG(data string) ([]byte, error) {
	code, err := encode(data)
	if err != nil {
		return nil, err
	}
	// A negative size asks for -size pixels per module.
	img, err := code.PNG(-modulePixels)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return img, nil
}

func encode(data string) (*qrcode.QRCode, error) {
	if data == "" {
		return nil, ErrEmptyPayload
	}
	code, err := qrcode.New(data, level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr payload: %w", err)
	}
	return code, nil
}

// Entry is one file in an archive: the payload rendered under Name.
type Entry struct {
	Name    string
	Payload string
}

// Archive renders every entry to PNG and packs them, in order, into a
// deflate-compressed zip held in memory.
func Archive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		img, err := PNG(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", e.Name, err)
		}
		if _, err := w.Write(img); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeFilenameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// TableFilename names the artifact of a table: Table_<number>.png, with
// characters that are not allowed in file names replaced by "_".
func TableFilename(number string) string {
	return "Table_" + unsafeFilenameChars.Replace(number) + "." + ImageExt
}
