package ocr

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const maxDimension = 2048

// Preprocess normalizes an uploaded photo for recognition: bounds the longest
// edge, converts to grayscale and lifts contrast, then re-encodes as JPEG.
// On any decode failure the original bytes and mime type are returned
// untouched so recognition can still be attempted.
func Preprocess(data []byte, mimeType string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, mimeType
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
		}
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}
