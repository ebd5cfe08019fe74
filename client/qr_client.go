package client

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

const defaultQRSize = 240

// QRClient renders and reads QR codes with gozxing.
type QRClient struct {
	size int
}

func NewQRClient(size int) *QRClient {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QRClient{
		size: size,
	}
}

// Encode renders content as a square PNG QR code.
func (qc *QRClient) Encode(content string) ([]byte, error) {
	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, qc.size, qc.size, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, matrix); err != nil {
		return nil, fmt.Errorf("failed to encode QR image to PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the text of a QR code from PNG bytes.
func (qc *QRClient) Decode(pngData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}
	return result.GetText(), nil
}
