package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const aesKeyLength = 256

type PDFProcessor interface {
	Validate(pdfData []byte) error
	Encrypt(pdfData []byte, password string) ([]byte, error)
	ExtractText(pdfData []byte) (string, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	// Keep pdfcpu from reading or writing a config dir under $HOME.
	api.DisableConfigDir()
	return &pdfProcessor{}
}

// Validate runs pdfcpu's structural validation over a generated document.
func (p *pdfProcessor) Validate(pdfData []byte) error {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		return fmt.Errorf("invalid pdf: %w", err)
	}
	return nil
}

// Encrypt protects the document with AES-256; password opens and owns it.
func (p *pdfProcessor) Encrypt(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewAESConfiguration(password, password, aesKeyLength)

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to encrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

// ExtractText returns the text of an unencrypted document, one line per text row.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}
