package service

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/go-pdf/fpdf"
	json "github.com/goccy/go-json"

	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/utils"
)

// Page layout in mm (A4 portrait)
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	qrSize       = 32.0
	labelWidth   = 110.0
	rowHeight    = 6.5
)

const qrImageName = "calculation-qr"

// QRGenerator renders text as a PNG QR code.
type QRGenerator interface {
	Encode(content string) ([]byte, error)
}

// ReportPayload is the QR code content: enough to recompute the report.
type ReportPayload struct {
	CalculationID string                 `json:"id"`
	Input         dto.CalculationRequest `json:"input"`
}

type ReportService struct {
	title        string
	qr           QRGenerator
	pdfProcessor PDFProcessor
}

func NewReportService(title string, qr QRGenerator, pdfProcessor PDFProcessor) *ReportService {
	return &ReportService{
		title:        title,
		qr:           qr,
		pdfProcessor: pdfProcessor,
	}
}

// Generate renders the comparison report for a calculation. A non-empty
// password encrypts the document.
func (s *ReportService) Generate(resp *dto.CalculationResponse, password string) ([]byte, error) {
	doc, err := s.render(resp)
	if err != nil {
		return nil, err
	}

	if err := s.pdfProcessor.Validate(doc); err != nil {
		return nil, err
	}

	if password != "" {
		doc, err = s.pdfProcessor.Encrypt(doc, password)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Report for calculation %s rendered (%d bytes, encrypted=%t)", resp.CalculationID, len(doc), password != "")
	return doc, nil
}

// QRPayload returns the JSON carried by the report's QR code.
func QRPayload(resp *dto.CalculationResponse) (string, error) {
	b, err := json.Marshal(ReportPayload{CalculationID: resp.CalculationID, Input: resp.Input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal qr payload: %w", err)
	}
	return string(b), nil
}

func (s *ReportService) render(resp *dto.CalculationResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(s.title, true)
	pdf.SetCreator("pension-scheme-calculator", true)
	if ts, err := time.Parse(time.RFC3339, resp.CalculatedAt); err == nil {
		pdf.SetCreationDate(ts)
		pdf.SetModificationDate(ts)
	}
	pdf.AddPage()

	w := &reportWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	payload, err := QRPayload(resp)
	if err != nil {
		return nil, err
	}
	qrPNG, err := s.qr.Encode(payload)
	if err != nil {
		return nil, err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImageName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, opts, 0, "")

	w.header(s.title, resp)
	pdf.SetY(marginTop + qrSize + 4)

	in := resp.Input
	b := in.BasicDetails

	w.section("Employee")
	if b.Name != "" {
		w.row("Name", b.Name)
	}
	w.row("Date of birth", b.DateOfBirth)
	w.row("Date of joining", b.DateOfJoining)
	w.row("Pay level", fmt.Sprintf("Level %d", b.CurrentPayLevel))
	w.row("Current basic salary", money(b.CurrentBasicSalary))
	w.row("Current DA", utils.FormatPercent(*b.CurrentDA))
	w.row("NPS corpus till date", money(*b.NPSCorpusTillDate))
	w.row("Retirement date", resp.Timeline.RetirementDate)
	w.row("Length of service", fmt.Sprintf("%.1f years", resp.Timeline.LengthOfService))
	w.row("Years until retirement", fmt.Sprintf("%.2f", resp.Timeline.YearsUntilRetirement))
	for i, p := range in.Promotions {
		w.row(fmt.Sprintf("Promotion %d", i+1), fmt.Sprintf("Level %d from %s", p.PayLevelAfterPromotion, p.PromotionDate))
	}

	nps := resp.NPS
	w.section("National Pension System (NPS)")
	w.row("Corpus at retirement", money(nps.CorpusAtRetirement))
	w.row("Corpus in today's terms", money(nps.CorpusInTodaysTerms))
	w.row("Corpus at age 65", money(nps.CorpusAtAge65))
	w.row("Invested in annuity", money(nps.CorpusInvestedInAnnuity))
	w.row("Withdrawn", money(nps.CorpusWithdrawn))
	w.row("Monthly pension", money(nps.MonthlyPension))
	w.row("Monthly returns from withdrawn corpus", money(nps.MonthlyReturnsFromWithdrawnCorpus))
	w.row("Total monthly income", money(nps.TotalMonthlyIncome))

	ups := resp.UPS
	w.section("Unified Pension Scheme (UPS)")
	w.row("Basic salary at retirement", money(ups.BasicSalaryAtRetirement))
	w.row("DA at retirement", utils.FormatPercent(ups.DAAtRetirement))
	w.row("Last drawn salary", money(ups.LastSalary))
	w.row("Monthly pension (after commutation)", money(ups.MonthlyPension))
	w.row("Lumpsum (gratuity + leave encashment)", money(ups.LumpsumAmount))
	w.row("Total lumpsum incl. commutation", money(ups.TotalLumpsumAmount))
	w.row("Monthly return on lumpsum", money(ups.MonthlyReturnOnLumpsum))
	w.row("Total monthly income", money(ups.TotalMonthlyIncome))

	w.section("Assumptions")
	w.row("NPS expected return", utils.FormatPercent(*b.ExpectedRateOfReturn))
	w.row("Corpus invested in annuity", utils.FormatPercent(*in.NPSSettings.AnnuityInvestmentPercentage))
	w.row("Annuity return", utils.FormatPercent(*in.NPSSettings.AnnuityROI))
	w.row("Return on withdrawn corpus", utils.FormatPercent(*in.NPSSettings.RemainingCorpusROI))
	w.row("UPS lumpsum return", utils.FormatPercent(*in.UPSSettings.ExpectedROI))
	w.row("DA increase / inflation", fmt.Sprintf("%.0f%% / %.0f%% a year", DAAnnualIncrease*100, InflationRate*100))

	if len(resp.Notes) > 0 {
		w.section("Notes")
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range resp.Notes {
			pdf.MultiCell(contentWidth, 5, w.tr("- "+note), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type reportWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *reportWriter) header(title string, resp *dto.CalculationResponse) {
	textWidth := contentWidth - qrSize - 4

	w.pdf.SetFont("Helvetica", "B", 16)
	w.pdf.SetTextColor(20, 40, 80)
	w.pdf.CellFormat(textWidth, 10, w.tr(title), "", 1, "L", false, 0, "")

	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.SetTextColor(90, 90, 90)
	w.pdf.CellFormat(textWidth, 6, "NPS vs UPS benefit comparison", "", 1, "L", false, 0, "")
	w.pdf.CellFormat(textWidth, 6, "Calculated at "+resp.CalculatedAt, "", 1, "L", false, 0, "")
	w.pdf.CellFormat(textWidth, 6, "ID "+resp.CalculationID, "", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *reportWriter) section(title string) {
	w.pdf.Ln(3)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.SetFillColor(228, 236, 247)
	w.pdf.CellFormat(contentWidth, 8, w.tr(title), "", 1, "L", true, 0, "")
}

func (w *reportWriter) row(label, value string) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.CellFormat(labelWidth, rowHeight, w.tr(label), "B", 0, "L", false, 0, "")
	w.pdf.CellFormat(contentWidth-labelWidth, rowHeight, w.tr(value), "B", 1, "R", false, 0, "")
}

// money prints "Rs. 12,34,567 (12.35 lakh)"; standard PDF fonts have no rupee glyph.
func money(amount float64) string {
	return fmt.Sprintf("Rs. %s (%s)", utils.FormatIndianNumber(amount), utils.FormatCurrency(amount))
}
