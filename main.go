package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/Aashish23092/pension-scheme-calculator/client"
	"github.com/Aashish23092/pension-scheme-calculator/config"
	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/handler"
	"github.com/Aashish23092/pension-scheme-calculator/service"
)

func main() {
	inputPath := flag.String("input", "", "calculate once from a JSON request file and print the result")
	pdfPath := flag.String("pdf", "", "with -input, also write the PDF report to this path")
	password := flag.String("password", "", "with -pdf, protect the report with this password")
	flag.Parse()

	// Initialize configuration
	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	payScales, err := config.LoadPayScales(cfg.PayMatrixPath)
	if err != nil {
		log.Fatalf("Failed to load pay matrix: %v", err)
	}

	// Initialize clients
	qrClient := client.NewQRClient(0)
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	pensionService := service.NewPensionService(payScales.Current(), nil)
	reportService := service.NewReportService(cfg.ReportTitle, qrClient, pdfProcessor)

	if *inputPath != "" {
		if err := runOnce(pensionService, reportService, *inputPath, *pdfPath, *password); err != nil {
			log.Fatalf("Calculation failed: %v", err)
		}
		return
	}

	// Initialize handler layer
	pensionHandler := handler.NewPensionHandler(pensionService, reportService)
	payMatrixHandler := handler.NewPayMatrixHandler(payScales)

	router := handler.NewRouter(pensionHandler, payMatrixHandler, cfg.MaxRequestBytes)

	// Start server
	log.Printf("Starting Pension Scheme Calculator on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runOnce calculates a single request read from inputPath and prints the
// response to stdout.
func runOnce(pensionService *service.PensionService, reportService *service.ReportService, inputPath, pdfPath, password string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	var req dto.CalculationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	resp, err := pensionService.Calculate(&req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if pdfPath == "" {
		return nil
	}
	doc, err := reportService.Generate(resp, password)
	if err != nil {
		return err
	}
	if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
		return err
	}
	log.Printf("Report written to %s", pdfPath)
	return nil
}
