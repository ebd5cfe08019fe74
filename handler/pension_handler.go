package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/service"
)

type PensionHandler struct {
	pensionService *service.PensionService
	reportService  *service.ReportService
}

func NewPensionHandler(pensionService *service.PensionService, reportService *service.ReportService) *PensionHandler {
	return &PensionHandler{
		pensionService: pensionService,
		reportService:  reportService,
	}
}

// Calculate handles the POST /pension/calculate endpoint
func (h *PensionHandler) Calculate(c *gin.Context) {
	log.Println("Received pension calculation request")

	var req dto.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	response, ok := h.calculate(c, &req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, response)
}

// Report handles the POST /pension/report endpoint. The body is a calculation
// request plus an optional password; the response is the PDF itself.
func (h *PensionHandler) Report(c *gin.Context) {
	log.Println("Received pension report request")

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	response, ok := h.calculate(c, &req.CalculationRequest)
	if !ok {
		return
	}

	doc, err := h.reportService.Generate(response, req.Password)
	if err != nil {
		sendError(c, http.StatusInternalServerError, dto.ErrorCodeReportFailed, "Failed to generate report", err)
		return
	}

	filename := fmt.Sprintf("pension-report-%s.pdf", response.CalculationID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *PensionHandler) calculate(c *gin.Context, req *dto.CalculationRequest) (*dto.CalculationResponse, bool) {
	response, err := h.pensionService.Calculate(req)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidRequest) {
			sendError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Invalid calculation request", err)
		} else {
			sendError(c, http.StatusInternalServerError, dto.ErrorCodeCalculationFailed, "Failed to calculate pension", err)
		}
		return nil, false
	}
	return response, true
}
