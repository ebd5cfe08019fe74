package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/pension-scheme-calculator/client"
	"github.com/Aashish23092/pension-scheme-calculator/config"
	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/service"
)

const validBody = `{
	"basicDetails": {
		"name": "Asha Verma",
		"dateOfBirth": "1990-01-01",
		"dateOfJoining": "2015-01-01",
		"currentPayLevel": 10,
		"currentBasicSalary": 56100
	}
}`

func newTestRouter(t *testing.T, maxRequestBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scales, err := config.LoadPayScales("")
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }
	pensionService := service.NewPensionService(scales.Current(), now)
	reportService := service.NewReportService("Pension Scheme Calculator", client.NewQRClient(0), service.NewPDFProcessor())

	return NewRouter(
		NewPensionHandler(pensionService, reportService),
		NewPayMatrixHandler(scales),
		maxRequestBytes,
	)
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"Pension Scheme Calculator"}`, w.Body.String())
}

func TestCalculate(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodPost, "/api/v1/pension/calculate", validBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.CalculationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.CalculationID)
	assert.Equal(t, "2050-01-01", resp.Timeline.RetirementDate)
	assert.Equal(t, 35.0, resp.Timeline.LengthOfService)
	assert.InDelta(t, 16830, resp.UPS.MonthlyPension, 1e-6)
	assert.Equal(t, "Asha Verma", resp.Input.BasicDetails.Name)
	assert.Equal(t, dto.DefaultCurrentDA, *resp.Input.BasicDetails.CurrentDA)
	assert.Contains(t, w.Body.String(), `"promotions":[]`)
}

func TestCalculateInvalid(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"basicDetails":`},
		{"missing required fields", `{"basicDetails":{"currentPayLevel":10}}`},
		{"unlisted salary", strings.Replace(validBody, "56100", "56000", 1)},
		{"unknown level", strings.Replace(validBody, `"currentPayLevel": 10`, `"currentPayLevel": 19`, 1)},
		{"annuity share too low", `{
			"basicDetails": {"dateOfBirth":"1990-01-01","dateOfJoining":"2015-01-01","currentPayLevel":10,"currentBasicSalary":56100},
			"npsSettings": {"annuityInvestmentPercentage": 39}
		}`},
		{"bad date", strings.Replace(validBody, "1990-01-01", "01-01-1990", 1)},
		{"joining after retirement", strings.Replace(validBody, "2015-01-01", "2055-01-01", 1)},
		{"early retirement before joining", strings.Replace(validBody,
			`"currentBasicSalary": 56100`, `"currentBasicSalary": 56100, "earlyRetirementDate": "2010-01-01"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/v1/pension/calculate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, dto.ErrorCodeInvalidRequest, resp.Error)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCalculateBodyTooLarge(t *testing.T) {
	router := newTestRouter(t, 64)

	w := do(router, http.MethodPost, "/api/v1/pension/calculate", validBody)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w).Error)
}

func TestReport(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodPost, "/api/v1/pension/report", validBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"pension-report-")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.NotContains(t, w.Body.String(), "/Encrypt")
}

func TestReportWithPassword(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	body := strings.Replace(validBody, `"basicDetails"`, `"password": "s3cret", "basicDetails"`, 1)
	w := do(router, http.MethodPost, "/api/v1/pension/report", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Body.String(), "/Encrypt")
}

func TestReportInvalid(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodPost, "/api/v1/pension/report", strings.Replace(validBody, "56100", "1", 1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w).Error)
}

func TestPayMatrixList(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodGet, "/api/v1/pay-matrix", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PayMatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "7th CPC", resp.Name)
	require.Len(t, resp.Levels, 18)
	assert.Equal(t, 1, resp.Levels[0].Level)
	assert.Equal(t, 18000.0, resp.Levels[0].Salaries[0])

	// No revision is populated, so every year resolves to the current matrix.
	w = do(router, http.MethodGet, "/api/v1/pay-matrix?year=2040", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "7th CPC", resp.Name)

	w = do(router, http.MethodGet, "/api/v1/pay-matrix?year=soon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayMatrixLevel(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodGet, "/api/v1/pay-matrix/10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PayLevelOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Level)
	assert.Equal(t, 56100.0, resp.Salaries[0])

	w = do(router, http.MethodGet, "/api/v1/pay-matrix/19", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, decodeError(t, w).Error)

	w = do(router, http.MethodGet, "/api/v1/pay-matrix/ten", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayMatrixNext(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodGet, "/api/v1/pay-matrix/10/next?salary=56100", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.NextSalaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.NextSalaryResponse{Level: 10, Salary: 56100, NextSalary: 57800}, resp)

	w = do(router, http.MethodGet, "/api/v1/pay-matrix/18/next?salary=250000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/v1/pay-matrix/10/next", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayMatrixPromotions(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	w := do(router, http.MethodGet, "/api/v1/pay-matrix/16/promotions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"level":16,"levels":[17,18]}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/v1/pay-matrix/18/promotions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"level":18,"levels":[]}`, w.Body.String())
}
