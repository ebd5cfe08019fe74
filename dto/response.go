package dto

import "errors"

// Custom errors
var (
	ErrInvalidRequest          = errors.New("invalid calculation request")
	ErrMissingField            = errors.New("field is required")
	ErrInvalidDate             = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnknownPayLevel         = errors.New("pay level not present in pay matrix")
	ErrSalaryNotInPayMatrix    = errors.New("basic salary not listed for pay level")
	ErrTooManyPromotions       = errors.New("at most 4 promotions are supported")
	ErrJoiningAfterRetirement  = errors.New("date of joining is after the retirement date")
	ErrRetirementBeforeJoining = errors.New("early retirement date is before the date of joining")
	ErrAnnuityPercentage       = errors.New("annuity investment percentage must be between 40 and 100")
)

// ValidationError ties a validation failure to the offending field.
// It matches both ErrInvalidRequest and the underlying cause with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.Err}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Error codes used in ErrorResponse.Error
const (
	ErrorCodeInvalidRequest    = "INVALID_REQUEST"
	ErrorCodeCalculationFailed = "CALCULATION_FAILED"
	ErrorCodeReportFailed      = "REPORT_FAILED"
	ErrorCodeNotFound          = "NOT_FOUND"
)

// TimelineResponse is the date arithmetic behind a calculation.
type TimelineResponse struct {
	RetirementDate       string  `json:"retirementDate"`
	EarlyRetirement      bool    `json:"earlyRetirement"`
	LengthOfService      float64 `json:"lengthOfService"`
	YearsUntilRetirement float64 `json:"yearsUntilRetirement"`
	CurrentAge           int     `json:"currentAge"`
}

// NPSDisplay mirrors NPSResults as display strings.
type NPSDisplay struct {
	CorpusAtRetirement                string `json:"corpusAtRetirement"`
	CorpusInTodaysTerms               string `json:"corpusInTodaysTerms"`
	CorpusAtAge65                     string `json:"corpusAtAge65"`
	AnnuityInvestmentPercentage       string `json:"annuityInvestmentPercentage"`
	CorpusInvestedInAnnuity           string `json:"corpusInvestedInAnnuity"`
	CorpusWithdrawn                   string `json:"corpusWithdrawn"`
	MonthlyPension                    string `json:"monthlyPension"`
	MonthlyReturnsFromWithdrawnCorpus string `json:"monthlyReturnsFromWithdrawnCorpus"`
	TotalMonthlyIncome                string `json:"totalMonthlyIncome"`
}

// UPSDisplay mirrors UPSResults as display strings.
type UPSDisplay struct {
	LastSalary              string `json:"lastSalary"`
	BasicSalaryAtRetirement string `json:"basicSalaryAtRetirement"`
	DAAtRetirement          string `json:"daAtRetirement"`
	MonthlyPension          string `json:"monthlyPension"`
	LumpsumAmount           string `json:"lumpsumAmount"`
	TotalLumpsumAmount      string `json:"totalLumpsumAmount"`
	MonthlyReturnOnLumpsum  string `json:"monthlyReturnOnLumpsum"`
	TotalMonthlyIncome      string `json:"totalMonthlyIncome"`
}

// DisplayResults holds the formatted figures for both schemes.
type DisplayResults struct {
	NPS NPSDisplay `json:"nps"`
	UPS UPSDisplay `json:"ups"`
}

// CalculationResponse is the final response structure
type CalculationResponse struct {
	CalculationID string             `json:"calculationId"`
	CalculatedAt  string             `json:"calculatedAt"`
	Input         CalculationRequest `json:"input"`
	Timeline      TimelineResponse   `json:"timeline"`
	NPS           NPSResults         `json:"nps"`
	UPS           UPSResults         `json:"ups"`
	Display       DisplayResults     `json:"display"`
	Notes         []string           `json:"notes"`
}

// PayLevelOptions lists the salaries permitted at one pay level.
type PayLevelOptions struct {
	Level    int       `json:"level"`
	Salaries []float64 `json:"salaries"`
}

// PayMatrixResponse is returned by GET /api/v1/pay-matrix
type PayMatrixResponse struct {
	Name   string            `json:"name"`
	Levels []PayLevelOptions `json:"levels"`
}

// NextSalaryResponse is returned by GET /api/v1/pay-matrix/:level/next
type NextSalaryResponse struct {
	Level      int     `json:"level"`
	Salary     float64 `json:"salary"`
	NextSalary float64 `json:"nextSalary"`
}

// PromotionOptionsResponse lists the levels an employee can be promoted to.
type PromotionOptionsResponse struct {
	Level  int   `json:"level"`
	Levels []int `json:"levels"`
}
