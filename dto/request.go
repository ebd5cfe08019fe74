package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aashish23092/pension-scheme-calculator/utils"
)

// DateLayout is the only date format accepted on the wire.
const DateLayout = "2006-01-02"

// Defaults applied when an optional field is absent from the request.
const (
	DefaultNPSCorpusTillDate           = 0.0
	DefaultExpectedRateOfReturn        = 8.5
	DefaultCurrentDA                   = 55.0
	DefaultAnnuityInvestmentPercentage = 40.0
	DefaultAnnuityROI                  = 6.0
	DefaultRemainingCorpusROI          = 9.0
	DefaultUPSExpectedROI              = 9.0
)

// Input bounds.
const (
	RetirementAge               = 60
	MaxPromotions               = 4
	MinAnnuityInvestmentPercent = 40.0
	MaxAnnuityInvestmentPercent = 100.0
)

// PayScale is the pay matrix view needed to validate a request.
type PayScale interface {
	HasLevel(level int) bool
	HasSalary(level int, salary float64) bool
}

// BasicDetails holds the employee profile as submitted.
type BasicDetails struct {
	Name                 string   `json:"name,omitempty"`
	DateOfBirth          string   `json:"dateOfBirth" binding:"required"`
	DateOfJoining        string   `json:"dateOfJoining" binding:"required"`
	CurrentPayLevel      int      `json:"currentPayLevel" binding:"required"`
	CurrentBasicSalary   float64  `json:"currentBasicSalary" binding:"required"`
	NPSCorpusTillDate    *float64 `json:"npsCorpusTillDate,omitempty"`
	ExpectedRateOfReturn *float64 `json:"expectedRateOfReturn,omitempty"`
	CurrentDA            *float64 `json:"currentDA,omitempty"`
	EarlyRetirementDate  string   `json:"earlyRetirementDate,omitempty"`
}

// PromotionDetails is one expected promotion. Entries missing either field are ignored.
type PromotionDetails struct {
	PromotionDate          string `json:"promotionDate,omitempty"`
	PayLevelAfterPromotion int    `json:"payLevelAfterPromotion,omitempty"`
}

// IsComplete reports whether both the date and the level are set.
func (p PromotionDetails) IsComplete() bool {
	return strings.TrimSpace(p.PromotionDate) != "" && p.PayLevelAfterPromotion != 0
}

// NPSSettings are the investor assumptions for the contribution scheme.
type NPSSettings struct {
	AnnuityInvestmentPercentage *float64 `json:"annuityInvestmentPercentage,omitempty"`
	AnnuityROI                  *float64 `json:"annuityRoi,omitempty"`
	RemainingCorpusROI          *float64 `json:"remainingCorpusRoi,omitempty"`
}

// UPSSettings are the investor assumptions for the unified scheme.
type UPSSettings struct {
	ExpectedROI *float64 `json:"expectedRoi,omitempty"`
}

// CalculationRequest is the body of POST /api/v1/pension/calculate
type CalculationRequest struct {
	BasicDetails BasicDetails       `json:"basicDetails"`
	Promotions   []PromotionDetails `json:"promotions"`
	NPSSettings  NPSSettings        `json:"npsSettings"`
	UPSSettings  UPSSettings        `json:"upsSettings"`
}

// ReportRequest is the body of POST /api/v1/pension/report
type ReportRequest struct {
	CalculationRequest
	Password string `json:"password,omitempty"`
}

// Validate checks the request against the pay matrix. Optional fields that are
// absent are not checked; Normalized fills them afterwards.
func (r *CalculationRequest) Validate(scale PayScale) error {
	b := r.BasicDetails

	if strings.TrimSpace(b.DateOfBirth) == "" {
		return &ValidationError{Field: "basicDetails.dateOfBirth", Err: ErrMissingField}
	}
	dob, err := ParseDate(b.DateOfBirth)
	if err != nil {
		return &ValidationError{Field: "basicDetails.dateOfBirth", Err: err}
	}
	if strings.TrimSpace(b.DateOfJoining) == "" {
		return &ValidationError{Field: "basicDetails.dateOfJoining", Err: ErrMissingField}
	}
	doj, err := ParseDate(b.DateOfJoining)
	if err != nil {
		return &ValidationError{Field: "basicDetails.dateOfJoining", Err: err}
	}

	var early *time.Time
	if b.EarlyRetirementDate != "" {
		d, err := ParseDate(b.EarlyRetirementDate)
		if err != nil {
			return &ValidationError{Field: "basicDetails.earlyRetirementDate", Err: err}
		}
		if d.Before(doj) {
			return &ValidationError{
				Field: "basicDetails.earlyRetirementDate",
				Err:   fmt.Errorf("%s is before joining on %s: %w", b.EarlyRetirementDate, b.DateOfJoining, ErrRetirementBeforeJoining),
			}
		}
		early = &d
	}
	if retirement := utils.RetirementDate(dob, RetirementAge, early); doj.After(retirement) {
		return &ValidationError{
			Field: "basicDetails.dateOfJoining",
			Err:   fmt.Errorf("%s is after retirement on %s: %w", b.DateOfJoining, retirement.Format(DateLayout), ErrJoiningAfterRetirement),
		}
	}

	if !scale.HasLevel(b.CurrentPayLevel) {
		return &ValidationError{
			Field: "basicDetails.currentPayLevel",
			Err:   fmt.Errorf("level %d: %w", b.CurrentPayLevel, ErrUnknownPayLevel),
		}
	}
	if !scale.HasSalary(b.CurrentPayLevel, b.CurrentBasicSalary) {
		return &ValidationError{
			Field: "basicDetails.currentBasicSalary",
			Err:   fmt.Errorf("%.0f at level %d: %w", b.CurrentBasicSalary, b.CurrentPayLevel, ErrSalaryNotInPayMatrix),
		}
	}

	complete := 0
	for _, p := range r.Promotions {
		if p.IsComplete() {
			complete++
		}
	}
	if complete > MaxPromotions {
		return &ValidationError{Field: "promotions", Err: ErrTooManyPromotions}
	}
	for i, p := range r.Promotions {
		if !p.IsComplete() {
			continue
		}
		if _, err := ParseDate(p.PromotionDate); err != nil {
			return &ValidationError{Field: fmt.Sprintf("promotions[%d].promotionDate", i), Err: err}
		}
	}

	if pct := r.NPSSettings.AnnuityInvestmentPercentage; pct != nil {
		if *pct < MinAnnuityInvestmentPercent || *pct > MaxAnnuityInvestmentPercent {
			return &ValidationError{Field: "npsSettings.annuityInvestmentPercentage", Err: ErrAnnuityPercentage}
		}
	}

	return nil
}

// Normalized returns a copy with defaults filled in and incomplete promotions dropped.
func (r CalculationRequest) Normalized() CalculationRequest {
	out := r
	out.BasicDetails.Name = strings.TrimSpace(r.BasicDetails.Name)
	out.BasicDetails.NPSCorpusTillDate = valueOr(r.BasicDetails.NPSCorpusTillDate, DefaultNPSCorpusTillDate)
	out.BasicDetails.ExpectedRateOfReturn = valueOr(r.BasicDetails.ExpectedRateOfReturn, DefaultExpectedRateOfReturn)
	out.BasicDetails.CurrentDA = valueOr(r.BasicDetails.CurrentDA, DefaultCurrentDA)

	out.NPSSettings = NPSSettings{
		AnnuityInvestmentPercentage: valueOr(r.NPSSettings.AnnuityInvestmentPercentage, DefaultAnnuityInvestmentPercentage),
		AnnuityROI:                  valueOr(r.NPSSettings.AnnuityROI, DefaultAnnuityROI),
		RemainingCorpusROI:          valueOr(r.NPSSettings.RemainingCorpusROI, DefaultRemainingCorpusROI),
	}
	out.UPSSettings = UPSSettings{
		ExpectedROI: valueOr(r.UPSSettings.ExpectedROI, DefaultUPSExpectedROI),
	}

	out.Promotions = make([]PromotionDetails, 0, len(r.Promotions))
	for _, p := range r.Promotions {
		if p.IsComplete() {
			out.Promotions = append(out.Promotions, p)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
	}
	return t, nil
}

// Float returns a pointer to v; handy for building requests in code.
func Float(v float64) *float64 {
	return &v
}

func valueOr(p *float64, def float64) *float64 {
	if p != nil {
		v := *p
		return &v
	}
	return Float(def)
}
