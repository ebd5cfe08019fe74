package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScale knows level 10 with a single salary.
type stubScale struct{}

func (stubScale) HasLevel(level int) bool { return level == 10 }

func (stubScale) HasSalary(level int, salary float64) bool {
	return level == 10 && salary == 56100
}

func validRequest() CalculationRequest {
	return CalculationRequest{
		BasicDetails: BasicDetails{
			Name:               "  Asha Verma ",
			DateOfBirth:        "1990-01-01",
			DateOfJoining:      "2015-01-01",
			CurrentPayLevel:    10,
			CurrentBasicSalary: 56100,
		},
	}
}

func TestValidateAcceptsMinimalRequest(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate(stubScale{}))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CalculationRequest)
		field  string
		cause  error
	}{
		{
			name:   "missing date of birth",
			mutate: func(r *CalculationRequest) { r.BasicDetails.DateOfBirth = "" },
			field:  "basicDetails.dateOfBirth",
			cause:  ErrMissingField,
		},
		{
			name:   "malformed date of joining",
			mutate: func(r *CalculationRequest) { r.BasicDetails.DateOfJoining = "01/01/2015" },
			field:  "basicDetails.dateOfJoining",
			cause:  ErrInvalidDate,
		},
		{
			name:   "malformed early retirement date",
			mutate: func(r *CalculationRequest) { r.BasicDetails.EarlyRetirementDate = "2045-13-01" },
			field:  "basicDetails.earlyRetirementDate",
			cause:  ErrInvalidDate,
		},
		{
			name:   "joining after retirement",
			mutate: func(r *CalculationRequest) { r.BasicDetails.DateOfJoining = "2055-01-01" },
			field:  "basicDetails.dateOfJoining",
			cause:  ErrJoiningAfterRetirement,
		},
		{
			name: "joining after early retirement",
			mutate: func(r *CalculationRequest) {
				r.BasicDetails.DateOfJoining = "2041-01-01"
				r.BasicDetails.EarlyRetirementDate = "2040-01-01"
			},
			field: "basicDetails.earlyRetirementDate",
			cause: ErrRetirementBeforeJoining,
		},
		{
			name:   "early retirement before joining",
			mutate: func(r *CalculationRequest) { r.BasicDetails.EarlyRetirementDate = "2010-01-01" },
			field:  "basicDetails.earlyRetirementDate",
			cause:  ErrRetirementBeforeJoining,
		},
		{
			name:   "unknown pay level",
			mutate: func(r *CalculationRequest) { r.BasicDetails.CurrentPayLevel = 19 },
			field:  "basicDetails.currentPayLevel",
			cause:  ErrUnknownPayLevel,
		},
		{
			name:   "salary not in matrix",
			mutate: func(r *CalculationRequest) { r.BasicDetails.CurrentBasicSalary = 56000 },
			field:  "basicDetails.currentBasicSalary",
			cause:  ErrSalaryNotInPayMatrix,
		},
		{
			name: "five promotions",
			mutate: func(r *CalculationRequest) {
				for i := 0; i < 5; i++ {
					r.Promotions = append(r.Promotions, PromotionDetails{PromotionDate: "2030-04-01", PayLevelAfterPromotion: 11 + i})
				}
			},
			field: "promotions",
			cause: ErrTooManyPromotions,
		},
		{
			name: "malformed promotion date",
			mutate: func(r *CalculationRequest) {
				r.Promotions = []PromotionDetails{{PromotionDate: "soon", PayLevelAfterPromotion: 11}}
			},
			field: "promotions[0].promotionDate",
			cause: ErrInvalidDate,
		},
		{
			name:   "annuity share below 40",
			mutate: func(r *CalculationRequest) { r.NPSSettings.AnnuityInvestmentPercentage = Float(39) },
			field:  "npsSettings.annuityInvestmentPercentage",
			cause:  ErrAnnuityPercentage,
		},
		{
			name:   "annuity share above 100",
			mutate: func(r *CalculationRequest) { r.NPSSettings.AnnuityInvestmentPercentage = Float(101) },
			field:  "npsSettings.annuityInvestmentPercentage",
			cause:  ErrAnnuityPercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate(stubScale{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.ErrorIs(t, err, tt.cause)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateServiceBoundaries(t *testing.T) {
	// Joining on the retirement date gives zero service, which is allowed.
	req := validRequest()
	req.BasicDetails.DateOfJoining = "2050-01-01"
	assert.NoError(t, req.Validate(stubScale{}))

	req = validRequest()
	req.BasicDetails.EarlyRetirementDate = "2015-01-01"
	assert.NoError(t, req.Validate(stubScale{}))
}

func TestValidateCountsOnlyCompletePromotions(t *testing.T) {
	req := validRequest()
	for i := 0; i < MaxPromotions; i++ {
		req.Promotions = append(req.Promotions, PromotionDetails{PromotionDate: "2030-04-01", PayLevelAfterPromotion: 11 + i})
	}
	req.Promotions = append(req.Promotions, PromotionDetails{})

	assert.NoError(t, req.Validate(stubScale{}))
	assert.Len(t, req.Normalized().Promotions, MaxPromotions)
}

func TestValidateAnnuityBounds(t *testing.T) {
	for _, pct := range []float64{40, 70, 100} {
		req := validRequest()
		req.NPSSettings.AnnuityInvestmentPercentage = Float(pct)
		assert.NoError(t, req.Validate(stubScale{}), "pct %v", pct)
	}
}

func TestValidateIgnoresIncompletePromotions(t *testing.T) {
	req := validRequest()
	req.Promotions = []PromotionDetails{
		{PromotionDate: "not-a-date"},
		{PayLevelAfterPromotion: 11},
		{PromotionDate: "2030-04-01", PayLevelAfterPromotion: 11},
	}
	assert.NoError(t, req.Validate(stubScale{}))
}

func TestNormalizedFillsDefaults(t *testing.T) {
	req := validRequest()
	req.NPSSettings.AnnuityROI = Float(7)
	req.Promotions = []PromotionDetails{
		{PromotionDate: "2030-04-01"},
		{PromotionDate: "2030-04-01", PayLevelAfterPromotion: 11},
	}

	out := req.Normalized()

	assert.Equal(t, "Asha Verma", out.BasicDetails.Name)
	assert.Equal(t, DefaultNPSCorpusTillDate, *out.BasicDetails.NPSCorpusTillDate)
	assert.Equal(t, DefaultExpectedRateOfReturn, *out.BasicDetails.ExpectedRateOfReturn)
	assert.Equal(t, DefaultCurrentDA, *out.BasicDetails.CurrentDA)
	assert.Equal(t, DefaultAnnuityInvestmentPercentage, *out.NPSSettings.AnnuityInvestmentPercentage)
	assert.Equal(t, 7.0, *out.NPSSettings.AnnuityROI)
	assert.Equal(t, DefaultRemainingCorpusROI, *out.NPSSettings.RemainingCorpusROI)
	assert.Equal(t, DefaultUPSExpectedROI, *out.UPSSettings.ExpectedROI)
	assert.Equal(t, []PromotionDetails{{PromotionDate: "2030-04-01", PayLevelAfterPromotion: 11}}, out.Promotions)

	// The receiver is left untouched.
	assert.Nil(t, req.BasicDetails.CurrentDA)
	assert.Len(t, req.Promotions, 2)
	*out.NPSSettings.AnnuityROI = 1
	assert.Equal(t, 7.0, *req.NPSSettings.AnnuityROI)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2050-01-01 ")
	require.NoError(t, err)
	assert.Equal(t, 2050, d.Year())

	_, err = ParseDate("2050-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
