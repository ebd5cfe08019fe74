package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Aashish23092/pension-scheme-calculator/config"
	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/utils"
)

const noteCorpusAt65 = "Corpus at age 65 assumes 5 years of growth after retirement, even when retiring before 60."
const noteZeroROI = "Expected rate of return is 0%; future contributions are accumulated without growth."

type PensionService struct {
	payMatrix *config.PayMatrix
	now       func() time.Time
}

// NewPensionService creates a PensionService. now supplies the reference time
// of each calculation; nil means time.Now.
func NewPensionService(payMatrix *config.PayMatrix, now func() time.Time) *PensionService {
	if now == nil {
		now = time.Now
	}
	return &PensionService{
		payMatrix: payMatrix,
		now:       now,
	}
}

// Calculate validates the request, applies defaults and runs the projection.
func (s *PensionService) Calculate(req *dto.CalculationRequest) (*dto.CalculationResponse, error) {
	if err := req.Validate(s.payMatrix); err != nil {
		return nil, err
	}

	input := req.Normalized()
	profile, promotions, err := buildProfile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}

	npsSettings := dto.NPSAssumptions{
		AnnuityInvestmentPercentage: *input.NPSSettings.AnnuityInvestmentPercentage,
		AnnuityROI:                  *input.NPSSettings.AnnuityROI,
		RemainingCorpusROI:          *input.NPSSettings.RemainingCorpusROI,
	}
	upsSettings := dto.UPSAssumptions{ExpectedROI: *input.UPSSettings.ExpectedROI}

	now := s.now().UTC()
	results := CalculatePensionBenefits(profile, promotions, npsSettings, upsSettings, now)

	input.Promotions = promotionDetails(SortPromotions(promotions))

	response := &dto.CalculationResponse{
		CalculationID: uuid.New().String(),
		CalculatedAt:  now.Format(time.RFC3339),
		Input:         input,
		Timeline: dto.TimelineResponse{
			RetirementDate:       results.Timeline.RetirementDate.Format(dto.DateLayout),
			EarlyRetirement:      results.Timeline.EarlyRetirement,
			LengthOfService:      results.Timeline.LengthOfService,
			YearsUntilRetirement: results.Timeline.YearsUntilRetirement,
			CurrentAge:           results.Timeline.CurrentAge,
		},
		NPS:     results.NPS,
		UPS:     results.UPS,
		Display: buildDisplay(results, npsSettings),
		Notes:   buildNotes(profile, results),
	}

	log.Printf("Calculation %s: level %d, service %.1f years, retirement %s",
		response.CalculationID, profile.CurrentPayLevel, results.Timeline.LengthOfService, response.Timeline.RetirementDate)

	return response, nil
}

func buildProfile(req dto.CalculationRequest) (dto.EmployeeProfile, []dto.Promotion, error) {
	b := req.BasicDetails

	dob, err := dto.ParseDate(b.DateOfBirth)
	if err != nil {
		return dto.EmployeeProfile{}, nil, err
	}
	doj, err := dto.ParseDate(b.DateOfJoining)
	if err != nil {
		return dto.EmployeeProfile{}, nil, err
	}

	profile := dto.EmployeeProfile{
		Name:                 b.Name,
		DateOfBirth:          dob,
		DateOfJoining:        doj,
		CurrentPayLevel:      b.CurrentPayLevel,
		CurrentBasicSalary:   b.CurrentBasicSalary,
		NPSCorpusTillDate:    *b.NPSCorpusTillDate,
		ExpectedRateOfReturn: *b.ExpectedRateOfReturn,
		CurrentDA:            *b.CurrentDA,
	}
	if b.EarlyRetirementDate != "" {
		early, err := dto.ParseDate(b.EarlyRetirementDate)
		if err != nil {
			return dto.EmployeeProfile{}, nil, err
		}
		profile.EarlyRetirementDate = &early
	}

	promotions := make([]dto.Promotion, 0, len(req.Promotions))
	for _, p := range req.Promotions {
		date, err := dto.ParseDate(p.PromotionDate)
		if err != nil {
			return dto.EmployeeProfile{}, nil, err
		}
		promotions = append(promotions, dto.Promotion{Date: date, PayLevel: p.PayLevelAfterPromotion})
	}

	return profile, promotions, nil
}

func promotionDetails(promotions []dto.Promotion) []dto.PromotionDetails {
	out := make([]dto.PromotionDetails, 0, len(promotions))
	for _, p := range promotions {
		out = append(out, dto.PromotionDetails{
			PromotionDate:          p.Date.Format(dto.DateLayout),
			PayLevelAfterPromotion: p.PayLevel,
		})
	}
	return out
}

func buildDisplay(results dto.CalculationResults, npsSettings dto.NPSAssumptions) dto.DisplayResults {
	nps, ups := results.NPS, results.UPS
	return dto.DisplayResults{
		NPS: dto.NPSDisplay{
			CorpusAtRetirement:                utils.FormatCurrency(nps.CorpusAtRetirement),
			CorpusInTodaysTerms:               utils.FormatCurrency(nps.CorpusInTodaysTerms),
			CorpusAtAge65:                     utils.FormatCurrency(nps.CorpusAtAge65),
			AnnuityInvestmentPercentage:       utils.FormatPercent(npsSettings.AnnuityInvestmentPercentage),
			CorpusInvestedInAnnuity:           utils.FormatCurrency(nps.CorpusInvestedInAnnuity),
			CorpusWithdrawn:                   utils.FormatCurrency(nps.CorpusWithdrawn),
			MonthlyPension:                    utils.FormatCurrency(nps.MonthlyPension),
			MonthlyReturnsFromWithdrawnCorpus: utils.FormatCurrency(nps.MonthlyReturnsFromWithdrawnCorpus),
			TotalMonthlyIncome:                utils.FormatCurrency(nps.TotalMonthlyIncome),
		},
		UPS: dto.UPSDisplay{
			LastSalary:              utils.FormatCurrency(ups.LastSalary),
			BasicSalaryAtRetirement: utils.FormatCurrency(ups.BasicSalaryAtRetirement),
			DAAtRetirement:          utils.FormatPercent(ups.DAAtRetirement),
			MonthlyPension:          utils.FormatCurrency(ups.MonthlyPension),
			LumpsumAmount:           utils.FormatCurrency(ups.LumpsumAmount),
			TotalLumpsumAmount:      utils.FormatCurrency(ups.TotalLumpsumAmount),
			MonthlyReturnOnLumpsum:  utils.FormatCurrency(ups.MonthlyReturnOnLumpsum),
			TotalMonthlyIncome:      utils.FormatCurrency(ups.TotalMonthlyIncome),
		},
	}
}

func buildNotes(profile dto.EmployeeProfile, results dto.CalculationResults) []string {
	notes := []string{}
	if results.Timeline.EarlyRetirement {
		notes = append(notes, noteCorpusAt65)
	}
	if profile.ExpectedRateOfReturn == 0 {
		notes = append(notes, noteZeroROI)
	}
	return notes
}
