package service

import (
	"math"
	"slices"
	"time"

	"github.com/Aashish23092/pension-scheme-calculator/dto"
	"github.com/Aashish23092/pension-scheme-calculator/utils"
)

// Scheme rules
const (
	RetirementAge            = dto.RetirementAge
	EmployeeContributionRate = 0.10 // of basic, matched by the employer
	PromotionIncrement       = 1.15 // per promotion above the starting level
	DAAnnualIncrease         = 0.05
	InflationRate            = 0.04
	YearsFrom60To65          = 5

	FullPensionServiceYears = 25.0
	FullPensionFraction     = 0.5
	GratuityDaysPerYear     = 16.5
	MaxGratuityMonths       = 20
	DaysPerMonth            = 30
	CommutationPercentage   = 40.0
	CommutationFactor       = 8.194 // at age 60
	MaxLeaveEncashmentDays  = 300
)

// CalculatePensionBenefits projects both schemes for one employee. It reads no
// clock: now is the reference time for the years remaining until retirement.
func CalculatePensionBenefits(
	profile dto.EmployeeProfile,
	promotions []dto.Promotion,
	npsSettings dto.NPSAssumptions,
	upsSettings dto.UPSAssumptions,
	now time.Time,
) dto.CalculationResults {
	retirementDate := utils.RetirementDate(profile.DateOfBirth, RetirementAge, profile.EarlyRetirementDate)
	normalRetirement := profile.DateOfBirth.AddDate(RetirementAge, 0, 0)

	timeline := dto.Timeline{
		RetirementDate:       retirementDate,
		EarlyRetirement:      retirementDate.Before(normalRetirement),
		LengthOfService:      utils.LengthOfService(profile.DateOfJoining, retirementDate),
		YearsUntilRetirement: utils.YearsBetween(now, retirementDate),
		CurrentAge:           utils.CalculateAge(profile.DateOfBirth, now),
	}

	finalBasic := FinalBasicSalary(profile.CurrentBasicSalary, profile.CurrentPayLevel, promotions)
	daAtRetirement := profile.CurrentDA * math.Pow(1+DAAnnualIncrease, timeline.YearsUntilRetirement)

	return dto.CalculationResults{
		Timeline:                timeline,
		BasicSalaryAtRetirement: finalBasic,
		NPS:                     projectNPS(profile, finalBasic, timeline.YearsUntilRetirement, npsSettings),
		UPS:                     projectUPS(finalBasic, daAtRetirement, timeline.LengthOfService, upsSettings),
	}
}

// SortPromotions returns the promotions ordered by date, undated ones last.
func SortPromotions(promotions []dto.Promotion) []dto.Promotion {
	sorted := slices.Clone(promotions)
	slices.SortStableFunc(sorted, func(a, b dto.Promotion) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		}
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// FinalBasicSalary applies a flat PromotionIncrement for every promotion to a
// level above currentLevel. The destination level's pay matrix entry is not used.
func FinalBasicSalary(currentBasic float64, currentLevel int, promotions []dto.Promotion) float64 {
	basic := currentBasic
	for _, p := range SortPromotions(promotions) {
		if p.PayLevel > currentLevel {
			basic *= PromotionIncrement
		}
	}
	return basic
}

// futureValueFactor is the annuity accumulation factor ((1+r)^t - 1) / r.
// A zero rate uses its limit t, so contributions accumulate linearly.
func futureValueFactor(rate, years float64) float64 {
	if rate == 0 {
		return years
	}
	return (math.Pow(1+rate, years) - 1) / rate
}

func projectNPS(profile dto.EmployeeProfile, finalBasic, years float64, settings dto.NPSAssumptions) dto.NPSResults {
	monthlyContribution := finalBasic * EmployeeContributionRate
	totalMonthlyContribution := monthlyContribution * 2

	roi := profile.ExpectedRateOfReturn / 100
	corpus := profile.NPSCorpusTillDate * math.Pow(1+roi, years)
	corpus += totalMonthlyContribution * 12 * futureValueFactor(roi, years)

	invested := corpus * (settings.AnnuityInvestmentPercentage / 100)
	withdrawn := corpus - invested

	annuityROI := settings.AnnuityROI / 100
	remainingROI := settings.RemainingCorpusROI / 100
	monthlyPension := invested * (annuityROI / 12)
	monthlyReturns := withdrawn * (remainingROI / 12)

	return dto.NPSResults{
		CorpusAtRetirement:                corpus,
		CorpusInTodaysTerms:               corpus / math.Pow(1+InflationRate, years),
		CorpusAtAge65:                     withdrawn * math.Pow(1+remainingROI, YearsFrom60To65),
		CorpusInvestedInAnnuity:           invested,
		CorpusWithdrawn:                   withdrawn,
		MonthlyPension:                    monthlyPension,
		MonthlyReturnsFromWithdrawnCorpus: monthlyReturns,
		TotalMonthlyIncome:                monthlyPension + monthlyReturns,
	}
}

// PensionFraction is the share of final basic paid as UPS pension.
func PensionFraction(serviceYears float64) float64 {
	if serviceYears >= FullPensionServiceYears {
		return FullPensionFraction
	}
	return serviceYears / FullPensionServiceYears * FullPensionFraction
}

func projectUPS(finalBasic, daAtRetirement, serviceYears float64, settings dto.UPSAssumptions) dto.UPSResults {
	pension := finalBasic * PensionFraction(serviceYears)
	dailySalary := finalBasic / DaysPerMonth

	gratuityDays := math.Min(serviceYears*GratuityDaysPerYear, MaxGratuityMonths*DaysPerMonth)
	gratuity := gratuityDays * dailySalary
	commutation := pension * (CommutationPercentage / 100) * CommutationFactor * 12
	leaveEncashment := MaxLeaveEncashmentDays * dailySalary
	totalLumpsum := gratuity + commutation + leaveEncashment

	monthlyPension := pension * (1 - CommutationPercentage/100)
	monthlyReturn := totalLumpsum * (settings.ExpectedROI / 100 / 12)

	individualCorpus := finalBasic * EmployeeContributionRate * 12 * serviceYears

	return dto.UPSResults{
		LumpsumAmount:           gratuity + leaveEncashment,
		LastSalary:              finalBasic + finalBasic*daAtRetirement/100,
		BasicSalaryAtRetirement: finalBasic,
		DAAtRetirement:          daAtRetirement,
		MonthlyPension:          monthlyPension,
		IndividualUPSCorpus:     individualCorpus,
		BenchmarkUPSCorpus:      individualCorpus * 2,
		AdditionalAmount:        nil,
		TotalLumpsumAmount:      totalLumpsum,
		MonthlyReturnOnLumpsum:  monthlyReturn,
		TotalMonthlyIncome:      monthlyPension + monthlyReturn,
	}
}
