package dto

import "time"

// EmployeeProfile is a validated, defaulted employee profile ready for projection.
type EmployeeProfile struct {
	Name                 string
	DateOfBirth          time.Time
	DateOfJoining        time.Time
	CurrentPayLevel      int
	CurrentBasicSalary   float64
	NPSCorpusTillDate    float64
	ExpectedRateOfReturn float64 // percent
	CurrentDA            float64 // percent
	EarlyRetirementDate  *time.Time
}

// Promotion moves the employee to PayLevel on Date. A zero Date sorts last.
type Promotion struct {
	Date     time.Time
	PayLevel int
}

// NPSAssumptions are the contribution scheme rates, all in percent.
type NPSAssumptions struct {
	AnnuityInvestmentPercentage float64
	AnnuityROI                  float64
	RemainingCorpusROI          float64
}

// UPSAssumptions are the unified scheme rates, in percent.
type UPSAssumptions struct {
	ExpectedROI float64
}

// Timeline is the date arithmetic shared by both schemes.
type Timeline struct {
	RetirementDate       time.Time
	EarlyRetirement      bool
	LengthOfService      float64
	YearsUntilRetirement float64
	CurrentAge           int
}

type NPSResults struct {
	CorpusAtRetirement                float64 `json:"corpusAtRetirement"`
	CorpusInTodaysTerms               float64 `json:"corpusInTodaysTerms"`
	CorpusAtAge65                     float64 `json:"corpusAtAge65"`
	CorpusInvestedInAnnuity           float64 `json:"corpusInvestedInAnnuity"`
	CorpusWithdrawn                   float64 `json:"corpusWithdrawn"`
	MonthlyPension                    float64 `json:"monthlyPension"`
	MonthlyReturnsFromWithdrawnCorpus float64 `json:"monthlyReturnsFromWithdrawnCorpus"`
	TotalMonthlyIncome                float64 `json:"totalMonthlyIncome"`
}

type UPSResults struct {
	LumpsumAmount           float64  `json:"lumpsumAmount"`
	LastSalary              float64  `json:"lastSalary"`
	BasicSalaryAtRetirement float64  `json:"basicSalaryAtRetirement"`
	DAAtRetirement          float64  `json:"daAtRetirement"` // percent
	MonthlyPension          float64  `json:"monthlyPension"` // after commutation
	IndividualUPSCorpus     float64  `json:"individualUpsCorpus"`
	BenchmarkUPSCorpus      float64  `json:"benchmarkUpsCorpus"`
	AdditionalAmount        *float64 `json:"additionalAmount"`
	TotalLumpsumAmount      float64  `json:"totalLumpsumAmount"`
	MonthlyReturnOnLumpsum  float64  `json:"monthlyReturnOnLumpsum"`
	TotalMonthlyIncome      float64  `json:"totalMonthlyIncome"`
}

// CalculationResults is the output of the benefit projector.
type CalculationResults struct {
	Timeline                Timeline
	BasicSalaryAtRetirement float64
	NPS                     NPSResults
	UPS                     UPSResults
}
