package application

// Form describes one filing type: its fees and how long adjudication
// typically runs. ProcessingRange is the spread, in months, around the
// average used when estimating a decision date.
type Form struct {
	ID                string
	Name              string
	FilingFee         int
	BiometricsFee     int
	AvgMonths         int
	ProcessingRange   int
	RequiresInterview bool
}

// Forms is the supported filing catalog, keyed by form id.
var Forms = map[string]Form{
	"I-130": {
		ID: "I-130", Name: "Petition for Alien Relative",
		FilingFee: 535, AvgMonths: 12, ProcessingRange: 6,
	},
	"I-485": {
		ID: "I-485", Name: "Application to Adjust Status",
		FilingFee: 1140, BiometricsFee: 85, AvgMonths: 14, ProcessingRange: 8,
		RequiresInterview: true,
	},
	"I-765": {
		ID: "I-765", Name: "Application for Employment Authorization",
		FilingFee: 410, AvgMonths: 5, ProcessingRange: 3,
	},
	"I-131": {
		ID: "I-131", Name: "Application for Travel Document",
		FilingFee: 575, AvgMonths: 6, ProcessingRange: 3,
	},
	"I-129F": {
		ID: "I-129F", Name: "Petition for Alien Fiance(e)",
		FilingFee: 535, AvgMonths: 8, ProcessingRange: 4,
	},
	"I-751": {
		ID: "I-751", Name: "Petition to Remove Conditions on Residence",
		FilingFee: 595, BiometricsFee: 85, AvgMonths: 18, ProcessingRange: 9,
	},
	"I-90": {
		ID: "I-90", Name: "Application to Replace Permanent Resident Card",
		FilingFee: 455, BiometricsFee: 85, AvgMonths: 8, ProcessingRange: 4,
	},
	"N-400": {
		ID: "N-400", Name: "Application for Naturalization",
		FilingFee: 640, BiometricsFee: 85, AvgMonths: 12, ProcessingRange: 6,
		RequiresInterview: true,
	},
	"I-589": {
		ID: "I-589", Name: "Application for Asylum",
		FilingFee: 0, AvgMonths: 48, ProcessingRange: 24,
		RequiresInterview: true,
	},
	"I-129": {
		ID: "I-129", Name: "Petition for a Nonimmigrant Worker",
		FilingFee: 460, AvgMonths: 4, ProcessingRange: 3,
	},
	"I-140": {
		ID: "I-140", Name: "Immigrant Petition for Alien Worker",
		FilingFee: 700, AvgMonths: 8, ProcessingRange: 4,
	},
	"I-539": {
		ID: "I-539", Name: "Application to Extend/Change Nonimmigrant Status",
		FilingFee: 370, BiometricsFee: 85, AvgMonths: 6, ProcessingRange: 4,
	},
	"I-821": {
		ID: "I-821", Name: "Application for Temporary Protected Status",
		FilingFee: 50, BiometricsFee: 85, AvgMonths: 6, ProcessingRange: 4,
	},
	"I-821D": {
		ID: "I-821D", Name: "Consideration of Deferred Action for Childhood Arrivals",
		FilingFee: 495, AvgMonths: 5, ProcessingRange: 3,
	},
	"DS-160": {
		ID: "DS-160", Name: "Online Nonimmigrant Visa Application",
		FilingFee: 185, AvgMonths: 2, ProcessingRange: 2,
		RequiresInterview: true,
	},
	"DS-260": {
		ID: "DS-260", Name: "Immigrant Visa Application",
		FilingFee: 325, AvgMonths: 10, ProcessingRange: 6,
		RequiresInterview: true,
	},
}

// TotalFee is the filing fee plus biometrics for a form, or 0 for unknown
// forms.
func TotalFee(formID string) int {
	f, ok := Forms[formID]
	if !ok {
		return 0
	}
	return f.FilingFee + f.BiometricsFee
}
