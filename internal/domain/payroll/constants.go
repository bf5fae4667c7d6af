package payroll

const (
	RunStatusDraft      = "DRAFT"
	RunStatusCalculated = "CALCULATED"
	RunStatusPaid       = "PAID"

	ResultStatusCalculated = "CALCULATED"

	RunTypeRegular = "REGULAR"

	DefaultCurrency = "KRW"
)

// Placeholder pay policy: a flat hourly rate and a flat deduction rate.
// Not a tax-accurate formula.
const (
	HourlyRate    = 30000.0
	DeductionRate = 0.2
)
