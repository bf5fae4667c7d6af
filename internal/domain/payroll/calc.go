package payroll

// ComputePay turns a month of worked hours into gross, deduction and net
// amounts under the flat-rate pay policy.
func ComputePay(workedHours, hourlyRate, deductionRate float64) (gross, deduction, net float64) {
	gross = workedHours * hourlyRate
	deduction = gross * deductionRate
	net = gross - deduction
	return gross, deduction, net
}
