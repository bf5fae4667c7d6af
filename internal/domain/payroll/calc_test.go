package payroll

import "testing"

func TestComputePay(t *testing.T) {
	gross, deduction, net := ComputePay(160, 30000, 0.2)
	if gross != 4800000 {
		t.Fatalf("expected gross 4800000, got %v", gross)
	}
	if deduction != 960000 {
		t.Fatalf("expected deduction 960000, got %v", deduction)
	}
	if net != 3840000 {
		t.Fatalf("expected net 3840000, got %v", net)
	}
}

func TestComputePayZeroHours(t *testing.T) {
	gross, deduction, net := ComputePay(0, HourlyRate, DeductionRate)
	if gross != 0 || deduction != 0 || net != 0 {
		t.Fatalf("expected all-zero pay, got %v/%v/%v", gross, deduction, net)
	}
}
