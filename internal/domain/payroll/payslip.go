package payroll

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// GeneratePayslipPDF renders one employee's pay result for a calculated run
// into a PDF under storage/payslips and returns the file path. When the
// at-rest encryption key is configured the plaintext file is replaced with
// an encrypted .enc copy.
func (s *Service) GeneratePayslipPDF(ctx context.Context, runID, employeeID string) (string, error) {
	data, err := s.store.PayslipData(ctx, runID, employeeID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll("storage/payslips", 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join("storage/payslips", fmt.Sprintf("%s_%s.pdf", runID, employeeID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", data.FirstName, data.LastName, data.EmpNo))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay month: %s", data.YearMonth))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f %s", data.GrossAmount, data.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f %s", data.DeductAmount, data.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f %s", data.NetAmount, data.Currency))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		plain, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(plain)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}

// ExportRegisterXLSX renders the run's pay register as an XLSX workbook.
func (s *Service) ExportRegisterXLSX(ctx context.Context, runID string) ([]byte, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	registerRows, err := s.store.RegisterRows(ctx, runID)
	if err != nil {
		return nil, err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	headers := []string{"Emp No", "First Name", "Last Name", "Gross", "Deductions", "Net", "Currency"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := workbook.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for i, row := range registerRows {
		values := []any{row.EmpNo, row.FirstName, row.LastName, row.GrossAmount, row.DeductAmount, row.NetAmount, row.Currency}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	if err := workbook.SetSheetName(sheet, "Register "+run.YearMonth); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
