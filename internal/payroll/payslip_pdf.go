package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	defaultPayslipDir     = "storage/payslips"
	defaultPayslipBaseURL = "/files/payslips"
)

// PayslipStorage says where rendered payslips are written and how they are
// served back.
type PayslipStorage struct {
	Dir           string
	PublicBaseURL string
}

// WithDefaults fills an empty Dir or PublicBaseURL.
func (s PayslipStorage) WithDefaults() PayslipStorage {
	if strings.TrimSpace(s.Dir) == "" {
		s.Dir = defaultPayslipDir
	}
	if strings.TrimSpace(s.PublicBaseURL) == "" {
		s.PublicBaseURL = defaultPayslipBaseURL
	}
	s.PublicBaseURL = strings.TrimRight(s.PublicBaseURL, "/")
	return s
}

func payslipFilename(payrollID string) string {
	return "payslip_" + payrollID + ".pdf"
}

// writePayslipPDF renders p into the storage dir and returns the public URL.
func writePayslipPDF(storage PayslipStorage, p Payroll, generatedAt time.Time) (string, error) {
	storage = storage.WithDefaults()
	if err := os.MkdirAll(storage.Dir, 0o755); err != nil {
		return "", err
	}

	filename := payslipFilename(p.ID.String())
	filePath := filepath.Join(storage.Dir, filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if p.Employee != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", p.Employee.FullName(), p.Employee.EmployeeCode))
		pdf.Ln(6)
		if p.Employee.BankName != nil && p.Employee.BankAccount != nil {
			pdf.Cell(0, 7, fmt.Sprintf("Bank: %s %s", *p.Employee.BankName, *p.Employee.BankAccount))
			pdf.Ln(6)
		}
	} else {
		pdf.Cell(0, 7, fmt.Sprintf("Employee ID: %s", p.EmployeeID))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %04d-%02d", p.Year, p.Month))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", p.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	payslipLine(pdf, "Base salary", p.BaseSalary)
	payslipLine(pdf, fmt.Sprintf("Overtime (%s h x %s)", p.OvertimeHours.String(), p.OvertimeRate.String()), p.OvertimeAmount)
	payslipLine(pdf, "Bonus", p.Bonus)
	payslipLine(pdf, "Allowances", p.Allowances)
	payslipLine(pdf, "Commission", p.Commission)
	payslipLine(pdf, "Gross salary", p.GrossSalary)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	payslipLine(pdf, "Social security", p.SocialSecurity)
	payslipLine(pdf, "Tax", p.Tax)
	payslipLine(pdf, "Other deductions", p.OtherDeductions)
	payslipLine(pdf, "Total deductions", p.TotalDeductions)
	if p.DeductionNotes != nil && *p.DeductionNotes != "" {
		pdf.MultiCell(0, 6, "Notes: "+*p.DeductionNotes, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	payslipLine(pdf, "Net salary", p.NetSalary)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated at "+generatedAt.UTC().Format(time.RFC3339))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	return storage.PublicBaseURL + "/" + filename, nil
}

func payslipLine(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(110, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}
