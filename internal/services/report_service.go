package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"

	"jrs-backend/internal/models"
	"jrs-backend/internal/repositories"
	"jrs-backend/internal/timeutil"
)

// ReportService generates the accountant exports: the jobs workbook and
// the printable billing summary.
type ReportService struct {
	JobRepo   *repositories.JobRepository
	AuditRepo *repositories.AuditLogRepository
}

func NewReportService(jobRepo *repositories.JobRepository, auditRepo *repositories.AuditLogRepository) *ReportService {
	return &ReportService{JobRepo: jobRepo, AuditRepo: auditRepo}
}

// JobsWorkbook renders every job into an .xlsx with the cost, revenue and
// profit columns accounting reconciles against.
func (s *ReportService) JobsWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	jobs, err := s.JobRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Jobs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{
		"Job ID", "Origin", "Destination", "Truck Type", "Subcontractor",
		"Driver", "License Plate", "Status", "Accounting Status",
		"Drops", "Cost", "Selling Price", "Extra Charges", "Profit",
		"Billing Doc", "Created",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, j := range jobs {
		values := []interface{}{
			j.ID, j.Origin, j.Destination, j.TruckType, j.Subcontractor,
			j.DriverName, j.LicensePlate, j.Status, j.AccountingStatus,
			len(j.Drops), j.Cost, j.SellingPrice, j.ExtraCharge, j.Profit(),
			j.BillingDocNumber, timeutil.ToICT(j.CreatedAt).Format(timeutil.DateTimeLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// BillingPDF renders the billing summary for one billed job.
func (s *ReportService) BillingPDF(ctx context.Context, jobID string) (*bytes.Buffer, error) {
	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.Status != models.StatusBilled && job.Status != models.StatusCompleted {
		return nil, ErrNotYetCompleted
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "JRS Billing Summary")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Job", job.ID)
	line("Route", fmt.Sprintf("%s -> %s (%s)", job.Origin, job.Destination, job.TruckType))
	line("Subcontractor", job.Subcontractor)
	line("Driver", fmt.Sprintf("%s %s", job.DriverName, job.LicensePlate))
	line("Drops", fmt.Sprintf("%d", len(job.Drops)))
	pdf.Ln(4)
	line("Cost", fmt.Sprintf("%.2f", job.Cost))
	line("Selling price", fmt.Sprintf("%.2f", job.SellingPrice))
	line("Extra charges", fmt.Sprintf("%.2f", job.ExtraCharge))
	line("Profit", fmt.Sprintf("%.2f", job.Profit()))
	pdf.Ln(4)
	line("Billing document", job.BillingDocNumber)
	if job.BillingDate != nil {
		line("Billing date", job.BillingDate.Format(timeutil.DateLayout))
	}
	if job.PaymentDate != nil {
		line("Payment date", job.PaymentDate.Format(timeutil.DateLayout))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
