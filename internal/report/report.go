// Package report renders the supervisor overview as a PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/progress"
	"github.com/go-pdf/fpdf"
)

// Report is everything printed on the progress report.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Overview    *app.OverviewResponse
	Roster      *app.RosterResponse
	// Uncompressed leaves page streams readable, which tests rely on.
	Uncompressed bool
}

const dateLayout = "2/1/2006"

// Write renders r as PDF to w.
func Write(w io.Writer, r Report) error {
	if r.Overview == nil {
		return fmt.Errorf("report: overview is required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.Uncompressed)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetModificationDate(r.GeneratedAt)
	pdf.SetTitle(r.Title, true)
	// Core fonts are cp1252; month names and plan names may carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Year %d, generated %s", r.Overview.Year, r.GeneratedAt.Format(dateLayout+" 15:04")))
	pdf.Ln(10)

	if len(r.Overview.Months) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.Cell(0, 8, fmt.Sprintf("No plans in %d.", r.Overview.Year))
		pdf.Ln(10)
	}

	for _, m := range r.Overview.Months {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, tr(m.MonthName))
		pdf.Ln(9)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(90, 7, "Plan", "B", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, "Deadline", "B", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, "Done", "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, "Progress", "B", 1, "R", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range m.Plans {
			deadline := p.Deadline.Format(dateLayout)
			if p.Overdue {
				deadline += " (overdue)"
			}
			pdf.CellFormat(90, 7, tr(truncate(p.Name, 50)), "", 0, "", false, 0, "")
			pdf.CellFormat(30, 7, deadline, "", 0, "", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%d/%d", p.Completed, p.Total), "", 0, "R", false, 0, "")
			setBandColor(pdf, p.Band)
			pdf.CellFormat(30, 7, fmt.Sprintf("%.0f%%", p.Percent), "", 1, "R", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(4)
	}

	if r.Roster != nil && len(r.Roster.Workers) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Workers")
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		for _, wr := range r.Roster.Workers {
			pdf.CellFormat(90, 7, tr(wr.Worker.Name), "", 0, "", false, 0, "")
			pdf.CellFormat(60, 7, fmt.Sprintf("%d/%d", wr.Completed, wr.Total), "", 0, "R", false, 0, "")
			setBandColor(pdf, wr.Band)
			pdf.CellFormat(30, 7, fmt.Sprintf("%.0f%%", wr.Percent), "", 1, "R", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func setBandColor(pdf *fpdf.Fpdf, b progress.Band) {
	switch b {
	case progress.BandLow:
		pdf.SetTextColor(200, 30, 30)
	case progress.BandMedium:
		pdf.SetTextColor(200, 140, 0)
	default:
		pdf.SetTextColor(20, 140, 60)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
