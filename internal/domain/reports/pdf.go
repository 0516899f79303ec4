package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SummaryPDF renders the aggregated report as a printable document.
func SummaryPDF(summary Summary, generatedAt string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Teacher Evaluation Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Evaluations: %d   Teachers: %d", summary.EvaluationCount, summary.TeacherCount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Top Teachers")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for i, t := range summary.TopTeachers {
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s (%s, %s) - %d%%", i+1, t.Name, t.Subject, t.Department, t.Score))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Departments")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, d := range summary.DepartmentStats {
		pdf.Cell(0, 6, fmt.Sprintf("%s: avg %d%% (max %d%%, min %d%%) over %d evaluations by %d teachers",
			d.Department, d.Average, d.Max, d.Min, d.EvalCount, d.TeacherCount))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Categories")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range summary.Categories {
		score := fmt.Sprintf("%d%%", c.Score)
		if !c.HasData {
			score = "no data"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", c.Label, score))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
