package augmentations

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Catalog export styling. Gold lettering on a black page.
const (
	pdfTitle  = "Augmentations"
	pdfFooter = "Deus Ex"

	goldR, goldG, goldB = 255, 215, 0
)

// WritePDF renders the given augmentations as a catalog document and writes
// it to w. Records are rendered in the order given, one block per record.
// The caller decides what an empty catalog means; WritePDF refuses to render
// one.
func WritePDF(w io.Writer, augs []Augmentation) error {
	if len(augs) == 0 {
		return ErrEmptyExport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.SetAutoPageBreak(true, 25)

	pdf.SetHeaderFunc(func() {
		pw, ph := pdf.GetPageSize()
		pdf.SetFillColor(0, 0, 0)
		pdf.Rect(0, 0, pw, ph, "F")

		pdf.SetTextColor(goldR, goldG, goldB)
		pdf.SetFont("Helvetica", "B", 22)
		pdf.CellFormat(0, 12, pdfTitle, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetTextColor(goldR, goldG, goldB)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, pdfFooter, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetTextColor(goldR, goldG, goldB)

	for _, aug := range augs {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, aug.Name, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, aug.Description, "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		detail := fmt.Sprintf("Area: %s  Activation: %s  Consumption: %s",
			aug.Area, aug.Activation, aug.EnergyConsumption)
		pdf.CellFormat(0, 6, detail, "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	if pdf.Err() {
		return fmt.Errorf("rendering catalog pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}
