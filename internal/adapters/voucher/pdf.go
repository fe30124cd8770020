// Package voucher renders booking confirmations as printable PDFs.
package voucher

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hotel_adlab/internal/domain"
)

// Render returns the voucher PDF for c as raw bytes (no filesystem needed).
func Render(c domain.BookingConfirmation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Booking voucher "+c.ID.String(), true)
	pdf.AddPage()
	// core fonts are cp1252; hotel names carry € and typographic quotes
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// header bar
	pdf.SetFillColor(122, 28, 60)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, "Booking Confirmed", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Voucher "+c.ID.String(), "", 1, "L", false, 0, "")
	pdf.SetY(36)

	sectionHeader := func(title string) {
		pdf.SetFillColor(245, 230, 235)
		pdf.SetTextColor(122, 28, 60)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	sectionHeader("Hotel")
	row("Name", c.Hotel.Name)
	row("Location", c.Hotel.Location)
	row("Rating", fmt.Sprintf("%d Stars", c.Hotel.Rating))
	row("Type", string(c.Hotel.Type))
	pdf.Ln(4)

	sectionHeader("Stay")
	row("Check-in", c.CheckIn.Format("Mon, 02 Jan 2006"))
	row("Check-out", c.CheckOut.Format("Mon, 02 Jan 2006"))
	row("Guests", fmt.Sprintf("%d", c.Guests))
	row("Nights", fmt.Sprintf("%d", c.Nights))
	pdf.Ln(4)

	sectionHeader("Price")
	row("Rate", fmt.Sprintf("€%d / night", c.Hotel.Price))
	pdf.SetFillColor(122, 28, 60)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, tr(fmt.Sprintf("€%d", c.TotalPrice)), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetY(-22)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Issued "+c.ConfirmedAt.UTC().Format("02 Jan 2006, 15:04 UTC")+" - simulated booking, no payment taken",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("voucher output failed: %w", err)
	}
	return buf.Bytes(), nil
}
