package receipt

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Fixed metadata timestamp keeps the PDF bytes deterministic for a given
// input; the visible receipt date comes from Data.Date.
var pdfEpoch = time.Unix(0, 0).UTC()

// Data is the donation snapshot a receipt is rendered from.
type Data struct {
	DonorName string
	Amount    int64 // rupees
	PaymentID string
	OrderID   string
	Date      string
	Note      string
}

const (
	templeName = "Sri Abhayanjaneya Swamy Temple"
	templeTown = "Gandlapalli"
)

// Render produces the PDF bytes and the HTML string for a completed
// donation. It is pure: identical input yields identical output, and no
// storage or network is touched.
func Render(data Data) ([]byte, string, error) {
	pdf, err := renderPDF(data)
	if err != nil {
		return nil, "", err
	}
	return pdf, renderHTML(data), nil
}

func renderPDF(data Data) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(pdfEpoch)
	doc.AddPage()

	// Header, saffron
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(255, 153, 51)
	doc.SetY(12)
	doc.CellFormat(0, 10, templeName, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 10, templeTown, "", 1, "C", false, 0, "")

	// Title
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0, 0, 0)
	doc.SetY(40)
	doc.CellFormat(0, 8, "DONATION RECEIPT", "", 1, "C", false, 0, "")

	doc.SetDrawColor(255, 153, 51)
	doc.SetLineWidth(0.5)
	doc.Line(20, 52, 190, 52)

	doc.SetFont("Helvetica", "", 12)
	y := 65.0
	line := func(size float64, text string) {
		doc.SetFontSize(size)
		doc.Text(20, y, text)
	}

	line(12, "Receipt No: "+data.OrderID)
	y += 10
	line(12, "Date: "+data.Date)
	y += 10
	line(12, "Payment ID: "+data.PaymentID)
	y += 15

	line(14, "Donor Name: "+data.DonorName)
	y += 10
	line(14, "Amount: Rs. "+FormatINR(data.Amount))
	y += 15

	if data.Note != "" {
		line(12, "Note: "+data.Note)
	}

	// Footer
	doc.SetFontSize(10)
	doc.SetTextColor(100, 100, 100)
	doc.SetY(248)
	doc.CellFormat(0, 6, "This is an electronic receipt. No signature required.", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, "Thank you for your generous donation!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHTML(data Data) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Donation Receipt</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 20px; }
    .header { text-align: center; color: #FF9933; }
    .title { font-size: 24px; font-weight: bold; margin-bottom: 20px; }
    .details { margin: 20px 0; }
    .detail-row { margin: 10px 0; }
    .amount { font-size: 20px; font-weight: bold; color: #138808; }
    .footer { margin-top: 40px; text-align: center; color: #666; }
  </style>
</head>
<body>
  <div class="header">
    <h1>` + templeName + `</h1>
    <h2>` + templeTown + `</h2>
  </div>
  <div class="title">DONATION RECEIPT</div>
  <div class="details">
`)
	row := func(label, value string) {
		b.WriteString(`    <div class="detail-row"><strong>` + label + `:</strong> ` + html.EscapeString(value) + "</div>\n")
	}
	row("Receipt No", data.OrderID)
	row("Date", data.Date)
	row("Payment ID", data.PaymentID)
	row("Donor Name", data.DonorName)
	b.WriteString(`    <div class="detail-row"><strong>Amount:</strong> <span class="amount">&#8377;` + FormatINR(data.Amount) + "</span></div>\n")
	if data.Note != "" {
		row("Note", data.Note)
	}
	b.WriteString(`  </div>
  <div class="footer">
    <p>This is an electronic receipt. No signature required.</p>
    <p>Thank you for your generous donation!</p>
  </div>
</body>
</html>
`)
	return b.String()
}

// FormatINR groups digits in the Indian style: last three, then pairs
// (1234567 -> "12,34,567").
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}
