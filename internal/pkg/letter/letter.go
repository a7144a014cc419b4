// Package letter renders the Grama Niladhari verification letter attached to
// a cause when the GS gate approves it.
package letter

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

var (
	ErrSignatureMissing = errors.New("signature is required")
	ErrSignatureFormat  = errors.New("signature must be a base64 PNG or JPEG image")
)

// Signature is a decoded signature image
type Signature struct {
	ImageType string // PNG or JPG, as fpdf names them
	Data      []byte
}

// ParseSignature decodes a signature sent either as a data URL
// (data:image/png;base64,...) or as bare base64.
func ParseSignature(raw string) (*Signature, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrSignatureMissing
	}

	if strings.HasPrefix(raw, "data:") {
		comma := strings.Index(raw, ",")
		if comma < 0 || !strings.Contains(raw[:comma], ";base64") {
			return nil, ErrSignatureFormat
		}
		raw = raw[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrSignatureFormat
	}

	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return &Signature{ImageType: "PNG", Data: data}, nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return &Signature{ImageType: "JPG", Data: data}, nil
	}
	return nil, ErrSignatureFormat
}

// Data is everything printed on the letter
type Data struct {
	CauseID          uint
	CauseTitle       string
	Description      string
	RequiredAmount   float64
	BeneficiaryName  string
	BeneficiaryNIC   string
	BeneficiaryPhone string
	Address          string
	AreaName         string
	DivisionName     string
	DistrictName     string
	OfficerName      string
	Remarks          string
	VerifiedAt       time.Time
	Signature        *Signature
}

// Render writes the letter as a PDF to w
func Render(w io.Writer, d Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("GS verification - cause %d", d.CauseID), true)
	pdf.SetAuthor(d.OfficerName, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Letterhead
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr("Grama Niladhari Verification Letter"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s GS Division, %s Divisional Secretariat, %s District",
		d.AreaName, d.DivisionName, d.DistrictName)), "", 1, "C", false, 0, "")
	pdf.Line(20, pdf.GetY()+2, 190, pdf.GetY()+2)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Date: "+d.VerifiedAt.Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	row("Cause reference:", fmt.Sprintf("#%d", d.CauseID))
	row("Cause title:", d.CauseTitle)
	row("Required amount:", fmt.Sprintf("LKR %.2f", d.RequiredAmount))
	row("Beneficiary:", d.BeneficiaryName)
	row("NIC:", d.BeneficiaryNIC)
	row("Phone:", d.BeneficiaryPhone)
	if d.Address != "" {
		row("Address:", d.Address)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Description", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(d.Description), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Officer remarks", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(d.Remarks), "", "L", false)
	pdf.Ln(6)

	pdf.MultiCell(0, 6, tr("I certify that the beneficiary named above resides in my division and that "+
		"the information provided with this cause has been verified."), "", "L", false)
	pdf.Ln(8)

	if d.Signature != nil {
		opts := fpdf.ImageOptions{ImageType: d.Signature.ImageType}
		pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(d.Signature.Data))
		pdf.ImageOptions("signature", 20, pdf.GetY(), 50, 0, true, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "......................................", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(d.OfficerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Grama Niladhari", "", 1, "L", false, 0, "")

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated by DigiBox on "+time.Now().Format(time.RFC1123), "", 1, "C", false, 0, "")

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}
