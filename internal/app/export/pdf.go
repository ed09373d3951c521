package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/sirupsen/logrus"

	"estimator/internal/app/ds"
	"estimator/internal/app/estimate"
)

const (
	PDFContentType = "application/pdf"

	fontFamily   = "NanumGothic"
	fallbackFont = "Helvetica"
	pageMargin   = 15.0
	lineHeight   = 6.0
)

// Image is an embedded company image with its gofpdf type (PNG, JPG or GIF).
type Image struct {
	Data []byte
	Type string
}

// Assets are the company images drawn on the document. Nil images are skipped.
type Assets struct {
	Logo      *Image
	Signature *Image
	Stamp     *Image
}

// ImageType maps a file name to the type gofpdf understands, or "" when
// the image cannot be embedded.
func ImageType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "PNG"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "JPG"
	case strings.HasSuffix(lower, ".gif"):
		return "GIF"
	}
	return ""
}

// PDFRenderer lays out estimates on A4 portrait pages. FontPath points to a
// UTF-8 TrueType font with Hangul glyphs; without it the core Helvetica font
// is used and non-Latin text will not render.
type PDFRenderer struct {
	FontPath string
}

func NewPDFRenderer(fontPath string) *PDFRenderer {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			logrus.Warnf("pdf font %s not available, falling back to %s: %v", fontPath, fallbackFont, err)
			fontPath = ""
		}
	}
	return &PDFRenderer{FontPath: fontPath}
}

func (r *PDFRenderer) newDocument() (*gofpdf.Fpdf, string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	family := fallbackFont
	if r.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", r.FontPath)
		family = fontFamily
	}
	return pdf, family
}

// EstimatePDF renders the estimate document.
func (r *PDFRenderer) EstimatePDF(est *ds.Estimate, assets Assets) ([]byte, error) {
	pdf, family := r.newDocument()

	title := est.Title
	if title == "" {
		title = DefaultTitle
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("estimator", true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin
	company := est.Company.Data()

	if assets.Logo != nil {
		placeImage(pdf, "logo", assets.Logo, pageMargin, pageMargin, 30)
	}

	pdf.SetFont(family, "B", 20)
	pdf.CellFormat(contentW, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	half := contentW / 2
	top := pdf.GetY()

	// supplier block on the left
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(half, lineHeight, "공급자", "B", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	for _, line := range companyLines(company) {
		pdf.CellFormat(half, 5, line, "", 1, "L", false, 0, "")
	}
	leftBottom := pdf.GetY()

	if assets.Stamp != nil {
		placeImage(pdf, "stamp", assets.Stamp, pageMargin+half-22, top+2, 20)
	}

	// client block on the right
	pdf.SetXY(pageMargin+half+5, top)
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(half-5, lineHeight, "수신", "B", 2, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	for _, line := range clientLines(est) {
		pdf.SetX(pageMargin + half + 5)
		pdf.CellFormat(half-5, 5, line, "", 2, "L", false, 0, "")
	}
	pdf.SetX(pageMargin + half + 5)
	pdf.CellFormat(half-5, 5, "유효기간: "+est.ValidUntil.Format("2006-01-02"), "", 2, "L", false, 0, "")

	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(6)

	drawItems(pdf, family, contentW, est.Items)
	pdf.Ln(4)
	drawTotals(pdf, family, contentW, est)

	if est.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(contentW, lineHeight, "비고", "B", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		pdf.MultiCell(contentW, 5, est.Notes, "", "L", false)
	}

	if assets.Signature != nil {
		pdf.Ln(6)
		placeImage(pdf, "signature", assets.Signature, pageMargin+contentW-40, pdf.GetY(), 40)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"구분", 0.12, "C"},
	{"항목", 0.30, "L"},
	{"수량", 0.10, "R"},
	{"단위", 0.10, "C"},
	{"단가", 0.18, "R"},
	{"금액", 0.20, "R"},
}

func drawItems(pdf *gofpdf.Fpdf, family string, contentW float64, items []ds.EstimateItem) {
	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(217, 225, 242)
	for _, c := range itemColumns {
		pdf.CellFormat(contentW*c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, it := range items {
		price := estimate.FormatPrice(it.TotalPrice)
		if it.IsDiscount {
			price = "-" + price
		}
		cells := []string{
			estimate.Category(it.Category).Label(),
			it.Name,
			estimate.FormatPrice(it.Quantity),
			it.Unit,
			estimate.FormatPrice(it.UnitPrice),
			price,
		}
		for i, c := range itemColumns {
			pdf.CellFormat(contentW*c.width, 7, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawTotals(pdf *gofpdf.Fpdf, family string, contentW float64, est *ds.Estimate) {
	labelW := contentW * 0.8
	valueW := contentW - labelW

	rows := [][2]string{
		{"공급가액", estimate.FormatPrice(est.TotalAmount)},
		{"부가세 " + estimate.TaxLabel(est.TaxRate), estimate.FormatPrice(est.TaxAmount)},
	}
	if est.NegotiationRate > 0 {
		rows = append(rows, [2]string{"네고율", fmt.Sprintf("%d%%", est.NegotiationRate)})
	}

	pdf.SetFont(family, "", 9)
	for _, r := range rows {
		pdf.CellFormat(labelW, 7, r[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, r[1], "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(labelW, 8, "합계금액", "1", 0, "R", true, 0, "")
	pdf.CellFormat(valueW, 8, estimate.FormatPrice(est.FinalAmount)+"원", "1", 1, "R", true, 0, "")
}

func companyLines(c ds.CompanySnapshot) []string {
	lines := []string{c.Name}
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("사업자번호", c.BizNo)
	add("업태", c.BizType)
	add("종목", c.BizItem)
	add("주소", c.Address)
	add("전화", c.Phone)
	add("이메일", c.Email)
	add("웹사이트", c.Website)
	if c.BankName != "" || c.AccountNumber != "" {
		lines = append(lines, "계좌: "+strings.TrimSpace(c.BankName+" "+c.AccountNumber))
	}
	return lines
}

func clientLines(est *ds.Estimate) []string {
	name := est.Client.Name
	if name == "" {
		name = est.DisplayClientName
	}
	lines := []string{name + " 귀하"}
	if est.Client.Company != "" {
		lines = append(lines, est.Client.Company)
	}
	if est.Client.Email != "" {
		lines = append(lines, est.Client.Email)
	}
	if est.Client.Phone != "" {
		lines = append(lines, est.Client.Phone)
	}
	return lines
}

// decoderFormats maps gofpdf image types to image.DecodeConfig format names.
var decoderFormats = map[string]string{
	"PNG": "png",
	"JPG": "jpeg",
	"GIF": "gif",
}

// usableImage reports whether gofpdf can embed img. gofpdf errors are sticky
// for the whole document.
func usableImage(img *Image) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return err
	}
	if format != decoderFormats[img.Type] {
		return fmt.Errorf("data is %s, not %s", format, img.Type)
	}
	// IHDR: bit depth at byte 24, interlace method at byte 28
	if format == "png" && (img.Data[24] > 8 || img.Data[28] != 0) {
		return fmt.Errorf("png is 16-bit or interlaced")
	}
	return nil
}

func placeImage(pdf *gofpdf.Fpdf, name string, img *Image, x, y, w float64) {
	if err := usableImage(img); err != nil {
		logrus.Warnf("Skipping %s image: %v", name, err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: img.Type, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		return
	}
	pdf.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
}
