package export

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"gorm.io/datatypes"

	"estimator/internal/app/ds"
)

func sampleEstimate() *ds.Estimate {
	return &ds.Estimate{
		Title:       "Brand Film",
		Client:      ds.ClientInfo{Name: "Alice", Company: "Blue Films", Email: "alice@blue.test"},
		Company:     datatypes.NewJSONType(ds.CompanySnapshot{Name: "North Studio", Phone: "02-000-0000"}),
		TotalAmount: 400000,
		TaxRate:     10,
		TaxAmount:   40000,
		FinalAmount: 440000,
		ValidUntil:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Notes:       "Payment within 30 days",
		Items: []ds.EstimateItem{
			{ItemKey: "a", Category: "production", Name: "Shoot", Quantity: 1, Unit: "day", UnitPrice: 500000, TotalPrice: 500000},
			{ItemKey: "b", Category: "planning", Name: "Discount", Quantity: 1, Unit: "case", UnitPrice: 100000, TotalPrice: 100000, IsDiscount: true},
		},
		NegotiationRate: 20,
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		title, ext, want string
	}{
		{"브랜드 필름 견적", "pdf", "브랜드필름견적_20260309.pdf"},
		{"", "pdf", "견적서_20260309.pdf"},
		{"  ", "xlsx", "견적서_20260309.xlsx"},
	}
	for _, tt := range tests {
		if got := FileName(tt.title, tt.ext, now); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestEstimatePDF(t *testing.T) {
	out, err := NewPDFRenderer("").EstimatePDF(sampleEstimate(), Assets{})
	if err != nil {
		t.Fatalf("EstimatePDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func encodedImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestEstimatePDFSkipsMismatchedImages(t *testing.T) {
	pngData := encodedImage(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })
	jpgData := encodedImage(t, func(b *bytes.Buffer, i image.Image) error { return jpeg.Encode(b, i, nil) })

	tests := []struct {
		name   string
		assets Assets
	}{
		{"garbage logo", Assets{Logo: &Image{Data: []byte("not a png"), Type: "PNG"}}},
		{"jpeg saved as png", Assets{Stamp: &Image{Data: jpgData, Type: "PNG"}}},
		{"png saved as gif", Assets{Signature: &Image{Data: pngData, Type: "GIF"}}},
		{"valid images", Assets{
			Logo:      &Image{Data: pngData, Type: "PNG"},
			Stamp:     &Image{Data: jpgData, Type: "JPG"},
			Signature: &Image{Data: []byte{}, Type: "JPG"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewPDFRenderer("").EstimatePDF(sampleEstimate(), tt.assets)
			if err != nil {
				t.Fatalf("EstimatePDF: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Error("output is not a PDF")
			}
		})
	}
}

func TestUsableImage(t *testing.T) {
	pngData := encodedImage(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })
	if err := usableImage(&Image{Data: pngData, Type: "PNG"}); err != nil {
		t.Errorf("valid png rejected: %v", err)
	}
	if err := usableImage(&Image{Data: pngData, Type: "JPG"}); err == nil {
		t.Error("png accepted as jpg")
	}
}

func TestImageType(t *testing.T) {
	if got := ImageType("http://x/1/logo_1.PNG"); got != "PNG" {
		t.Errorf("ImageType png = %q", got)
	}
	if got := ImageType("stamp.jpeg"); got != "JPG" {
		t.Errorf("ImageType jpeg = %q", got)
	}
	if got := ImageType("sig.webp"); got != "" {
		t.Errorf("ImageType webp = %q", got)
	}
}

func TestCustomersXLSX(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	f, err := CustomersXLSX([]ds.Customer{
		{Name: "Alice", Company: "Blue Films", Email: "a@b.test", Phone: "010", CreatedAt: created},
		{Name: "Bob", Company: "Red Media", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("CustomersXLSX: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != CustomerSheet {
		t.Fatalf("sheet = %q, want %q", name, CustomerSheet)
	}
	rows, err := f.GetRows(CustomerSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][0] != "Alice" || rows[2][1] != "Red Media" || rows[1][4] != "2026-01-02" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestEstimateXLSX(t *testing.T) {
	f, err := EstimateXLSX(sampleEstimate())
	if err != nil {
		t.Fatalf("EstimateXLSX: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue(EstimateSheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "Brand Film" {
		t.Errorf("title cell = %q", v)
	}

	rows, err := f.GetRows(EstimateSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// info(5) + blank + header + 2 items + blank + 4 totals
	if len(rows) != 14 {
		t.Fatalf("got %d rows, want 14", len(rows))
	}
	if rows[8][1] != "Discount" {
		t.Errorf("discount row = %v", rows[8])
	}
}
