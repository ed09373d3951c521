package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"estimator/internal/app/ds"
	"estimator/internal/app/estimate"
)

const (
	CustomerSheet    = "고객정보"
	CustomerFileName = "고객정보목록.xlsx"
	EstimateSheet    = "견적서"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var customerHeaders = []string{"이름", "회사명", "이메일", "연락처", "등록일"}
var customerWidths = []float64{16, 24, 28, 18, 14}

var itemHeaders = []string{"구분", "항목", "설명", "수량", "단위", "단가", "금액"}
var itemWidths = []float64{12, 28, 40, 8, 8, 14, 16}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string, widths []float64) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, row)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	return nil
}

// CustomersXLSX lists customers one per row under a header row.
func CustomersXLSX(customers []ds.Customer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", CustomerSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeader(f, CustomerSheet, 1, customerHeaders, customerWidths); err != nil {
		f.Close()
		return nil, err
	}

	for i, c := range customers {
		row := i + 2
		values := []interface{}{c.Name, c.Company, c.Email, c.Phone, c.CreatedAt.Format("2006-01-02")}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(CustomerSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// EstimateXLSX writes the estimate header, its items and the totals block.
func EstimateXLSX(est *ds.Estimate) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", EstimateSheet); err != nil {
		f.Close()
		return nil, err
	}
	sheet := EstimateSheet

	title := est.Title
	if title == "" {
		title = DefaultTitle
	}
	company := est.Company.Data()
	info := [][]interface{}{
		{"제목", title},
		{"공급자", company.Name},
		{"고객", est.Client.Name},
		{"고객사", est.Client.Company},
		{"유효기간", est.ValidUntil.Format("2006-01-02")},
	}
	for i, r := range info {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerRow := len(info) + 2
	if err := writeHeader(f, sheet, headerRow, itemHeaders, itemWidths); err != nil {
		f.Close()
		return nil, err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		f.Close()
		return nil, err
	}

	row := headerRow + 1
	for _, it := range est.Items {
		total := it.TotalPrice
		if it.IsDiscount {
			total = -total
		}
		values := []interface{}{
			estimate.Category(it.Category).Label(),
			it.Name,
			it.Description,
			it.Quantity,
			it.Unit,
			it.UnitPrice,
			total,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if row > headerRow+1 {
		if err := f.SetCellStyle(sheet, fmt.Sprintf("F%d", headerRow+1), fmt.Sprintf("G%d", row-1), moneyStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	row++
	totals := [][]interface{}{
		{"공급가액", est.TotalAmount},
		{"부가세 " + estimate.TaxLabel(est.TaxRate), est.TaxAmount},
		{"합계", est.FinalAmount},
		{"네고율", fmt.Sprintf("%d%%", est.NegotiationRate)},
	}
	for _, t := range totals {
		cell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetSheetRow(sheet, cell, &t); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("G%d", row-4), fmt.Sprintf("G%d", row-2), moneyStyle); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
