package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel file for a measurement sheet and returns
// the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Measurement Sheet"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1] // "I"

	// Set column widths.
	widths := []float64{6, 24, 18, 10, 10, 10, 10, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Title style: bold, 16pt.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	// Subtitle style (customer, order type, date).
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Line row style: normal with borders.
	lineStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	// Summary label style: bold, right-aligned.
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	// Summary value style: bold.
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	// Row 1: Title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Row 2: Customer and order type.
	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge customer: %w", err)
	}
	subtitle := "Customer: " + data.Customer
	if data.OrderType != "" {
		subtitle += "  |  Order Type: " + data.OrderType
	}
	if data.Status != "" {
		subtitle += "  |  Status: " + data.Status
	}
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(subtitle))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// Row 3: Date.
	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Area", "Product Type", "Width", "Height", "Panels", "Sqft", "Fabric Qty", "Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Area))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.ProductType))
		f.SetCellValue(sheetName, "D"+rowStr, r.Width)
		f.SetCellValue(sheetName, "E"+rowStr, r.Height)
		f.SetCellValue(sheetName, "F"+rowStr, r.Panels)
		f.SetCellValue(sheetName, "G"+rowStr, r.SquareFeet)
		f.SetCellValue(sheetName, "H"+rowStr, r.FabricQty)
		f.SetCellValue(sheetName, "I"+rowStr, FormatINR(r.Amount))

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	// Skip a blank row.
	row++

	// Lines subtotal.
	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Lines Total:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.LinesTotal))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)
	row++

	// Visiting charge.
	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Visiting Charge:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.VisitingCharge))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)
	row++

	// Grand total.
	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Total Amount:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.TotalAmount))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
