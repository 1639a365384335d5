package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document for a measurement sheet using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, customer line, and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	// Title row
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	// Customer and date row
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Customer: %s", data.Customer), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the measurement table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Area", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Product Type", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Width", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Height", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Panels", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Sqft", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Fabric Qty", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a single measurement line to the table.
func addTableRow(m core.Maroto, r ExportRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), baseText)),
			col.New(2).Add(text.New(r.Area, leftText)),
			col.New(2).Add(text.New(r.ProductType, leftText)),
			col.New(1).Add(text.New(formatQty(r.Width), rightText)),
			col.New(1).Add(text.New(formatQty(r.Height), rightText)),
			col.New(1).Add(text.New(formatQty(r.Panels), rightText)),
			col.New(1).Add(text.New(formatQty(r.SquareFeet), rightText)),
			col.New(1).Add(text.New(formatQty(r.FabricQty), rightText)),
			col.New(2).Add(text.New(FormatINR(r.Amount), rightText)),
		),
	)
}

// addSummary adds the totals section at the bottom of the PDF.
func addSummary(m core.Maroto, data ExportData) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	// Lines total
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Lines Total", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatINR(data.LinesTotal), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	// Visiting charge
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Visiting Charge", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatINR(data.VisitingCharge), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	// Grand total
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Total Amount", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatINR(data.TotalAmount), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	// Total in words
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(AmountInWords(data.TotalAmount), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
