package services

// ExportRow is one measurement line in a sheet export.
type ExportRow struct {
	Index       int
	Area        string
	ProductType string
	Width       float64
	Height      float64
	Panels      float64
	SquareFeet  float64
	FabricQty   float64
	Amount      float64
}

// ExportData holds everything the Excel and PDF exporters need for a sheet.
type ExportData struct {
	Title          string
	Customer       string
	OrderType      string
	Status         string
	CreatedDate    string
	Rows           []ExportRow
	LinesTotal     float64
	VisitingCharge float64
	TotalAmount    float64
}

// BuildExportData flattens a sheet and its lines into export rows and totals.
func BuildExportData(title, customer, orderType, status, createdDate string, lines []MeasurementLine, visitingCharge float64) ExportData {
	data := ExportData{
		Title:          title,
		Customer:       customer,
		OrderType:      orderType,
		Status:         status,
		CreatedDate:    createdDate,
		VisitingCharge: visitingCharge,
	}

	for i := range lines {
		line := &lines[i]
		data.Rows = append(data.Rows, ExportRow{
			Index:       i + 1,
			Area:        line.Area,
			ProductType: string(line.ProductType),
			Width:       line.Width,
			Height:      line.Height,
			Panels:      line.Panels,
			SquareFeet:  line.SquareFeet,
			FabricQty:   line.FabricQty,
			Amount:      line.Amount,
		})
		data.LinesTotal += line.Amount
	}

	data.TotalAmount = data.LinesTotal + visitingCharge
	return data
}
