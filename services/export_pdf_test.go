package services

import (
	"testing"
)

func TestGeneratePDF_BasicSheet(t *testing.T) {
	data := ExportData{
		Title:       "MS-2026-00042",
		Customer:    "Acme Interiors",
		OrderType:   "Fitting",
		Status:      "Draft",
		CreatedDate: "2026-08-30",
		Rows: []ExportRow{
			{Index: 1, Area: "Living Room", ProductType: "Window Curtains", Width: 48, Height: 100, Panels: 2, FabricQty: 6.5, Amount: 5960},
			{Index: 2, Area: "Office", ProductType: "Blinds", Width: 48, Height: 60, SquareFeet: 22, Amount: 1310},
		},
		LinesTotal:     7270,
		VisitingCharge: 500,
		TotalAmount:    7770,
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyLines(t *testing.T) {
	data := ExportData{
		Title:       "MS-2026-00001",
		Customer:    "Acme Interiors",
		CreatedDate: "2026-08-30",
		Rows:        []ExportRow{},
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.50"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQty(tt.input)
			if got != tt.want {
				t.Errorf("formatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
