package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// buildSheetExportData fetches a sheet and its lines, returning an ExportData struct.
func buildSheetExportData(app *pocketbase.PocketBase, sheetID string) (services.ExportData, error) {
	sheet, err := app.FindRecordById("measurement_sheets", sheetID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("sheet not found: %w", err)
	}

	lines, _, err := pbstore.LoadSheetLines(app, sheetID)
	if err != nil {
		return services.ExportData{}, err
	}

	customerName := ""
	if customerID := sheet.GetString("customer"); customerID != "" {
		if customer, err := app.FindRecordById("customers", customerID); err == nil {
			customerName = customer.GetString("name")
		}
	}

	createdDate := "—"
	if dt := sheet.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	title := sheet.GetString("title")
	if title == "" {
		title = "Measurement Sheet"
	}

	return services.BuildExportData(
		title,
		customerName,
		sheet.GetString("order_type"),
		sheet.GetString("status"),
		createdDate,
		lines,
		sheet.GetFloat("visiting_charge"),
	), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleSheetExportExcel returns a handler that generates and downloads an Excel file for a sheet.
func HandleSheetExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing sheet ID")
		}

		data, err := buildSheetExportData(app, sheetID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Sheet not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Sheet_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleSheetExportPDF returns a handler that generates and downloads a PDF file for a sheet.
func HandleSheetExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing sheet ID")
		}

		data, err := buildSheetExportData(app, sheetID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Sheet not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Sheet_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
