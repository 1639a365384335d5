package services

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sheet order types and workflow states.
const (
	OrderTypeFitting  = "Fitting"
	OrderTypeDelivery = "Delivery"

	MethodCustomerProvided   = "Customer Provided"
	MethodContractorAssigned = "Contractor Assigned"

	StatusDraft    = "Draft"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// SheetInfo carries the parent-level fields the validation engine rules on.
type SheetInfo struct {
	Customer                string  `json:"customer"`
	OrderType               string  `json:"order_type"`
	MeasurementMethod       string  `json:"measurement_method"`
	Project                 string  `json:"project"`
	AssignedContractor      string  `json:"assigned_contractor"`
	ExpectedMeasurementDate string  `json:"expected_measurement_date"`
	SiteVisitRequired       bool    `json:"site_visit_required"`
	VisitingCharge          float64 `json:"visiting_charge"`
	Status                  string  `json:"status"`
	RejectionReason         string  `json:"rejection_reason"`
}

// FieldError attributes a validation message to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors flattens a validation.Errors map into a slice ordered by field
// name, for JSON responses and deterministic tests.
func FieldErrors(errs validation.Errors) []FieldError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(errs))
	for field, err := range errs {
		out = append(out, FieldError{Field: field, Message: err.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// ValidateSheet evaluates every conditional-mandatory rule independently and
// returns the full set of violations. An empty result means the sheet may be
// persisted.
func ValidateSheet(s SheetInfo) validation.Errors {
	contractorAssigned := s.MeasurementMethod == MethodContractorAssigned
	visitingChargeRequired := contractorAssigned && s.SiteVisitRequired

	err := validation.ValidateStruct(&s,
		validation.Field(&s.MeasurementMethod,
			validation.Required.Error("Measurement Method is required")),
		validation.Field(&s.Project,
			validation.Required.
				When(s.OrderType == OrderTypeFitting).
				Error("Project is required when Order Type is 'Fitting'")),
		validation.Field(&s.AssignedContractor,
			validation.Required.
				When(contractorAssigned).
				Error("Assigned Contractor is required when Measurement Method is 'Contractor Assigned'")),
		validation.Field(&s.ExpectedMeasurementDate,
			validation.Required.
				When(contractorAssigned).
				Error("Expected Measurement Date is required when Measurement Method is 'Contractor Assigned'")),
		validation.Field(&s.VisitingCharge,
			validation.Required.
				When(visitingChargeRequired).
				Error("Visiting Charge is required when Site Visit Required is checked"),
			validation.When(visitingChargeRequired,
				validation.Min(0.0).
					Exclusive().
					Error("Visiting Charge is required when Site Visit Required is checked"))),
		validation.Field(&s.RejectionReason,
			validation.Required.
				When(s.Status == StatusRejected).
				Error("Rejection Reason is required when Status is 'Rejected'")),
	)

	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		return errs
	}
	return validation.Errors{"sheet": err}
}

// ValidateLine enforces the per-row requirements that gate persistence:
// identifying fields, geometry appropriate to the product type, a positive
// panel count for curtain types, and the branch-specific item selections.
func ValidateLine(line MeasurementLine) validation.Errors {
	errs := validation.Errors{}

	if line.ProductType == "" {
		errs["product_type"] = validation.NewError(
			"required", "Product Type is required for all measurement details")
		return errs
	}
	if line.Area == "" {
		errs["area"] = validation.NewError(
			"required", "Area is required for all measurement details")
	}
	if line.Width <= 0 {
		errs["width"] = validation.NewError(
			"required", "Width is required for all measurement details")
	}
	if line.ProductType != ProductTracksRods && line.Height <= 0 {
		errs["height"] = validation.NewError(
			"required", "Height is required for Product Type: "+string(line.ProductType))
	}
	if err := CheckPanels(line.ProductType, line.Panels); err != nil {
		errs["panels"] = validation.NewError("invalid_panels", err.Error())
	}
	if line.ProductType.UsesFabric() && line.FabricSelected == "" {
		errs["fabric_selected"] = validation.NewError(
			"required", "Fabric Selected is required for "+string(line.ProductType))
	}
	if line.ProductType == ProductBlinds && line.Selection == "" {
		errs["selection"] = validation.NewError(
			"required", "Selection is required for Blinds")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
