package dto

// DashboardRequest selects the reference month for the month-over-month view
type DashboardRequest struct {
	ReferenceDate string `query:"reference_date" validate:"omitempty,iso_date"`
}
