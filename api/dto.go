/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  Dates cross the API boundary as "YYYY-MM-DD" strings; parsing happens
  in the handlers. Decimal averages are rendered as fixed two-decimal
  strings so clients never see float noise.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token. The same token is also set
// as the session cookie for browser clients.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

// ChangePasswordRequest rotates the logged-in user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// VACATION TYPES
// =============================================================================

// VacationDTO represents a vacation period in API responses.
type VacationDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Days         int    `json:"days"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// CreateVacationRequest is the request to register a vacation period.
type CreateVacationRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// =============================================================================
// SCORING TYPES
// =============================================================================

// MonthTallyDTO is one month's slice of a period or ranking entry.
type MonthTallyDTO struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Days      int    `json:"days"`
	Points    int    `json:"points"`
}

// VacationPointsDTO is the priced decomposition of a single period.
type VacationPointsDTO struct {
	VacationID   string          `json:"vacation_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalDays    int             `json:"total_days"`
	TotalPoints  int             `json:"total_points"`
	PointsPerDay string          `json:"points_per_day"`
	Breakdown    []MonthTallyDTO `json:"breakdown"`
}

// RankingEntryDTO is one row of the ranking, cheapest footprint first.
type RankingEntryDTO struct {
	Position     int             `json:"position"`
	EmployeeID   string          `json:"employee_id"`
	Name         string          `json:"name"`
	TotalDays    int             `json:"total_days"`
	TotalPoints  int             `json:"total_points"`
	PointsPerDay string          `json:"points_per_day"`
	Breakdown    []MonthTallyDTO `json:"breakdown,omitempty"`
}

// MonthWeightDTO is one row of the month weight reference table.
type MonthWeightDTO struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Points    int    `json:"points"`
}

// =============================================================================
// DASHBOARD TYPES
// =============================================================================

// UpcomingVacationDTO is one future vacation on the dashboard.
type UpcomingVacationDTO struct {
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DaysUntil    int    `json:"days_until"`
}

// DashboardDTO is the overview page payload.
type DashboardDTO struct {
	TotalEmployees  int                   `json:"total_employees"`
	TotalVacations  int                   `json:"total_vacations"`
	ActiveVacations int                   `json:"active_vacations"`
	Upcoming        []UpcomingVacationDTO `json:"upcoming"`
}
