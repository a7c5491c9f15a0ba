/*
handlers.go - HTTP API handlers for the vacation manager

PURPOSE:
  Exposes the record store and the scoring core via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login             Log in, receive session token
    POST   /api/auth/logout            Clear the session cookie
    POST   /api/auth/password          Change own password (gated)

  Employees (gated):
    GET    /api/employees              List roster (ordered by name)
    POST   /api/employees              Add employee
    GET    /api/employees/{id}         Get employee
    DELETE /api/employees/{id}         Remove employee (+ their vacations)
    GET    /api/employees/{id}/vacations  Their periods, newest first

  Vacations (gated):
    GET    /api/vacations              All periods with employee names
    POST   /api/vacations              Register a period
    DELETE /api/vacations/{id}         Remove a period
    GET    /api/vacations/{id}/points  Price a single period

  Ranking (gated):
    GET    /api/ranking                Recomputed ascending ranking
    GET    /api/ranking/export         xlsx download
    GET    /api/ranking/weights        Month weight reference table

  Dashboard (gated):
    GET    /api/dashboard              Totals, active and upcoming periods

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (store, calculator)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, reversed date ranges
  - 401: Missing/invalid session (from auth middleware)
  - 404: Record not found
  - 409: Conflict (duplicate username)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-manager/auth"
	"github.com/warp/vacation-manager/calendar"
	"github.com/warp/vacation-manager/export"
	"github.com/warp/vacation-manager/scoring"
	"github.com/warp/vacation-manager/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Auth  *auth.Service
	Calc  *scoring.Calculator
	Log   *logrus.Logger
}

// NewHandler creates a handler with the given dependencies.
func NewHandler(store *sqlite.Store, authService *auth.Service, calc *scoring.Calculator, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Store: store, Auth: authService, Calc: calc, Log: log}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login verifies credentials and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Store.GetUser(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user", err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.Auth.IssueToken(user.ID, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue session", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.Log.WithField("username", user.Username).Info("user logged in")

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout clears the session cookie. Tokens are stateless, so an
// outstanding Bearer token stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ChangePassword rotates the logged-in user's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := auth.ValidateNewPassword(req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, "Password too short", err)
		return
	}

	user, err := h.Store.GetUser(r.Context(), claims.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user", err)
		return
	}
	if user == nil || !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}
	if err := h.Store.UpdatePassword(r.Context(), user.Username, hash); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update password", err)
		return
	}

	h.Log.WithField("username", user.Username).Info("password changed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the roster ordered by name.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = employeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee adds an employee to the roster.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Store.CreateEmployee(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, sqlite.ErrBlankName) {
			writeError(w, http.StatusBadRequest, "Employee name must not be blank", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(*emp))
}

// DeleteEmployee removes an employee; their vacations cascade away.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, sqlite.ErrEmployeeNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}

	h.Log.WithField("employee_id", id).Info("employee deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ListEmployeeVacations returns one employee's periods, newest first.
func (h *Handler) ListEmployeeVacations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	vacations, err := h.Store.ListVacationsByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	writeJSON(w, http.StatusOK, vacationDTOs(vacations))
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns every period with its employee's name.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	vacations, err := h.Store.ListVacations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}
	writeJSON(w, http.StatusOK, vacationDTOs(vacations))
}

// CreateVacation registers a vacation period.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req CreateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dateRange, err := parseRangeRequest(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	vac, err := h.Store.CreateVacation(r.Context(), req.EmployeeID, dateRange)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "Start date must not be after end date", err)
		case errors.Is(err, sqlite.ErrEmployeeNotFound):
			writeError(w, http.StatusNotFound, "Employee not found", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create vacation", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, vacationDTO(vac))
}

// DeleteVacation removes a vacation period.
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteVacation(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, sqlite.ErrVacationNotFound) {
			writeError(w, http.StatusNotFound, "Vacation not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete vacation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetVacationPoints prices a single stored period.
func (h *Handler) GetVacationPoints(w http.ResponseWriter, r *http.Request) {
	vac, err := h.Store.GetVacation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get vacation", err)
		return
	}
	if vac == nil {
		writeError(w, http.StatusNotFound, "Vacation not found", nil)
		return
	}

	result, err := h.Calc.Compute(vac.Range())
	if err != nil {
		// Stored periods are validated on insert; a reversed range here
		// means the database was edited out of band.
		writeError(w, http.StatusInternalServerError, "Stored period is invalid", err)
		return
	}

	writeJSON(w, http.StatusOK, VacationPointsDTO{
		VacationID:   vac.ID,
		EmployeeID:   vac.EmployeeID,
		EmployeeName: vac.EmployeeName,
		StartDate:    vac.Start.String(),
		EndDate:      vac.End.String(),
		TotalDays:    result.TotalDays,
		TotalPoints:  result.TotalPoints,
		PointsPerDay: result.PointsPerDay().StringFixed(2),
		Breakdown:    monthTallyDTOs(result.Breakdown),
	})
}

// =============================================================================
// RANKING HANDLERS
// =============================================================================

// GetRanking recomputes the ranking from current data and returns it
// ascending by total points.
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.computeRanking(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute ranking", err)
		return
	}

	dtos := make([]RankingEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = RankingEntryDTO{
			Position:     i + 1,
			EmployeeID:   e.EmployeeID,
			Name:         e.Name,
			TotalDays:    e.TotalDays,
			TotalPoints:  e.TotalPoints,
			PointsPerDay: e.PointsPerDay.StringFixed(2),
			Breakdown:    monthTallyDTOs(e.Breakdown),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportRanking streams the ranking as an xlsx workbook.
func (h *Handler) ExportRanking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.computeRanking(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute ranking", err)
		return
	}

	workbook, err := export.RankingWorkbook(entries, h.Calc.Weights())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook", err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("vacation-ranking-%s.xlsx", calendar.Today())
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := workbook.Write(w); err != nil {
		h.Log.WithError(err).Error("failed to stream ranking workbook")
	}
}

// GetWeights returns the month weight reference table.
func (h *Handler) GetWeights(w http.ResponseWriter, r *http.Request) {
	weights := h.Calc.Weights()
	dtos := make([]MonthWeightDTO, 0, 12)
	for m := time.January; m <= time.December; m++ {
		dtos = append(dtos, MonthWeightDTO{
			Month:     int(m),
			MonthName: m.String(),
			Points:    weights[m],
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) computeRanking(r *http.Request) ([]scoring.RankingEntry, error) {
	ctx := r.Context()

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	periods, err := h.Store.VacationsByEmployee(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]scoring.Employee, len(employees))
	for i, e := range employees {
		roster[i] = scoring.Employee{ID: e.ID, Name: e.Name}
	}

	return h.Calc.Rank(roster, periods)
}

// =============================================================================
// DASHBOARD HANDLER
// =============================================================================

// GetDashboard returns roster totals plus active and upcoming periods.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	vacations, err := h.Store.ListVacations(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	today := calendar.Today()
	dto := DashboardDTO{
		TotalEmployees: len(employees),
		TotalVacations: len(vacations),
		Upcoming:       []UpcomingVacationDTO{},
	}

	// ListVacations is ordered by start date, so the first five future
	// periods are the next five.
	for _, vac := range vacations {
		if vac.Range().Contains(today) {
			dto.ActiveVacations++
		}
		if vac.Start.AfterOrEqual(today) && len(dto.Upcoming) < 5 {
			dto.Upcoming = append(dto.Upcoming, UpcomingVacationDTO{
				EmployeeName: vac.EmployeeName,
				StartDate:    vac.Start.String(),
				EndDate:      vac.End.String(),
				DaysUntil:    calendar.DaysBetween(today, vac.Start),
			})
		}
	}

	writeJSON(w, http.StatusOK, dto)
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func employeeDTO(e sqlite.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func vacationDTO(v sqlite.Vacation) VacationDTO {
	return VacationDTO{
		ID:           v.ID,
		EmployeeID:   v.EmployeeID,
		EmployeeName: v.EmployeeName,
		StartDate:    v.Start.String(),
		EndDate:      v.End.String(),
		Days:         v.Range().Days(),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
}

func vacationDTOs(vacations []sqlite.Vacation) []VacationDTO {
	dtos := make([]VacationDTO, len(vacations))
	for i, v := range vacations {
		dtos[i] = vacationDTO(v)
	}
	return dtos
}

// monthTallyDTOs flattens a breakdown into a slice sorted by month so
// JSON output is deterministic.
func monthTallyDTOs(breakdown map[time.Month]scoring.MonthTally) []MonthTallyDTO {
	dtos := make([]MonthTallyDTO, 0, len(breakdown))
	for month, tally := range breakdown {
		dtos = append(dtos, MonthTallyDTO{
			Month:     int(month),
			MonthName: month.String(),
			Days:      tally.Days,
			Points:    tally.Points,
		})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Month < dtos[j].Month })
	return dtos
}

func parseRangeRequest(startStr, endStr string) (calendar.DateRange, error) {
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		return calendar.DateRange{}, err
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		return calendar.DateRange{}, err
	}
	// Range validation (start <= end) happens in the store.
	return calendar.DateRange{Start: start, End: end}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	payload := map[string]string{"error": message}
	if err != nil {
		payload["details"] = err.Error()
	}
	writeJSON(w, status, payload)
}
