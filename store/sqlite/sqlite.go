/*
Package sqlite provides the SQLite-backed record store.

PURPOSE:
  Persists the three tables the application owns: users (login
  accounts), employees, and vacations. Scores are derived values and
  are deliberately NOT stored here - the ranking is recomputed from the
  vacations table on every read.

KEY TABLES:
  users:      login accounts with bcrypt password hashes
  employees:  the roster being ranked
  vacations:  inclusive [start_date, end_date] periods per employee

CASCADE DELETE:
  vacations.employee_id references employees(id) ON DELETE CASCADE, so
  removing an employee removes their vacation periods in the same
  statement. Foreign keys are switched on in the DSN.

VALIDATION:
  A vacation period with start_date > end_date is rejected before the
  INSERT and never stored. Blank employee names are rejected the same
  way.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/vacation.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - scoring: consumes ListEmployees + VacationsByEmployee
  - api/handlers.go: the only caller of this package
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/vacation-manager/calendar"
)

// Store is the SQLite-backed record store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Login accounts
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- The roster being ranked
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Vacation periods, inclusive on both ends, stored as YYYY-MM-DD
	CREATE TABLE IF NOT EXISTS vacations (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (employee_id) REFERENCES employees (id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_vacations_employee
		ON vacations(employee_id);
	CREATE INDEX IF NOT EXISTS idx_vacations_start_date
		ON vacations(start_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USER STORE
// =============================================================================

// User is a login account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a login account with an already-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrBlankUsername
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by username. Returns (nil, nil) when absent.
func (s *Store) GetUser(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user User
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &user, nil
}

// UpdatePassword replaces a user's password hash.
func (s *Store) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE username = ?",
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EnsureUser creates the account if no user with that username exists.
// Used to bootstrap the default admin on startup; an existing account
// (and its possibly-changed password) is left untouched.
func (s *Store) EnsureUser(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), username, passwordHash, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", username, err)
	}
	return nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// Employee is one roster member.
type Employee struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CreateEmployee inserts a new employee. Blank names are rejected.
func (s *Store) CreateEmployee(ctx context.Context, name string) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Employee{}, ErrBlankName
	}

	emp := Employee{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, created_at) VALUES (?, ?, ?)",
		emp.ID, emp.Name, emp.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetEmployee retrieves an employee by ID. Returns (nil, nil) when absent.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var emp Employee
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM employees WHERE id = ?",
		id,
	).Scan(&emp.ID, &emp.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		var createdAt string
		if err := rows.Scan(&emp.ID, &emp.Name, &createdAt); err != nil {
			return nil, err
		}
		emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee and, via cascade, their vacations.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// =============================================================================
// VACATION STORE
// =============================================================================

// Vacation is one inclusive vacation period. EmployeeName is populated
// by queries that join the employees table.
type Vacation struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Start        calendar.Date
	End          calendar.Date
	CreatedAt    time.Time
}

// Range returns the period as a DateRange.
func (v Vacation) Range() calendar.DateRange {
	return calendar.DateRange{Start: v.Start, End: v.End}
}

// CreateVacation inserts a vacation period for an employee. The range
// is validated first: start > end is rejected and never stored.
func (s *Store) CreateVacation(ctx context.Context, employeeID string, r calendar.DateRange) (Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.Validate(); err != nil {
		return Vacation{}, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE id = ?", employeeID,
	).Scan(&count)
	if err != nil {
		return Vacation{}, err
	}
	if count == 0 {
		return Vacation{}, ErrEmployeeNotFound
	}

	vac := Vacation{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Start:      r.Start,
		End:        r.End,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO vacations (id, employee_id, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?)",
		vac.ID, vac.EmployeeID, vac.Start.String(), vac.End.String(),
		vac.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Vacation{}, fmt.Errorf("failed to create vacation: %w", err)
	}

	return vac, nil
}

// GetVacation retrieves a vacation with its employee's name.
// Returns (nil, nil) when absent.
func (s *Store) GetVacation(ctx context.Context, id string) (*Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT v.id, v.employee_id, e.name, v.start_date, v.end_date, v.created_at
		FROM vacations v
		JOIN employees e ON v.employee_id = e.id
		WHERE v.id = ?
	`

	vacations, err := s.queryVacations(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(vacations) == 0 {
		return nil, nil
	}
	return &vacations[0], nil
}

// ListVacations returns all vacations with employee names, earliest
// start first, then by employee name.
func (s *Store) ListVacations(ctx context.Context) ([]Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT v.id, v.employee_id, e.name, v.start_date, v.end_date, v.created_at
		FROM vacations v
		JOIN employees e ON v.employee_id = e.id
		ORDER BY v.start_date ASC, e.name ASC
	`

	return s.queryVacations(ctx, query)
}

// ListVacationsByEmployee returns one employee's vacations, newest first.
func (s *Store) ListVacationsByEmployee(ctx context.Context, employeeID string) ([]Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT v.id, v.employee_id, e.name, v.start_date, v.end_date, v.created_at
		FROM vacations v
		JOIN employees e ON v.employee_id = e.id
		WHERE v.employee_id = ?
		ORDER BY v.start_date DESC
	`

	return s.queryVacations(ctx, query, employeeID)
}

// VacationsByEmployee returns every stored period keyed by employee id,
// in the shape the ranking aggregator consumes.
func (s *Store) VacationsByEmployee(ctx context.Context) (map[string][]calendar.DateRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id, start_date, end_date FROM vacations",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make(map[string][]calendar.DateRange)
	for rows.Next() {
		var employeeID, startStr, endStr string
		if err := rows.Scan(&employeeID, &startStr, &endStr); err != nil {
			return nil, err
		}

		r, err := parseRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		periods[employeeID] = append(periods[employeeID], r)
	}
	return periods, rows.Err()
}

// DeleteVacation removes a vacation period.
func (s *Store) DeleteVacation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM vacations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrVacationNotFound
	}
	return nil
}

func (s *Store) queryVacations(ctx context.Context, query string, args ...any) ([]Vacation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	var vacations []Vacation
	for rows.Next() {
		var vac Vacation
		var startStr, endStr, createdAt string
		if err := rows.Scan(&vac.ID, &vac.EmployeeID, &vac.EmployeeName,
			&startStr, &endStr, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}

		r, err := parseRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		vac.Start = r.Start
		vac.End = r.End
		vac.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		vacations = append(vacations, vac)
	}
	return vacations, rows.Err()
}

// Helper functions

func parseRange(startStr, endStr string) (calendar.DateRange, error) {
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		return calendar.DateRange{}, fmt.Errorf("corrupt start_date: %w", err)
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		return calendar.DateRange{}, fmt.Errorf("corrupt end_date: %w", err)
	}
	return calendar.DateRange{Start: start, End: end}, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
