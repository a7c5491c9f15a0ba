package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-manager/calendar"
	"github.com/warp/vacation-manager/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustRange(t *testing.T, start, end string) calendar.DateRange {
	t.Helper()
	s, err := calendar.ParseDate(start)
	require.NoError(t, err)
	e, err := calendar.ParseDate(end)
	require.NoError(t, err)
	return calendar.DateRange{Start: s, End: e}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployeeCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	carol, err := store.CreateEmployee(ctx, "Carol")
	require.NoError(t, err)
	alice, err := store.CreateEmployee(ctx, "  Alice  ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.Name)

	// Listed by name, not insertion order
	employees, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Alice", employees[0].Name)
	assert.Equal(t, "Carol", employees[1].Name)

	got, err := store.GetEmployee(ctx, carol.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Carol", got.Name)

	missing, err := store.GetEmployee(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.DeleteEmployee(ctx, carol.ID))
	assert.ErrorIs(t, store.DeleteEmployee(ctx, carol.ID), sqlite.ErrEmployeeNotFound)
}

func TestCreateEmployeeRejectsBlankName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateEmployee(context.Background(), "   ")
	assert.ErrorIs(t, err, sqlite.ErrBlankName)
}

// =============================================================================
// VACATIONS
// =============================================================================

func TestVacationCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp, err := store.CreateEmployee(ctx, "Alice")
	require.NoError(t, err)

	vac, err := store.CreateVacation(ctx, emp.ID, mustRange(t, "2024-05-05", "2024-05-10"))
	require.NoError(t, err)
	assert.Equal(t, emp.ID, vac.EmployeeID)
	assert.Equal(t, 6, vac.Range().Days())

	got, err := store.GetVacation(ctx, vac.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.EmployeeName)
	assert.Equal(t, "2024-05-05", got.Start.String())
	assert.Equal(t, "2024-05-10", got.End.String())

	require.NoError(t, store.DeleteVacation(ctx, vac.ID))
	assert.ErrorIs(t, store.DeleteVacation(ctx, vac.ID), sqlite.ErrVacationNotFound)
}

func TestCreateVacationRejectsReversedRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp, err := store.CreateEmployee(ctx, "Alice")
	require.NoError(t, err)

	_, err = store.CreateVacation(ctx, emp.ID, mustRange(t, "2024-05-10", "2024-05-05"))
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	// Nothing was stored
	vacations, err := store.ListVacations(ctx)
	require.NoError(t, err)
	assert.Empty(t, vacations)
}

func TestCreateVacationRejectsUnknownEmployee(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateVacation(context.Background(), "no-such-id",
		mustRange(t, "2024-05-05", "2024-05-10"))
	assert.ErrorIs(t, err, sqlite.ErrEmployeeNotFound)
}

func TestListVacationsOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.CreateEmployee(ctx, "Alice")
	require.NoError(t, err)
	bob, err := store.CreateEmployee(ctx, "Bob")
	require.NoError(t, err)

	_, err = store.CreateVacation(ctx, bob.ID, mustRange(t, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-03-01", "2024-03-05"))
	require.NoError(t, err)
	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-07-01", "2024-07-03"))
	require.NoError(t, err)

	vacations, err := store.ListVacations(ctx)
	require.NoError(t, err)
	require.Len(t, vacations, 3)

	// Ordered by start date, ties by employee name
	assert.Equal(t, "2024-03-01", vacations[0].Start.String())
	assert.Equal(t, "Alice", vacations[1].EmployeeName)
	assert.Equal(t, "Bob", vacations[2].EmployeeName)

	// Per-employee list is newest first
	aliceVacations, err := store.ListVacationsByEmployee(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceVacations, 2)
	assert.Equal(t, "2024-07-01", aliceVacations[0].Start.String())
}

func TestDeleteEmployeeCascadesVacations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.CreateEmployee(ctx, "Alice")
	require.NoError(t, err)
	bob, err := store.CreateEmployee(ctx, "Bob")
	require.NoError(t, err)

	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-05-01", "2024-05-10"))
	require.NoError(t, err)
	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-08-01", "2024-08-05"))
	require.NoError(t, err)
	_, err = store.CreateVacation(ctx, bob.ID, mustRange(t, "2024-06-01", "2024-06-05"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteEmployee(ctx, alice.ID))

	vacations, err := store.ListVacations(ctx)
	require.NoError(t, err)
	require.Len(t, vacations, 1)
	assert.Equal(t, bob.ID, vacations[0].EmployeeID)
}

func TestVacationsByEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.CreateEmployee(ctx, "Alice")
	require.NoError(t, err)
	bob, err := store.CreateEmployee(ctx, "Bob")
	require.NoError(t, err)

	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-05-01", "2024-05-10"))
	require.NoError(t, err)
	_, err = store.CreateVacation(ctx, alice.ID, mustRange(t, "2024-12-28", "2025-01-03"))
	require.NoError(t, err)

	periods, err := store.VacationsByEmployee(ctx)
	require.NoError(t, err)

	assert.Len(t, periods[alice.ID], 2)
	assert.Empty(t, periods[bob.ID])
}

// =============================================================================
// USERS
// =============================================================================

func TestUserAccounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "admin", "hash-1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	_, err = store.CreateUser(ctx, "admin", "hash-2")
	assert.ErrorIs(t, err, sqlite.ErrUsernameTaken)

	got, err := store.GetUser(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-1", got.PasswordHash)

	missing, err := store.GetUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.UpdatePassword(ctx, "admin", "hash-3"))
	got, err = store.GetUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-3", got.PasswordHash)

	assert.ErrorIs(t, store.UpdatePassword(ctx, "nobody", "hash"), sqlite.ErrUserNotFound)
}

func TestEnsureUserKeepsExistingAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureUser(ctx, "admin", "bootstrap-hash"))

	// The user changed their password; a restart must not reset it.
	require.NoError(t, store.UpdatePassword(ctx, "admin", "rotated-hash"))
	require.NoError(t, store.EnsureUser(ctx, "admin", "bootstrap-hash"))

	user, err := store.GetUser(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "rotated-hash", user.PasswordHash)
}

func TestUserCreatedAtRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	user, err := store.CreateUser(ctx, "admin", "hash")
	require.NoError(t, err)

	got, err := store.GetUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.CreatedAt.After(before))
}
