package sqlite

import "errors"

// Sentinel errors returned by the store. Match with errors.Is.
var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrVacationNotFound is returned when a referenced vacation doesn't exist.
	ErrVacationNotFound = errors.New("vacation not found")

	// ErrUserNotFound is returned when a referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrBlankName is returned when an employee name is empty after trimming.
	ErrBlankName = errors.New("employee name must not be blank")

	// ErrBlankUsername is returned when a username is empty after trimming.
	ErrBlankUsername = errors.New("username must not be blank")

	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
)
