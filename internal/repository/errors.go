package repository

import "errors"

// Sentinel errors shared by every storage backend so the service layer and
// the contract tests treat the database-backed and blob-backed repositories
// identically.
var (
	// ErrNotFound indicates the target record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail indicates a user with the given email already exists.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrBatchFull indicates the batch has no unbooked seats left.
	ErrBatchFull = errors.New("no seats available")

	// ErrDuplicateBooking indicates the student already holds a booking for
	// the batch.
	ErrDuplicateBooking = errors.New("batch already booked by student")
)
