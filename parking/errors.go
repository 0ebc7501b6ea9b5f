package parking

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrFineNotFound       = errors.New("fine not found")
	ErrZoneNotFound       = errors.New("zone not found")
	ErrTicketInactive     = errors.New("ticket is no longer active")
	ErrAlreadyPaid        = errors.New("already paid")
	ErrCancelWindowClosed = errors.New("cancellation window has closed")
	ErrExtensionLimit     = errors.New("extension limit reached")
	ErrConflict           = errors.New("ticket was modified concurrently, retry")
	ErrVehicleRequired    = errors.New("vehicle number is required")
	ErrZoneRequired       = errors.New("parking zone is required")
)
