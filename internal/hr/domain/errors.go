package domain

import "errors"

// Error texts are shown verbatim by the worker portal and the HR screens.
var (
	ErrWorkerIDRequired        = errors.New("workerId is required")
	ErrLatLngRequired          = errors.New("lat/lng are required")
	ErrInvalidMethod           = errors.New("Invalid method")
	ErrInvalidOrg              = errors.New("Invalid org")
	ErrEmergencyNeedsAdmin     = errors.New("EMERGENCY requires admin token")
	ErrOutsideWindow           = errors.New("Outside attendance window (07:00-07:30)")
	ErrWorkerNotFound          = errors.New("Worker ID not found")
	ErrEmployeeInactive        = errors.New("Employee inactive")
	ErrAlreadyMarked           = errors.New("Already marked today")
	ErrNameRequired            = errors.New("name is required")
	ErrInvalidDPI              = errors.New("dpi must be 13 digits")
	ErrPositionAppliedRequired = errors.New("positionApplied is required")
	ErrInvalidNameDPI          = errors.New("Invalid name/dpi")
	ErrPositionRequired        = errors.New("position is required")
	ErrWorkerIDExists          = errors.New("Worker ID already exists")
	ErrInvalidStatus           = errors.New("Invalid status")
	ErrEmployeeNotFound        = errors.New("Employee not found")
	ErrApplicationNotFound     = errors.New("Application not found")
)
