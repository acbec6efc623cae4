package domain

import (
	"encoding/json"
	"time"
)

// DPILength is the length of a Guatemalan personal ID number.
const DPILength = 13

// DateLayout is the wire and storage format of attendance days.
const DateLayout = "2006-01-02"

// HistoryDays is how far back the admin employee list reports attendance.
const HistoryDays = 14

// Attendance methods.
const (
	MethodSelf      = "SELF"
	MethodEmergency = "EMERGENCY"
)

// Employee statuses.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusFired    = "FIRED"
)

// Application statuses as stored.
const (
	AppPending  = "PENDING"
	AppApproved = "APPROVED"
	AppRejected = "REJECTED"
)

// Application statuses as shown in the UI.
const (
	AppUIAccepted = "ACCEPTED"
	AppUIRejected = "REJECTED"
)

// SourcePortalContract tags applications sent from the public portal.
const SourcePortalContract = "PORTAL_CONTRACT"

// EmployeeRow is an employees table row.
type EmployeeRow struct {
	ID                 string
	OrgID              string
	WorkerID           string
	Name               string
	Address            string
	Phone              *string
	DPI                *string
	Position           string
	DailySalary        float64
	Experience         string
	Status             string
	IsContractAccepted bool
	CreatedAt          time.Time
}

// AttendanceRow is an attendance_records row.
type AttendanceRow struct {
	ID          string
	OrgID       string
	EmployeeID  string
	Day         string
	Method      string
	Lat         *float64
	Lng         *float64
	DeviceLabel *string
	Note        *string
}

// AttendanceRecord is one day of attendance as the UI sees it.
type AttendanceRecord struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Method string  `json:"method"`
}

// Employee is the admin view of a worker.
type Employee struct {
	ID                 string             `json:"id"`
	WorkerID           string             `json:"workerId"`
	Name               string             `json:"name"`
	Address            string             `json:"address"`
	Phone              string             `json:"phone"`
	DPI                string             `json:"dpi"`
	Position           string             `json:"position"`
	Salary             float64            `json:"salary"`
	Experience         string             `json:"experience"`
	Status             string             `json:"status"`
	AttendanceStatus   string             `json:"attendanceStatus,omitempty"`
	LastAttendance     *AttendanceRecord  `json:"lastAttendance,omitempty"`
	AttendanceHistory  []AttendanceRecord `json:"attendanceHistory"`
	HiringDate         string             `json:"hiringDate"`
	IsContractAccepted bool               `json:"isContractAccepted"`
}

// ApplicationRow is a candidate_applications row.
type ApplicationRow struct {
	ID              string
	OrgID           string
	Name            string
	Phone           *string
	DPI             string
	Experience      *string
	PositionApplied string
	Status          string
	ContractData    json.RawMessage
	Source          string
	Meta            json.RawMessage
	SubmittedAt     time.Time
}

// Application is the admin view of a candidate application.
type Application struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	DPI             string `json:"dpi"`
	Experience      string `json:"experience"`
	PositionApplied string `json:"positionApplied"`
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
}

// StatusToUI maps a stored application status to the UI vocabulary.
func StatusToUI(s string) string {
	if s == AppApproved {
		return AppUIAccepted
	}
	return s
}

// StatusFromUI maps an admin decision to the stored status.
func StatusFromUI(s string) (string, bool) {
	switch s {
	case AppUIAccepted:
		return AppApproved, true
	case AppUIRejected:
		return AppRejected, true
	default:
		return "", false
	}
}

// ValidEmployeeStatus reports whether s can be stored on an employee.
func ValidEmployeeStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusFired
}
