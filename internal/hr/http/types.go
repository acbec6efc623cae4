package http

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/mys-constructora/backoffice/config"
	"github.com/mys-constructora/backoffice/internal/hr/service"
)

// Handler serves the worker portal functions and the admin HR endpoints.
type Handler struct {
	attendance *service.AttendanceService
	employees  *service.EmployeeService
	apps       *service.ApplicationService
	tokens     config.PortalConfig
}

func New(attendance *service.AttendanceService, employees *service.EmployeeService,
	apps *service.ApplicationService, tokens config.PortalConfig) *Handler {
	return &Handler{attendance: attendance, employees: employees, apps: apps, tokens: tokens}
}

// coord accepts a JSON number or a numeric string. Anything else leaves it unset.
type coord struct {
	v *float64
}

func (c *coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var s string
	if len(b) > 0 && b[0] == '"' {
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
	} else {
		s = string(b)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		c.v = &f
	}
	return nil
}

type markAttendanceRequest struct {
	OrgID       *string `json:"orgId"`
	WorkerID    string  `json:"workerId"`
	Lat         coord   `json:"lat"`
	Lng         coord   `json:"lng"`
	Method      string  `json:"method"`
	DeviceLabel *string `json:"deviceLabel"`
	Note        *string `json:"note"`
}

type statusRequest struct {
	Status string `json:"status"`
}
