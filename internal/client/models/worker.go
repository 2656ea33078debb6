package models

import "time"

// Worker is a field worker managed by a supervisor.
type Worker struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Area      string    `json:"area,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AttendanceStatus is a single day's mark for a worker.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// AttendanceRecord is one attendance entry as stored by the backend.
type AttendanceRecord struct {
	ID       string           `json:"_id"`
	WorkerID string           `json:"workerId"`
	Date     string           `json:"date"` // YYYY-MM-DD, backend convention
	Status   AttendanceStatus `json:"status"`
}

// SupervisorProfile is the aggregate the dashboard and analytics screens
// render: the supervisor account plus queue counters.
type SupervisorProfile struct {
	User          *User `json:"user"`
	PendingCount  int   `json:"pendingCount"`
	InProgress    int   `json:"inProgressCount"`
	ResolvedCount int   `json:"resolvedCount"`
	RejectedCount int   `json:"rejectedCount"`
	WorkerCount   int   `json:"workerCount"`
}
