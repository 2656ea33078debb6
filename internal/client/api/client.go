// Package api is the JSON-over-HTTPS client of the remote GreenSnap backend.
// It owns transport concerns only: request shaping, bearer auth, error
// decoding, and retry-on-429 for the feed. Session state lives elsewhere.
package api

import (
	"context"

	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

// AuthResponse is the body of a successful register or login call.
type AuthResponse struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message,omitempty"`
}

// ReportDraft is a report submission payload. Image carries base64 data.
type ReportDraft struct {
	Title          string                 `json:"title"`
	Details        string                 `json:"details"`
	Image          string                 `json:"image"`
	Location       *models.Location       `json:"location,omitempty"`
	Classification *models.Classification `json:"classification,omitempty"`
}

// Client is the remote API surface the application layers depend on.
// Implementations hold the bearer token set via SetToken and attach it to
// every request that needs auth.
type Client interface {
	SetToken(token string)
	ClearToken()

	// Auth flows. None of these require a prior token except Logout.
	Register(ctx context.Context, username, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	ResendResetOTP(ctx context.Context, email string) error

	// Reporter surface.
	ListReports(ctx context.Context, page, limit int) (*models.ReportPage, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	CreateReport(ctx context.Context, draft *ReportDraft) (*models.Report, error)
	ClassifyImage(ctx context.Context, imageBase64 string) (*models.Classification, error)
	TopReporters(ctx context.Context) ([]*models.TopReporter, error)

	// Supervisor surface.
	SupervisorQueue(ctx context.Context, status models.ReportStatus) ([]*models.Report, error)
	SupervisorReport(ctx context.Context, id string) (*models.Report, error)
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, note string) error
	ResolveReport(ctx context.Context, id string, resolvedImage, note string) error
	SupervisorProfile(ctx context.Context) (*models.SupervisorProfile, error)

	// Worker and attendance management.
	ListWorkers(ctx context.Context) ([]*models.Worker, error)
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	AddWorker(ctx context.Context, w *models.Worker) (*models.Worker, error)
	DeleteWorker(ctx context.Context, id string) error
	MarkAttendance(ctx context.Context, rec *models.AttendanceRecord) error
	AttendanceByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error)
	WorkerAttendance(ctx context.Context, workerID string) ([]*models.AttendanceRecord, error)
	WorkerAttendanceByMonth(ctx context.Context, workerID string, month, year int) ([]*models.AttendanceRecord, error)
}
