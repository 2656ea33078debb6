package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/logging"
)

// HTTPClient is the production Client. It is not safe for concurrent use;
// the interactive client serializes calls through user interaction.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	token   string
	sleep   sleepFunc
	logger  logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		sleep:   sleepContext,
		logger:  logger,
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }
func (c *HTTPClient) ClearToken() { c.token = "" }

// doJSON performs one request and decodes the JSON response into out (when
// out is non-nil). Transport failures wrap ErrUnavailable; non-2xx responses
// come back as *APIError, additionally wrapped with ErrUnauthorized or
// ErrRateLimited for 401/429.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		err := decodeError(resp.StatusCode, data)
		c.logger.Debug(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx body into an *APIError. Bodies that are not
// JSON (an HTML error page from a proxy, say) are detected by prefix and
// collapsed into a generic server error so raw markup never reaches the UI.
func decodeError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Error   string `json:"error"`
	}

	apiErr := &APIError{Status: status}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<") || json.Unmarshal(body, &payload) != nil {
		apiErr.Message = fmt.Sprintf("server error %d", status)
	} else {
		apiErr.Message = payload.Message
		apiErr.Code = payload.Code
		if apiErr.Code == "" {
			apiErr.Code = payload.Error
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return errors.Join(ErrUnauthorized, apiErr)
	case http.StatusTooManyRequests:
		return errors.Join(ErrRateLimited, apiErr)
	}
	return apiErr
}

// --- auth ---

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/verifyOTP", map[string]string{"email": email, "otp": code}, nil)
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/resendOTP", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/forgot", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) VerifyResetOTP(ctx context.Context, email, otp string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/verify-otp", map[string]string{"email": email, "otp": otp}, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.doJSON(ctx, http.MethodPut, "/auth/password/reset", map[string]string{"email": email, "password": newPassword}, nil)
}

func (c *HTTPClient) ResendResetOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/resend-otp", map[string]string{"email": email}, nil)
}

// --- reports ---

func (c *HTTPClient) ListReports(ctx context.Context, page, limit int) (*models.ReportPage, error) {
	var out models.ReportPage
	path := fmt.Sprintf("/report?page=%d&limit=%d", page, limit)

	err := retryOn429(ctx, c.sleep, func(ctx context.Context) error {
		out = models.ReportPage{}
		return c.doJSON(ctx, http.MethodGet, path, nil, &out)
	})
	if err != nil {
		return nil, err
	}
	if out.Page == 0 {
		out.Page = page
	}
	return &out, nil
}

func (c *HTTPClient) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var out models.Report
	if err := c.doJSON(ctx, http.MethodGet, "/report/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateReport(ctx context.Context, draft *ReportDraft) (*models.Report, error) {
	var out struct {
		Report *models.Report `json:"report"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/report", draft, &out); err != nil {
		return nil, err
	}
	return out.Report, nil
}

func (c *HTTPClient) ClassifyImage(ctx context.Context, imageBase64 string) (*models.Classification, error) {
	var out struct {
		Classification *models.Classification `json:"classification"`
	}
	body := map[string]string{"image": imageBase64}
	if err := c.doJSON(ctx, http.MethodPost, "/classify/test", body, &out); err != nil {
		return nil, err
	}
	return out.Classification, nil
}

func (c *HTTPClient) TopReporters(ctx context.Context) ([]*models.TopReporter, error) {
	var out []*models.TopReporter
	if err := c.doJSON(ctx, http.MethodGet, "/users/top-reporters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- supervisor ---

func (c *HTTPClient) SupervisorQueue(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	var out []*models.Report
	if err := c.doJSON(ctx, http.MethodGet, "/supervisor/reports/"+string(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SupervisorReport(ctx context.Context, id string) (*models.Report, error) {
	var out models.Report
	if err := c.doJSON(ctx, http.MethodGet, "/supervisor/reports/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, note string) error {
	body := map[string]string{"status": string(status), "note": note}
	return c.doJSON(ctx, http.MethodPut, "/supervisor/reports/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *HTTPClient) ResolveReport(ctx context.Context, id string, resolvedImage, note string) error {
	body := map[string]string{"resolvedImage": resolvedImage, "resolvedNote": note}
	return c.doJSON(ctx, http.MethodPut, "/supervisor/reports/"+url.PathEscape(id)+"/resolve", body, nil)
}

func (c *HTTPClient) SupervisorProfile(ctx context.Context) (*models.SupervisorProfile, error) {
	var out models.SupervisorProfile
	if err := c.doJSON(ctx, http.MethodGet, "/supervisor/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- workers & attendance ---

func (c *HTTPClient) ListWorkers(ctx context.Context) ([]*models.Worker, error) {
	var out []*models.Worker
	if err := c.doJSON(ctx, http.MethodGet, "/workers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	var out models.Worker
	if err := c.doJSON(ctx, http.MethodGet, "/workers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddWorker(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	var out models.Worker
	if err := c.doJSON(ctx, http.MethodPost, "/workers", w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteWorker(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/workers/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) MarkAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return c.doJSON(ctx, http.MethodPost, "/attendance", rec, nil)
}

func (c *HTTPClient) AttendanceByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	if err := c.doJSON(ctx, http.MethodGet, "/attendance/by-date?date="+url.QueryEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) WorkerAttendance(ctx context.Context, workerID string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	if err := c.doJSON(ctx, http.MethodGet, "/attendance/worker/"+url.PathEscape(workerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) WorkerAttendanceByMonth(ctx context.Context, workerID string, month, year int) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	path := fmt.Sprintf("/attendance/worker/%s/by-date?month=%d&year=%d", url.PathEscape(workerID), month, year)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
