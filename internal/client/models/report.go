package models

import "time"

// ReportStatus is the lifecycle state a report moves through on the
// supervisor side.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in-progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
	StatusOutOfScope ReportStatus = "out-of-scope"
)

// Location is a latitude/longitude pair plus the free-text address the
// reporter entered.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Classification is the AI waste-classifier verdict attached to a report.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	IsWaste    bool    `json:"isWaste"`
}

// Report is a waste report as returned by the feed and detail endpoints.
// Image holds a URL on reads and a base64 data payload on submission.
type Report struct {
	ID             string          `json:"_id"`
	Title          string          `json:"title"`
	Details        string          `json:"details"`
	Image          string          `json:"image"`
	Location       *Location       `json:"location,omitempty"`
	Status         ReportStatus    `json:"status"`
	Classification *Classification `json:"classification,omitempty"`
	User           *User           `json:"user,omitempty"`
	ResolvedImage  string          `json:"resolvedImage,omitempty"`
	ResolvedNote   string          `json:"resolvedNote,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}

// ReportPage is one page of the feed, with the total page count the client
// uses to decide whether more pages remain.
type ReportPage struct {
	Reports    []*Report `json:"reports"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}
