package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/filex"
)

// feedLimit is the page size requested from the feed endpoint.
const feedLimit = 10

// Feed shows the first page of the report feed. Use More for later pages.
func (a *App) Feed(ctx context.Context) error {
	return a.showFeedPage(ctx, 1)
}

// More continues the feed from where Feed (or a previous More) left off.
func (a *App) More(ctx context.Context) error {
	if a.feedPage == 0 {
		return a.showFeedPage(ctx, 1)
	}
	return a.showFeedPage(ctx, a.feedPage+1)
}

func (a *App) showFeedPage(ctx context.Context, page int) error {
	out, err := a.api.ListReports(ctx, page, feedLimit)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	a.feedPage = out.Page

	if len(out.Reports) == 0 {
		fmt.Println("No reports on this page.")
		return nil
	}
	for _, r := range out.Reports {
		fmt.Println(reportLine(r))
	}
	if out.Page < out.TotalPages {
		fmt.Printf("Page %d of %d. Type 'more' for the next page.\n", out.Page, out.TotalPages)
	} else {
		fmt.Printf("Page %d of %d.\n", out.Page, out.TotalPages)
	}
	return nil
}

// Show fetches and displays a single report by ID.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter report id", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.api.GetReport(ctx, id)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	printReport(r)
	return nil
}

// Report submits a new waste report: collect the fields, read the image,
// run it through classification, and create the report.
func (a *App) Report(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		fmt.Println("Title is required.")
		return nil
	}

	details, err := getMultiline(a.reader, "Describe the waste problem:", os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Enter photo path", os.Stdout)
	if err != nil {
		return err
	}
	image, err := filex.ReadImageBase64(imagePath)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	location, err := a.promptLocation()
	if err != nil {
		return err
	}

	cls, err := a.api.ClassifyImage(ctx, image)
	if err != nil {
		// Classification is advisory; the server re-checks on submit.
		a.logger.Warn(ctx, "classification failed", "error", err)
	} else {
		fmt.Printf("Looks like: %s (%.0f%% confidence)\n", cls.Label, cls.Confidence*100)
	}

	draft := &api.ReportDraft{
		Title:          title,
		Details:        details,
		Image:          image,
		Location:       location,
		Classification: cls,
	}

	r, err := a.api.CreateReport(ctx, draft)
	if err != nil {
		switch api.Classify(err) {
		case api.KindNotWaste:
			fmt.Println("The photo does not appear to show waste. Try a clearer picture of the problem.")
		case api.KindLowConfidence:
			fmt.Println("The photo could not be classified confidently. Try a closer, well-lit picture.")
		default:
			a.reportError(ctx, err)
		}
		return err
	}

	fmt.Printf("Report submitted: %s\n", r.ID)
	return nil
}

// Top prints the reporter leaderboard.
func (a *App) Top(ctx context.Context) error {
	top, err := a.api.TopReporters(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	for i, t := range top {
		fmt.Printf("%2d. %-20s %d reports\n", i+1, t.Username, t.ReportCount)
	}
	return nil
}

// Profile prints the signed-in account. Supervisors get their extended
// profile from the supervisor endpoint.
func (a *App) Profile(ctx context.Context) error {
	s := a.session.Snapshot()
	if s.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	if s.User.IsSupervisor() {
		p, err := a.api.SupervisorProfile(ctx)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}
		fmt.Printf("Supervisor: %s <%s>\n", p.User.Username, p.User.Email)
		fmt.Printf("Pending: %d  In progress: %d  Resolved: %d  Rejected: %d\n",
			p.PendingCount, p.InProgress, p.ResolvedCount, p.RejectedCount)
		fmt.Printf("Workers: %d\n", p.WorkerCount)
		return nil
	}

	fmt.Printf("User: %s <%s>\n", s.User.Username, s.User.Email)
	fmt.Printf("Role: %s\n", s.User.Role)
	return nil
}

// promptLocation reads an optional "lat,lng" pair. Empty input means the
// report carries no location.
func (a *App) promptLocation() (*models.Location, error) {
	raw, err := getSimpleText(a.reader, "Enter location as lat,lng (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		fmt.Println("Ignoring location: expected lat,lng")
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		fmt.Println("Ignoring location: could not parse coordinates")
		return nil, nil
	}
	return &models.Location{Latitude: lat, Longitude: lng}, nil
}

func reportLine(r *models.Report) string {
	return fmt.Sprintf("%s  [%s]  %s", r.ID, r.Status, r.Title)
}

func printReport(r *models.Report) {
	fmt.Printf("Title: %s\n", r.Title)
	fmt.Printf("Status: %s\n", r.Status)
	if r.Details != "" {
		fmt.Printf("Details: %s\n", r.Details)
	}
	if r.Location != nil {
		fmt.Printf("Location: %f, %f\n", r.Location.Latitude, r.Location.Longitude)
	}
	if r.Classification != nil {
		fmt.Printf("Classified as: %s (%.0f%% confidence)\n", r.Classification.Label, r.Classification.Confidence*100)
	}
	if !r.CreatedAt.IsZero() {
		fmt.Printf("Reported: %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
