package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/filex"
)

// queueStatuses are the statuses a supervisor can list, in the order the
// dashboard presents them.
var queueStatuses = []models.ReportStatus{
	models.StatusPending,
	models.StatusInProgress,
	models.StatusResolved,
	models.StatusRejected,
	models.StatusOutOfScope,
}

// Queue lists reports in one of the supervisor queues.
func (a *App) Queue(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Enter status (pending, in-progress, resolved, rejected, out-of-scope)", os.Stdout)
	if err != nil {
		return err
	}
	status, ok := parseStatus(raw)
	if !ok {
		fmt.Println("Unknown status:", raw)
		return nil
	}

	reports, err := a.api.SupervisorQueue(ctx, status)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if len(reports) == 0 {
		fmt.Printf("No %s reports.\n", status)
		return nil
	}
	for _, r := range reports {
		fmt.Println(reportLine(r))
	}
	return nil
}

// Review opens a report and lets the supervisor move it through its
// lifecycle: change the status with a note, or resolve it with an
// after-cleanup photo.
func (a *App) Review(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter report id", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.api.SupervisorReport(ctx, id)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	printReport(r)

	action, err := getSimpleText(a.reader, "Action: status, resolve or skip", os.Stdout)
	if err != nil {
		return err
	}

	switch action {
	case "status":
		return a.updateStatus(ctx, id)
	case "resolve":
		return a.resolve(ctx, id)
	case "skip", "":
		return nil
	default:
		fmt.Println("Unknown action:", action)
		return nil
	}
}

func (a *App) updateStatus(ctx context.Context, id string) error {
	raw, err := getSimpleText(a.reader, "Enter new status", os.Stdout)
	if err != nil {
		return err
	}
	status, ok := parseStatus(raw)
	if !ok {
		fmt.Println("Unknown status:", raw)
		return nil
	}

	note, err := getSimpleText(a.reader, "Enter note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.UpdateReportStatus(ctx, id, status, note); err != nil {
		a.reportError(ctx, err)
		return err
	}
	fmt.Printf("Report %s is now %s.\n", id, status)
	return nil
}

func (a *App) resolve(ctx context.Context, id string) error {
	imagePath, err := getSimpleText(a.reader, "Enter after-cleanup photo path", os.Stdout)
	if err != nil {
		return err
	}
	image, err := filex.ReadImageBase64(imagePath)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	note, err := getSimpleText(a.reader, "Enter resolution note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.ResolveReport(ctx, id, image, note); err != nil {
		a.reportError(ctx, err)
		return err
	}
	fmt.Printf("Report %s resolved.\n", id)
	return nil
}

func parseStatus(raw string) (models.ReportStatus, bool) {
	for _, s := range queueStatuses {
		if raw == string(s) {
			return s, true
		}
	}
	return "", false
}
