package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

// Workers lists the supervisor's field workers.
func (a *App) Workers(ctx context.Context) error {
	workers, err := a.api.ListWorkers(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if len(workers) == 0 {
		fmt.Println("No workers yet. Use 'addworker' to register one.")
		return nil
	}
	for _, w := range workers {
		fmt.Printf("%s  %-20s %-14s %s\n", w.ID, w.Name, w.Phone, w.Area)
	}
	return nil
}

// AddWorker registers a new field worker.
func (a *App) AddWorker(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter worker name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println("Name is required.")
		return nil
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	area, err := getSimpleText(a.reader, "Enter area (optional)", os.Stdout)
	if err != nil {
		return err
	}

	w, err := a.api.AddWorker(ctx, &models.Worker{Name: name, Phone: phone, Area: area})
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	fmt.Printf("Worker added: %s\n", w.ID)
	return nil
}

// DeleteWorker removes a worker by ID.
func (a *App) DeleteWorker(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter worker id to remove", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteWorker(ctx, id); err != nil {
		a.reportError(ctx, err)
		return err
	}
	fmt.Println("Worker removed.")
	return nil
}

// MarkAttendance records one worker's attendance for a date.
func (a *App) MarkAttendance(ctx context.Context) error {
	workerID, err := getSimpleText(a.reader, "Enter worker id", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Enter status (present, absent, leave)", os.Stdout)
	if err != nil {
		return err
	}
	status, ok := parseAttendance(raw)
	if !ok {
		fmt.Println("Unknown status:", raw)
		return nil
	}

	rec := &models.AttendanceRecord{WorkerID: workerID, Date: date, Status: status}
	if err := a.api.MarkAttendance(ctx, rec); err != nil {
		a.reportError(ctx, err)
		return err
	}
	fmt.Println("Attendance recorded.")
	return nil
}

// Attendance shows attendance either for a whole date or for one worker.
// With a month and year it shows the worker's monthly sheet.
func (a *App) Attendance(ctx context.Context) error {
	mode, err := getSimpleText(a.reader, "Lookup by: date or worker", os.Stdout)
	if err != nil {
		return err
	}

	switch mode {
	case "date":
		date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
		if err != nil {
			return err
		}
		recs, err := a.api.AttendanceByDate(ctx, date)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}
		printAttendance(recs)
		return nil

	case "worker":
		workerID, err := getSimpleText(a.reader, "Enter worker id", os.Stdout)
		if err != nil {
			return err
		}
		monthRaw, err := getSimpleText(a.reader, "Enter month and year as MM YYYY (optional)", os.Stdout)
		if err != nil {
			return err
		}

		var recs []*models.AttendanceRecord
		if monthRaw == "" {
			recs, err = a.api.WorkerAttendance(ctx, workerID)
		} else {
			var month, year int
			if _, scanErr := fmt.Sscanf(monthRaw, "%d %d", &month, &year); scanErr != nil {
				fmt.Println("Expected MM YYYY, e.g. 08 2026")
				return nil
			}
			recs, err = a.api.WorkerAttendanceByMonth(ctx, workerID, month, year)
		}
		if err != nil {
			a.reportError(ctx, err)
			return err
		}
		printAttendance(recs)
		return nil

	default:
		fmt.Println("Unknown lookup:", mode)
		return nil
	}
}

func parseAttendance(raw string) (models.AttendanceStatus, bool) {
	switch models.AttendanceStatus(raw) {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLeave:
		return models.AttendanceStatus(raw), true
	}
	return "", false
}

func printAttendance(recs []*models.AttendanceRecord) {
	if len(recs) == 0 {
		fmt.Println("No attendance records.")
		return
	}
	present := 0
	for _, r := range recs {
		fmt.Printf("%s  %-12s %s\n", r.Date, r.WorkerID, r.Status)
		if r.Status == models.AttendancePresent {
			present++
		}
	}
	fmt.Printf("%d of %d present (%s)\n", present, len(recs),
		strconv.FormatFloat(float64(present)/float64(len(recs))*100, 'f', 0, 64)+"%")
}
