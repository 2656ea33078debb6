package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

func stubMultiline(t *testing.T, value string) {
	t.Helper()
	orig := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return value, nil
	}
	t.Cleanup(func() { getMultiline = orig })
}

func feedPage(page, total int, titles ...string) *models.ReportPage {
	out := &models.ReportPage{Page: page, TotalPages: total}
	for i, title := range titles {
		out.Reports = append(out.Reports, &models.Report{
			ID:     string(rune('a' + i)),
			Title:  title,
			Status: models.StatusPending,
		})
	}
	return out
}

func TestFeedAndMore_Paging(t *testing.T) {
	fc := &fakeClient{listPages: map[int]*models.ReportPage{
		1: feedPage(1, 3, "one"),
		2: feedPage(2, 3, "two"),
		3: feedPage(3, 3, "three"),
	}}
	a := newTestApp(fc, &fakeStore{})

	require.NoError(t, a.Feed(context.Background()))
	require.NoError(t, a.More(context.Background()))
	require.NoError(t, a.More(context.Background()))
	// a fresh Feed starts over
	require.NoError(t, a.Feed(context.Background()))

	require.Equal(t, []int{1, 2, 3, 1}, fc.listCalls)
}

func TestMore_WithoutFeedStartsAtFirstPage(t *testing.T) {
	fc := &fakeClient{}
	a := newTestApp(fc, &fakeStore{})

	require.NoError(t, a.More(context.Background()))
	require.Equal(t, []int{1}, fc.listCalls)
}

func TestReport_SubmitsClassifiedDraft(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "waste.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpegdata"), 0o600))

	fc := &fakeClient{}
	a := newTestApp(fc, &fakeStore{})

	queueInputs(t, []string{"Overflowing bin", img, "51.5, -0.12"}, nil)
	stubMultiline(t, "Bin at the corner has been overflowing for days")
	require.NoError(t, a.Report(context.Background()))

	require.NotNil(t, fc.created)
	require.Equal(t, "Overflowing bin", fc.created.Title)
	require.NotEmpty(t, fc.created.Image)
	require.NotNil(t, fc.created.Location)
	require.InDelta(t, 51.5, fc.created.Location.Latitude, 0.001)
	require.NotNil(t, fc.created.Classification)
	require.Equal(t, "garbage", fc.created.Classification.Label)
}

func TestReport_RejectionIsExplained(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cat.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpegdata"), 0o600))

	fc := &fakeClient{createErr: &api.APIError{Status: 422, Code: api.CodeNotWaste, Message: "not waste"}}
	a := newTestApp(fc, &fakeStore{})

	queueInputs(t, []string{"Cat photo", img, ""}, nil)
	stubMultiline(t, "")
	err := a.Report(context.Background())
	require.Error(t, err)
	require.Equal(t, api.KindNotWaste, api.Classify(err))
}
