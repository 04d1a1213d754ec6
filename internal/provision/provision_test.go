package provision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/registry"
	"github.com/Veraticus/capture/internal/service"
	"github.com/Veraticus/capture/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBootstrap_LocalStore(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	var steps []Step
	layout, err := NewBootstrapper(store, discardLogger(), func(s Step) { steps = append(steps, s) }).Bootstrap(ctx, "")
	require.NoError(t, err)

	require.Len(t, steps, BootstrapSteps)
	assert.Equal(t, RootFolderName, steps[0].Name)
	assert.Equal(t, InboxDocName, steps[len(steps)-1].Name)

	for _, id := range []string{
		layout.RootFolderID, layout.ProjectNotesFolderID, layout.IdeasFolderID, layout.SystemFolderID,
		layout.ConfigSheetID, layout.LinksSheetID, layout.ActivityLogSheetID, layout.InboxDocID,
	} {
		assert.NotEmpty(t, id)
	}

	rows, err := store.ReadRows(ctx, layout.ConfigSheetID, "Projects!A1:D1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Project Name", "Doc ID", "Status", "Description"}}, rows)

	rows, err = store.ReadRows(ctx, layout.ConfigSheetID, "Tags!A1:B1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Tag Name", "Category"}}, rows)

	rows, err = store.ReadRows(ctx, layout.LinksSheetID, "Sheet1!A1:F1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Date", "URL", "Comment", "Tags", "Source Project", "Raw Input"}}, rows)

	rows, err = store.ReadRows(ctx, layout.ActivityLogSheetID, "Sheet1!A1:H1")
	require.NoError(t, err)
	assert.Len(t, rows[0], 8)

	inbox, err := store.GetDocument(ctx, layout.InboxDocID)
	require.NoError(t, err)
	assert.Equal(t, layout.SystemFolderID, inbox.ParentID)
	assert.Empty(t, inbox.Body)
}

type failingProvisioner struct {
	service.Provisioner
	failOn string
}

func (f failingProvisioner) CreateTable(ctx context.Context, parentID, name string, tabs []service.TabSpec) (string, error) {
	if name == f.failOn {
		return "", errors.New("quota exceeded")
	}
	return f.Provisioner.CreateTable(ctx, parentID, name, tabs)
}

func TestBootstrap_StopsAtFirstFailure(t *testing.T) {
	store := testutil.SetupTestStore(t)

	var steps []Step
	b := NewBootstrapper(failingProvisioner{Provisioner: store, failOn: LinksTableName}, discardLogger(),
		func(s Step) { steps = append(steps, s) })

	layout, err := b.Bootstrap(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, layout)
	assert.Contains(t, err.Error(), LinksTableName)
	assert.Len(t, steps, 5)
}

func TestLayout_EnvLines(t *testing.T) {
	l := Layout{ConfigSheetID: "c", LinksSheetID: "l", ActivityLogSheetID: "a", IdeasFolderID: "i", InboxDocID: "d"}
	assert.Equal(t, []string{
		"CONFIG_SHEET_ID=c",
		"LINKS_SHEET_ID=l",
		"ACTIVITY_LOG_SHEET_ID=a",
		"IDEAS_FOLDER_ID=i",
		"INBOX_DOC_ID=d",
	}, l.EnvLines())
}

func TestSeed_RegistryReadsSeededRows(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	layout, err := NewBootstrapper(store, discardLogger(), nil).Bootstrap(ctx, "")
	require.NoError(t, err)

	rowsSeen := 0
	res, err := Seed(ctx, store, layout.ConfigSheetID, DefaultProjects(), DefaultTags(), func() { rowsSeen++ })
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Projects: 5, Tags: 19}, res)
	assert.Equal(t, 24, rowsSeen)

	reg, err := registry.NewLoader(store, layout.ConfigSheetID, service.RetryOptions{MaxAttempts: 1}, discardLogger()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, reg.Projects, 5)
	require.Len(t, reg.Tags, 19)
	assert.Equal(t, "Smart Router", reg.Projects[0].Name)
	assert.Equal(t, "idea", reg.Projects[4].Status)
	assert.Equal(t, "rust", reg.Tags[1].Name)
	assert.Equal(t, "language", reg.Tags[1].Category)
}

func TestSeed_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Seed(ctx, testutil.NewMockTables(), "", DefaultProjects(), nil, nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	tables := testutil.NewMockTables()
	tables.AppendFunc = func(_ context.Context, _, rng string, _ []string) error {
		if rng == registry.TagsAppendRange {
			return errors.New("boom")
		}
		return nil
	}
	res, err := Seed(ctx, tables, "config", DefaultProjects(), DefaultTags(), nil)
	require.Error(t, err)
	assert.Equal(t, SeedResult{Projects: 5}, res)
	assert.Contains(t, err.Error(), "typescript")
}
