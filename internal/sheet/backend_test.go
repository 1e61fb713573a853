package sheet_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/geopark-ops/guidelog/internal/db"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBackends_MissingTable(t *testing.T) {
	backends(t, func(t *testing.T, b sheet.Backend) {
		_, _, err := b.ReadTable(context.Background(), "nothing")
		assert.ErrorIs(t, err, sheet.ErrTableNotFound)
	})
}

func TestBackends_ShrinkingRewrite(t *testing.T) {
	backends(t, func(t *testing.T, b sheet.Backend) {
		ctx := context.Background()
		header := []string{"a", "b"}
		require.NoError(t, b.WriteTable(ctx, "t", header, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}}))
		require.NoError(t, b.WriteTable(ctx, "t", header, [][]string{{"9", "w"}}))

		gotHeader, rows, err := b.ReadTable(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, header, gotHeader)
		assert.Equal(t, [][]string{{"9", "w"}}, rows)
	})
}

func TestWorkbookBackend_TablesShareOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops", "guidelog.xlsx")
	ctx := context.Background()
	b := sheet.NewWorkbookBackend(path)

	require.NoError(t, b.WriteTable(ctx, "schedule", []string{"date"}, [][]string{{"2025-03-03"}}))
	require.NoError(t, b.WriteTable(ctx, "roster", []string{"name"}, [][]string{{"김해설"}}))
	require.NoError(t, b.WriteTable(ctx, "schedule", []string{"date"}, [][]string{{"2025-03-04"}}))

	reopened := sheet.NewWorkbookBackend(path)
	_, rows, err := reopened.ReadTable(ctx, "roster")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"김해설"}}, rows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.ElementsMatch(t, []string{"schedule", "roster"}, f.GetSheetList())
}

func TestWorkbookBackend_ReadsHandTypedDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("plans")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("plans", "A1", &[]interface{}{"date", "island", "post", "person", "shift"}))
	require.NoError(t, f.SetCellValue("plans", "A2", 45719))
	require.NoError(t, f.SetSheetRow("plans", "B2", &[]interface{}{"백령도", "두무진 안내소", "김해설", "종일"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := sheet.NewStore(sheet.NewWorkbookBackend(path))
	res := store.LoadFiltered(context.Background(), testSchema, sheet.Filter{Year: 2025, Month: 3})
	require.True(t, res.OK())
	require.Len(t, res.Rows, 1)
	d, ok := testSchema.DateOf(res.Rows[0])
	require.True(t, ok)
	assert.Equal(t, 3, d.Day())
}

func TestSQLiteBackend_FailedRewriteRollsBack(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	good := sheet.NewSQLiteBackend(database, db.NewSQLiteUnitOfWork(database))
	require.NoError(t, good.WriteTable(ctx, "t", []string{"a"}, [][]string{{"1"}, {"2"}}))

	boom := errors.New("disk full")
	// 1 = table upsert, 2 = row delete, 3 = first insert, 4 = second insert.
	bad := sheet.NewSQLiteBackend(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: boom})
	err := bad.WriteTable(ctx, "t", []string{"a"}, [][]string{{"7"}, {"8"}})
	require.ErrorIs(t, err, boom)

	_, rows, err := good.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, rows)
}
