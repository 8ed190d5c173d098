package registry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmirror/internal/database"
)

const (
	moscowGUID = "0c5b2444-70a0-4932-980c-b4dc0d3f02b5"
	streetGUID = "2c9997fb-2d77-4378-b81b-17d3d5374f4f"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(database.NewGateway(db)), mock
}

func objectColumns() []string {
	return []string{"GUID", "ID", "TypeName", "Name", "AddressFull", "Level", "ParentGUID"}
}

func TestIsGUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"canonical GUID", moscowGUID, true},
		{"uppercase GUID", "0C5B2444-70A0-4932-980C-B4DC0D3F02B5", true},
		{"free text", "тверская улица", false},
		{"empty", "", false},
		{"too short", "0c5b2444-70a0-4932-980c", false},
		{"right length but not a GUID", "this string is 36 characters long!!!", false},
		{"37 characters", moscowGUID + "x", false},
		{"braced form rejected", "{0c5b2444-70a0-4932-980c-b4dc0d3f02}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGUID(tt.input))
		})
	}
}

func TestSearchRoutesGUIDToIdentifierProcedure(t *testing.T) {
	store, mock := newTestStore(t)

	// A GUID-shaped query must hit the identifier procedure of the
	// selected division, never the text one.
	mock.ExpectQuery("CALL `mun`.`UP_SearchRegistryByGUID`\\(\\?, \\?, \\?\\)").
		WithArgs(moscowGUID, sql.NullInt64{}, sql.NullInt64{}).
		WillReturnRows(sqlmock.NewRows(objectColumns()).
			AddRow(moscowGUID, int64(1405113), "г", "Москва", "г Москва", 1, nil))

	got, err := store.Search(context.Background(), DivisionMun, moscowGUID, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Москва", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRoutesTextToTextProcedure(t *testing.T) {
	store, mock := newTestStore(t)

	level, limit := 8, 20
	mock.ExpectQuery("CALL `adm`.`UP_SearchRegistry`\\(\\?, \\?, \\?\\)").
		WithArgs("тверская", sql.NullInt64{Int64: 8, Valid: true}, sql.NullInt64{Int64: 20, Valid: true}).
		WillReturnRows(sqlmock.NewRows(objectColumns()).
			AddRow(streetGUID, int64(9000001), "ул", "Тверская", "г Москва, ул Тверская", 8, moscowGUID))

	got, err := store.Search(context.Background(), DivisionAdm, "тверская", &level, &limit)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(9000001), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTruncatesOverlongText(t *testing.T) {
	store, mock := newTestStore(t)

	long := make([]rune, 600)
	for i := range long {
		long[i] = 'д'
	}
	want := string(long[:500])

	mock.ExpectQuery("CALL `mun`.`UP_SearchRegistry`\\(\\?, \\?, \\?\\)").
		WithArgs(want, sql.NullInt64{}, sql.NullInt64{}).
		WillReturnRows(sqlmock.NewRows(objectColumns()))

	_, err := store.Search(context.Background(), DivisionMun, string(long), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectFound(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `mun`.`UP_RegistrySelect`\\(\\?\\)").
		WithArgs(moscowGUID).
		WillReturnRows(sqlmock.NewRows(objectColumns()).
			AddRow(moscowGUID, int64(1405113), "г", "Москва", "г Москва", 1, nil))

	obj, err := store.Object(context.Background(), DivisionMun, moscowGUID)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, moscowGUID, obj.GUID)
	assert.Equal(t, 1, obj.Level)
	assert.False(t, obj.ParentGUID.Valid)
}

func TestObjectAbsentIsNotAnError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `mun`.`UP_RegistrySelect`\\(\\?\\)").
		WithArgs(moscowGUID).
		WillReturnRows(sqlmock.NewRows(objectColumns()))

	obj, err := store.Object(context.Background(), DivisionMun, moscowGUID)
	assert.NoError(t, err)
	assert.Nil(t, obj)
}

func TestObjectRejectsNonGUID(t *testing.T) {
	store, _ := newTestStore(t)

	obj, err := store.Object(context.Background(), DivisionMun, "not-a-guid")
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, ErrInvalidGUID)
}

func TestChildrenRejectsNonGUID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Children(context.Background(), "москва")
	assert.ErrorIs(t, err, ErrInvalidGUID)
}

func TestHierarchyRootFirst(t *testing.T) {
	store, mock := newTestStore(t)

	// Chain for a street: region root first, queried object last, with
	// as many links as the object's level rank.
	mock.ExpectQuery("CALL `mun`.`UP_GetHierarchy`\\(\\?\\)").
		WithArgs(streetGUID).
		WillReturnRows(sqlmock.NewRows([]string{"GUID", "ID", "TypeName", "Name", "Level", "ParentGUID"}).
			AddRow(moscowGUID, int64(1405113), "г", "Москва", 1, nil).
			AddRow(streetGUID, int64(9000001), "ул", "Тверская", 2, moscowGUID))

	chain, err := store.Hierarchy(context.Background(), DivisionMun, streetGUID)
	require.NoError(t, err)
	require.Len(t, chain, 2)

	root := chain[0]
	assert.False(t, root.ParentGUID.Valid, "first element must be a hierarchy root")
	leaf := chain[len(chain)-1]
	assert.Equal(t, streetGUID, leaf.GUID)
	assert.Equal(t, len(chain), leaf.Level, "chain length equals the object's level rank")
}

func TestHierarchyAbsentObject(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `adm`.`UP_GetHierarchy`\\(\\?\\)").
		WithArgs(streetGUID).
		WillReturnRows(sqlmock.NewRows([]string{"GUID", "ID", "TypeName", "Name", "Level", "ParentGUID"}))

	chain, err := store.Hierarchy(context.Background(), DivisionAdm, streetGUID)
	assert.NoError(t, err)
	assert.Empty(t, chain)
}

func TestTablesInfo(t *testing.T) {
	store, mock := newTestStore(t)

	imported := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	mock.ExpectQuery("CALL `UP_TablesInfo`\\(\\)").
		WillReturnRows(sqlmock.NewRows([]string{"Name", "RowCount", "TotalMB", "LastImport", "CanImport"}).
			AddRow("ADDR_OBJ", int64(1500000), 812.5, imported, true).
			AddRow("HOUSES", int64(0), 0.0, nil, false))

	infos, err := store.TablesInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "ADDR_OBJ", infos[0].Name)
	require.NotNil(t, infos[0].LastImport)
	assert.Equal(t, imported, *infos[0].LastImport)
	assert.True(t, infos[0].CanImport)

	assert.Nil(t, infos[1].LastImport, "never-imported table has no timestamp")
	assert.False(t, infos[1].CanImport)
}

func TestCanImportRoundTrip(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("CALL `UP_TablePropertySet`\\(\\?, \\?, \\?\\)").
		WithArgs("HOUSES", "CanImport", false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("CALL `UP_TablePropertyGet`\\(\\?, \\?\\)").
		WithArgs("HOUSES", "CanImport").
		WillReturnRows(sqlmock.NewRows([]string{"Value"}).AddRow(false))

	require.NoError(t, store.SetCanImport(context.Background(), "HOUSES", false))

	v, err := store.CanImport(context.Background(), "HOUSES")
	require.NoError(t, err)
	assert.False(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastImportNull(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `UP_TablePropertyGet`\\(\\?, \\?\\)").
		WithArgs("APARTMENTS", "LastImport").
		WillReturnRows(sqlmock.NewRows([]string{"Value"}).AddRow(nil))

	ts, err := store.LastImport(context.Background(), "APARTMENTS")
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestStatistics(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `UP_Statistics`\\(\\)").
		WillReturnRows(sqlmock.NewRows([]string{"Name", "Value"}).
			AddRow("Objects", "17 000 000").
			AddRow("Database size", "120 GB"))

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Objects":       "17 000 000",
		"Database size": "120 GB",
	}, stats)
}

func TestStatementURL(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("CALL `UP_IDByGUID`\\(\\?\\)").
		WithArgs(moscowGUID).
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(1405113)))

	url, err := store.StatementURL(context.Background(), DivisionMun, moscowGUID)
	require.NoError(t, err)
	assert.Equal(t, "https://fias.nalog.ru/Export/ExportPdfStatement?objId=1405113&actual=true&division=1", url)
}
