package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmirror/internal/gar"
	"garmirror/internal/logger"
)

func TestNewXMLLoaderValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	source := gar.NewFileSource(t.TempDir(), "")
	log := logger.NewDefault()

	tests := []struct {
		name      string
		batchSize int
		nilDB     bool
		nilSource bool
		expectErr string
	}{
		{name: "valid", batchSize: 100},
		{name: "nil database", batchSize: 100, nilDB: true, expectErr: "database is nil"},
		{name: "nil source", batchSize: 100, nilSource: true, expectErr: "file source is nil"},
		{name: "zero batch size", batchSize: 0, expectErr: "batch size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := db
			if tt.nilDB {
				d = nil
			}
			s := source
			if tt.nilSource {
				s = nil
			}
			l, err := NewXMLLoader(d, s, tt.batchSize, log)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				assert.Nil(t, l)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, l)
			}
		})
	}
}

func TestInsertStatement(t *testing.T) {
	desc := gar.Table{
		Name:    "HOUSE_TYPES",
		Columns: []string{"ID", "NAME", "DESC"},
	}

	stmt, err := insertStatement(desc, 2)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO `HOUSE_TYPES` (`ID`, `NAME`, `DESC`) VALUES (?, ?, ?), (?, ?, ?)",
		stmt)
}

func TestLoadTruncatesThenInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	dir := t.TempDir()
	xml := `<HOUSETYPES>
		<HOUSETYPE ID="1" NAME="Дом" SHORTNAME="д." ISACTIVE="true"/>
		<HOUSETYPE ID="2" NAME="Гараж" SHORTNAME="гар." ISACTIVE="true"/>
		<HOUSETYPE ID="3" NAME="Корпус" SHORTNAME="к." ISACTIVE="true"/>
	</HOUSETYPES>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AS_HOUSE_TYPES_20260801_aaaa.XML"), []byte(xml), 0o644))

	mock.ExpectExec("TRUNCATE TABLE `HOUSE_TYPES`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Batch size 2: one full batch, one remainder.
	mock.ExpectExec("INSERT INTO `HOUSE_TYPES`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `HOUSE_TYPES`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	loader, err := NewXMLLoader(db, gar.NewFileSource(dir, ""), 2, logger.NewDefault())
	require.NoError(t, err)

	var updates []int64
	rows, err := loader.Load(context.Background(), "HOUSE_TYPES", func(loaded int64) {
		updates = append(updates, loaded)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rows)
	assert.NotEmpty(t, updates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadUnknownTable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	loader, err := NewXMLLoader(db, gar.NewFileSource(t.TempDir(), ""), 10, logger.NewDefault())
	require.NoError(t, err)

	_, err = loader.Load(context.Background(), "NO_SUCH_TABLE", func(int64) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}

func TestLoadMissingFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	loader, err := NewXMLLoader(db, gar.NewFileSource(t.TempDir(), ""), 10, logger.NewDefault())
	require.NoError(t, err)

	// No source files: the table must not be truncated.
	_, err = loader.Load(context.Background(), "HOUSE_TYPES", func(int64) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source file")
	assert.NoError(t, mock.ExpectationsWereMet())
}
