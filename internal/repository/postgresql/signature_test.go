package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

var signatureColumnNames = []string{
	"id", "salary_month", "payroll_type", "signature_type", "signed_by_id",
	"signed_by_name", "department", "signed_at", "notes", "is_active",
}

func signatureCreateParams() signature.CreateParams {
	return signature.CreateParams{
		SalaryMonth:   "2025-05",
		PayrollType:   payroll.TypeMonthly,
		SignatureType: signature.TypeGiamDoc,
		SignedByID:    "GD001",
		SignedByName:  "Trần Văn B",
		Department:    "Ban Giám Đốc",
		Notes:         "duyệt",
	}
}

func TestSignatureRepositoryCreate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	signedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER \(WHERE is_signed\), COUNT\(\*\)`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"signed", "total"}).AddRow(3, 3))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("2025-05", payroll.TypeMonthly, signature.TypeGiamDoc).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO management_signatures`).
		WithArgs("2025-05", payroll.TypeMonthly, signature.TypeGiamDoc, "GD001", "Trần Văn B", "Ban Giám Đốc", "duyệt").
		WillReturnRows(pgxmock.NewRows(signatureColumnNames).AddRow(
			int64(1), "2025-05", payroll.TypeMonthly, signature.TypeGiamDoc, "GD001",
			"Trần Văn B", "Ban Giám Đốc", signedAt, "duyệt", true,
		))
	mock.ExpectCommit()

	repo := NewSignatureRepository(database.NewDB(mock))
	created, err := repo.Create(context.Background(), signatureCreateParams())
	require.NoError(t, err)

	assert.Equal(t, signature.TypeGiamDoc, created.SignatureType)
	assert.Equal(t, "GD001", created.SignedByID)
	assert.True(t, created.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryCreateIncompleteEmployees(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// The completion gate is re-read inside the insert transaction; a count
	// short of 100% aborts before anything is written.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER \(WHERE is_signed\), COUNT\(\*\)`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"signed", "total"}).AddRow(2, 3))
	mock.ExpectRollback()

	repo := NewSignatureRepository(database.NewDB(mock))
	_, err = repo.Create(context.Background(), signatureCreateParams())
	assert.ErrorIs(t, err, signature.ErrIncompleteEmployees)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryCreateEmptyPeriod(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// A period with no payroll rows at all can never be 100% complete.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER \(WHERE is_signed\), COUNT\(\*\)`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"signed", "total"}).AddRow(0, 0))
	mock.ExpectRollback()

	repo := NewSignatureRepository(database.NewDB(mock))
	_, err = repo.Create(context.Background(), signatureCreateParams())
	assert.ErrorIs(t, err, signature.ErrIncompleteEmployees)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryCreateDuplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER \(WHERE is_signed\), COUNT\(\*\)`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"signed", "total"}).AddRow(3, 3))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("2025-05", payroll.TypeMonthly, signature.TypeGiamDoc).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	repo := NewSignatureRepository(database.NewDB(mock))
	_, err = repo.Create(context.Background(), signatureCreateParams())
	assert.ErrorIs(t, err, signature.ErrSignatureExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryCreateLostInsertRace(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// A concurrent signer can slip between the existence check and the
	// insert; the partial unique index converts that into ErrSignatureExists.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER \(WHERE is_signed\), COUNT\(\*\)`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"signed", "total"}).AddRow(3, 3))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("2025-05", payroll.TypeMonthly, signature.TypeGiamDoc).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO management_signatures`).
		WithArgs("2025-05", payroll.TypeMonthly, signature.TypeGiamDoc, "GD001", "Trần Văn B", "Ban Giám Đốc", "duyệt").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	mock.ExpectRollback()

	repo := NewSignatureRepository(database.NewDB(mock))
	_, err = repo.Create(context.Background(), signatureCreateParams())
	assert.ErrorIs(t, err, signature.ErrSignatureExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryListActive(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	signedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM management_signatures`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnRows(pgxmock.NewRows(signatureColumnNames).AddRow(
			int64(1), "2025-05", payroll.TypeMonthly, signature.TypeKeToan, "KT001",
			"Lê Văn C", "Kế Toán", signedAt, "", true,
		))

	repo := NewSignatureRepository(database.NewDB(mock))
	active, err := repo.ListActive(context.Background(), "2025-05", payroll.TypeMonthly)
	require.NoError(t, err)

	require.Len(t, active, 1)
	assert.Equal(t, signature.TypeKeToan, active[0].SignatureType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureRepositoryListActiveMissingTable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Before the signature migration runs, progress endpoints still work:
	// an undefined-table error degrades to an empty list.
	mock.ExpectQuery(`FROM management_signatures`).
		WithArgs("2025-05", payroll.TypeMonthly).
		WillReturnError(&pgconn.PgError{Code: pgUndefinedTable})

	repo := NewSignatureRepository(database.NewDB(mock))
	active, err := repo.ListActive(context.Background(), "2025-05", payroll.TypeMonthly)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.NoError(t, mock.ExpectationsWereMet())
}
