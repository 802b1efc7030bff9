package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

var employeeColumnNames = []string{
	"employee_id", "full_name", "department", "chuc_vu", "cccd_hash", "password_hash",
	"credential_kind", "last_password_change_at", "is_active", "created_at", "updated_at",
}

func TestEmployeeRepositoryGetByID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM employees WHERE employee_id = \$1`).
		WithArgs("NV001").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).AddRow(
			"NV001", "Nguyễn Văn A", "May 1", employee.RoleNhanVien, "$2a$10$hash", (*string)(nil),
			employee.CredentialCCCD, (*time.Time)(nil), true, now, now,
		))

	repo := NewEmployeeRepository(database.NewDB(mock))
	emp, err := repo.GetByID(context.Background(), "NV001")
	require.NoError(t, err)

	assert.Equal(t, "Nguyễn Văn A", emp.FullName)
	assert.Equal(t, employee.RoleNhanVien, emp.ChucVu)
	assert.Equal(t, employee.CredentialCCCD, emp.CredentialKind)
	assert.Nil(t, emp.PasswordHash)
	assert.True(t, emp.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryGetByIDNotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM employees WHERE employee_id = \$1`).
		WithArgs("NV404").
		WillReturnError(pgx.ErrNoRows)

	repo := NewEmployeeRepository(database.NewDB(mock))
	_, err = repo.GetByID(context.Background(), "NV404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryKnownIDs(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT employee_id FROM employees`).
		WillReturnRows(pgxmock.NewRows([]string{"employee_id"}).
			AddRow("NV001").
			AddRow("NV002"))

	repo := NewEmployeeRepository(database.NewDB(mock))
	ids, err := repo.KnownIDs(context.Background())
	require.NoError(t, err)

	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "NV001")
	assert.Contains(t, ids, "NV002")

	assert.NoError(t, mock.ExpectationsWereMet())
}
