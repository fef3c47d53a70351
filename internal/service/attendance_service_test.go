package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
)

func TestDeriveAttendance(t *testing.T) {
	t.Run("log date is the UTC day of check-in", func(t *testing.T) {
		a := &domain.AttendanceRecord{
			CheckIn: time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600)),
		}
		deriveAttendance(a)
		assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), a.LogDate)
	})

	t.Run("open record has no hours", func(t *testing.T) {
		a := &domain.AttendanceRecord{CheckIn: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
		deriveAttendance(a)
		assert.Nil(t, a.HoursWorked)
	})

	t.Run("hours from the check-in check-out pair", func(t *testing.T) {
		checkIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		checkOut := checkIn.Add(7*time.Hour + 30*time.Minute)
		a := &domain.AttendanceRecord{CheckIn: checkIn, CheckOut: &checkOut}
		deriveAttendance(a)
		require.NotNil(t, a.HoursWorked)
		assert.InDelta(t, 7.5, *a.HoursWorked, 1e-9)
	})

	t.Run("clearing check-out clears hours", func(t *testing.T) {
		checkIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		hours := 8.0
		a := &domain.AttendanceRecord{CheckIn: checkIn, HoursWorked: &hours}
		deriveAttendance(a)
		assert.Nil(t, a.HoursWorked)
	})
}

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceRepo, *domain.Employee) {
	attendance := newFakeAttendanceRepo()
	employees := newFakeEmployeeRepo()
	emp := employees.add(domain.Employee{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	return NewAttendanceService(attendance, employees), attendance, emp
}

func TestAttendanceServiceCreate(t *testing.T) {
	svc, _, emp := newAttendanceFixture()
	ctx := context.Background()

	got, err := svc.Create(ctx, CreateAttendanceInput{
		EmployeeID: emp.ID,
		CheckIn:    "2024-03-15T09:00:00Z",
		CheckOut:   "2024-03-15T17:00:00Z",
		Notes:      "on site",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", got.LogDate.Format("2006-01-02"))
	require.NotNil(t, got.HoursWorked)
	assert.InDelta(t, 8.0, *got.HoursWorked, 1e-9)
}

func TestAttendanceServiceCreateOpenRecord(t *testing.T) {
	svc, _, emp := newAttendanceFixture()

	got, err := svc.Create(context.Background(), CreateAttendanceInput{
		EmployeeID: emp.ID,
		CheckIn:    "2024-03-15T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, got.CheckOut)
	assert.Nil(t, got.HoursWorked)
}

func TestAttendanceServiceCreateValidation(t *testing.T) {
	svc, _, emp := newAttendanceFixture()
	ctx := context.Background()

	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateAttendanceInput{
			EmployeeID: emp.ID,
			CheckIn:    "2024-03-15T09:00:00Z",
			CheckOut:   "2024-03-15T08:00:00Z",
		})
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "check_out")
	})

	t.Run("missing check-in", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateAttendanceInput{EmployeeID: emp.ID})
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateAttendanceInput{
			EmployeeID: 999,
			CheckIn:    "2024-03-15T09:00:00Z",
		})
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "employee_id")
	})
}

func TestAttendanceServiceUpdateRederives(t *testing.T) {
	svc, _, emp := newAttendanceFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAttendanceInput{
		EmployeeID: emp.ID,
		CheckIn:    "2024-03-15T09:00:00Z",
	})
	require.NoError(t, err)

	checkOut := "2024-03-15T18:00:00Z"
	updated, err := svc.Update(ctx, created.ID, UpdateAttendanceInput{CheckOut: &checkOut})
	require.NoError(t, err)
	require.NotNil(t, updated.HoursWorked)
	assert.InDelta(t, 9.0, *updated.HoursWorked, 1e-9)
}
