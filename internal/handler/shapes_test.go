package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/hrms/internal/domain"
)

func TestShapeEmployeeRelations(t *testing.T) {
	hired := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("loaded relations render, null foreign keys render as null", func(t *testing.T) {
		depID := int64(3)
		e := &domain.Employee{
			ID:           1,
			DepartmentID: depID,
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        "ada@example.com",
			HireDate:     hired,
			Department:   &domain.Department{ID: depID, Code: "ENG", Name: "Engineering"},
		}

		m := shapeEmployee(e)
		assert.Equal(t, "2024-01-15", m["hire_date"])

		dep, ok := m["department"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ENG", dep["code"])

		// user_id is null and the relation was not populated, so the key is
		// present with an explicit null.
		require.Contains(t, m, "user")
		assert.Nil(t, m["user"])
		require.Contains(t, m, "designation")
		assert.Nil(t, m["designation"])
	})

	t.Run("audit user references", func(t *testing.T) {
		actor := int64(7)
		e := &domain.Employee{
			ID:        1,
			FirstName: "Ada",
			HireDate:  hired,
			AuditFields: domain.AuditFields{
				CreatedBy: &actor,
				CreatedAt: hired,
				UpdatedAt: hired,
			},
			CreatedByUser: &domain.User{ID: actor, Name: "Admin"},
		}

		m := shapeEmployee(e)
		created, ok := m["created_by"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, actor, created["id"])
		assert.Equal(t, "Admin", created["name"])
		assert.Nil(t, m["updated_by"])
		assert.Nil(t, m["deleted_at"])
	})
}

func TestShapeCurrencyHasNoRelationKeys(t *testing.T) {
	actor := int64(7)
	c := &domain.Currency{
		ID:     1,
		Code:   "USD",
		Name:   "US Dollar",
		Symbol: "$",
		AuditFields: domain.AuditFields{
			CreatedBy: &actor,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	m := shapeCurrency(c)
	assert.NotContains(t, m, "employee")
	assert.NotContains(t, m, "currency")

	// Audit references stay raw ids on currencies.
	assert.Equal(t, &actor, m["created_by"])
	assert.Nil(t, m["updated_by"])
}

func TestShapeAttendance(t *testing.T) {
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	hours := 7.5
	checkOut := checkIn.Add(time.Duration(hours * float64(time.Hour)))

	a := &domain.AttendanceRecord{
		ID:          1,
		EmployeeID:  2,
		CheckIn:     checkIn,
		CheckOut:    &checkOut,
		LogDate:     checkIn,
		HoursWorked: &hours,
		Employee:    &domain.Employee{ID: 2, FirstName: "Ada", LastName: "Lovelace"},
	}

	m := shapeAttendance(a)
	assert.Equal(t, "2024-03-04", m["log_date"])
	assert.Equal(t, &hours, m["hours_worked"])

	// The timestamp pair renders camel-cased; the stored column names never
	// leak into the payload.
	assert.Equal(t, checkIn, m["checkIn"])
	assert.Equal(t, checkOut.UTC(), m["checkOut"])
	assert.NotContains(t, m, "check_in")
	assert.NotContains(t, m, "check_out")

	emp, ok := m["employee"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", emp["first_name"])

	// Attendance eager-loads the employee only.
	assert.NotContains(t, m, "department")
	assert.NotContains(t, m, "created_by")
}

func TestShapeAttendanceOpenRecord(t *testing.T) {
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	a := &domain.AttendanceRecord{ID: 1, EmployeeID: 2, CheckIn: checkIn, LogDate: checkIn}

	m := shapeAttendance(a)
	assert.Nil(t, m["checkOut"])
	assert.Nil(t, m["hours_worked"])
	assert.Nil(t, m["employee"])
}

func TestShapeAuditLog(t *testing.T) {
	actor := int64(7)
	a := &domain.AuditLog{
		ID:           1,
		TableName:    "employees",
		RecordID:     42,
		Action:       "update",
		ActingUserID: &actor,
		ActingUser:   &domain.User{ID: actor, Name: "Admin"},
		CreatedAt:    time.Now(),
	}

	m := shapeAuditLog(a)
	assert.Equal(t, "employees", m["table_name"])
	user, ok := m["acting_user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Admin", user["name"])
}

func TestShapePage(t *testing.T) {
	p := domain.NewPage([]domain.Currency{
		{ID: 1, Code: "USD"},
		{ID: 2, Code: "EUR"},
	}, 2, 15, 32)

	items, meta := shapePage(p, shapeCurrency)
	require.Len(t, items, 2)
	assert.Equal(t, "USD", items[0]["code"])
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 15, meta.PerPage)
	assert.Equal(t, 32, meta.Total)
	assert.Equal(t, 3, meta.LastPage)
}
