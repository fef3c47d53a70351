package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
)

type employeeFixture struct {
	svc         *EmployeeService
	departments *fakeDepartmentRepo
	audit       *fakeAuditRepo
	department  *domain.Department
	designation *domain.Designation
}

func newEmployeeFixture() *employeeFixture {
	employees := newFakeEmployeeRepo()
	departments := newFakeDepartmentRepo()
	designations := newFakeDesignationRepo()
	users := newFakeUserRepo()
	audit := &fakeAuditRepo{}

	dep := departments.add(domain.Department{Code: "ENG", Name: "Engineering"})
	des := designations.add(domain.Designation{DepartmentID: dep.ID, Name: "Software Engineer"})

	// A nil search index disables indexing; writes must still succeed.
	svc := NewEmployeeService(employees, departments, designations, users, audit, nil)
	return &employeeFixture{
		svc:         svc,
		departments: departments,
		audit:       audit,
		department:  dep,
		designation: des,
	}
}

func validCreateInput(f *employeeFixture) CreateEmployeeInput {
	return CreateEmployeeInput{
		DepartmentID:  f.department.ID,
		DesignationID: f.designation.ID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		HireDate:      "2024-01-15",
	}
}

func TestEmployeeServiceCreate(t *testing.T) {
	f := newEmployeeFixture()
	actor := int64(7)

	e, err := f.svc.Create(context.Background(), validCreateInput(f), &actor)
	require.NoError(t, err)
	assert.Equal(t, "Ada", e.FirstName)
	assert.Equal(t, "2024-01-15", e.HireDate.Format("2006-01-02"))
	require.NotNil(t, e.CreatedBy)
	assert.Equal(t, actor, *e.CreatedBy)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "employees", f.audit.entries[0].TableName)
	assert.Equal(t, auditActionCreate, f.audit.entries[0].Action)
}

func TestEmployeeServiceCreateValidation(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	t.Run("missing required fields", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateEmployeeInput{}, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		fields := apperror.FieldErrors(err)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "hire_date")
	})

	t.Run("unknown department", func(t *testing.T) {
		in := validCreateInput(f)
		in.DepartmentID = 999
		_, err := f.svc.Create(ctx, in, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "department_id")
	})

	t.Run("bad email", func(t *testing.T) {
		in := validCreateInput(f)
		in.Email = "not-an-email"
		_, err := f.svc.Create(ctx, in, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})
}

func TestEmployeeServicePartialUpdate(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, validCreateInput(f), nil)
	require.NoError(t, err)

	phone := "555-0199"
	updated, err := f.svc.Update(ctx, e.ID, UpdateEmployeeInput{Phone: &phone}, nil)
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	// Untouched fields survive a partial update.
	assert.Equal(t, e.FirstName, updated.FirstName)
	assert.Equal(t, e.Email, updated.Email)
}

func TestEmployeeServiceDeleteExcludesFromReads(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, validCreateInput(f), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, e.ID, nil))
	_, err = f.svc.Get(ctx, e.ID)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	// create + delete audited
	assert.Len(t, f.audit.entries, 2)
}

func TestEmployeeServiceAuditFailureDoesNotAbortWrite(t *testing.T) {
	f := newEmployeeFixture()
	f.audit.failing = true

	_, err := f.svc.Create(context.Background(), validCreateInput(f), nil)
	assert.NoError(t, err)
}

func TestEmployeeServiceFormData(t *testing.T) {
	f := newEmployeeFixture()

	data, err := f.svc.FormData(context.Background())
	require.NoError(t, err)
	assert.Contains(t, data, "departments")
	assert.Contains(t, data, "designations")
	assert.Contains(t, data, "users")
}
