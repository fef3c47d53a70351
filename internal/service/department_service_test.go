package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
)

func newDepartmentFixture() (*DepartmentService, *fakeDepartmentRepo, *fakeAuditRepo) {
	repo := newFakeDepartmentRepo()
	audit := &fakeAuditRepo{}
	return NewDepartmentService(repo, audit), repo, audit
}

func TestDepartmentServiceCreate(t *testing.T) {
	svc, _, audit := newDepartmentFixture()
	actor := int64(7)

	d, err := svc.Create(context.Background(), CreateDepartmentInput{
		Code: "ENG", Name: "Engineering", Timezone: "UTC",
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, "ENG", d.Code)
	require.NotNil(t, d.CreatedBy)
	assert.Equal(t, actor, *d.CreatedBy)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "departments", audit.entries[0].TableName)
	require.NotNil(t, audit.entries[0].ActingUserID)
	assert.Equal(t, actor, *audit.entries[0].ActingUserID)
}

func TestDepartmentServiceCreateRequiresFields(t *testing.T) {
	svc, _, _ := newDepartmentFixture()

	_, err := svc.Create(context.Background(), CreateDepartmentInput{}, nil)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	fields := apperror.FieldErrors(err)
	assert.Contains(t, fields, "code")
	assert.Contains(t, fields, "name")
}

func TestDepartmentServiceParentCycle(t *testing.T) {
	svc, repo, _ := newDepartmentFixture()
	ctx := context.Background()

	// root <- mid <- leaf
	root := repo.add(domain.Department{Code: "ROOT", Name: "Root"})
	mid := repo.add(domain.Department{Code: "MID", Name: "Mid", ParentDepartmentID: &root.ID})
	leaf := repo.add(domain.Department{Code: "LEAF", Name: "Leaf", ParentDepartmentID: &mid.ID})

	t.Run("own parent rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, root.ID, UpdateDepartmentInput{ParentDepartmentID: &root.ID}, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("descendant as parent rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, root.ID, UpdateDepartmentInput{ParentDepartmentID: &leaf.ID}, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "parent_department_id")
	})

	t.Run("valid reparent accepted", func(t *testing.T) {
		got, err := svc.Update(ctx, leaf.ID, UpdateDepartmentInput{ParentDepartmentID: &root.ID}, nil)
		require.NoError(t, err)
		require.NotNil(t, got.ParentDepartmentID)
		assert.Equal(t, root.ID, *got.ParentDepartmentID)
	})

	t.Run("missing parent rejected", func(t *testing.T) {
		missing := int64(999)
		_, err := svc.Update(ctx, leaf.ID, UpdateDepartmentInput{ParentDepartmentID: &missing}, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("clear parent", func(t *testing.T) {
		got, err := svc.Update(ctx, mid.ID, UpdateDepartmentInput{ClearParent: true}, nil)
		require.NoError(t, err)
		assert.Nil(t, got.ParentDepartmentID)
	})
}

func TestDepartmentServiceDelete(t *testing.T) {
	svc, repo, audit := newDepartmentFixture()
	ctx := context.Background()
	d := repo.add(domain.Department{Code: "TMP", Name: "Temporary"})

	require.NoError(t, svc.Delete(ctx, d.ID, nil))
	_, err := svc.Get(ctx, d.ID)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	require.Len(t, audit.entries, 1)
	assert.Equal(t, auditActionDelete, audit.entries[0].Action)
}
