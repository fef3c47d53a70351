package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
)

func newDocumentFixture() (*DocumentService, *fakeDocumentRepo, *fakeStore, *domain.Employee) {
	repo := newFakeDocumentRepo()
	employees := newFakeEmployeeRepo()
	store := &fakeStore{}
	audit := &fakeAuditRepo{}

	emp := employees.add(domain.Employee{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	return NewDocumentService(repo, employees, store, audit), repo, store, emp
}

func TestDocumentServiceCreate(t *testing.T) {
	svc, _, store, emp := newDocumentFixture()

	d, err := svc.Create(context.Background(), CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		MimeType:   "application/pdf",
		File:       strings.NewReader("pdf bytes"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9), d.SizeBytes)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0], d.FilePath)
	assert.Empty(t, store.deleted)
}

func TestDocumentServiceCreateRollsBackStoredFile(t *testing.T) {
	svc, repo, store, emp := newDocumentFixture()
	repo.failNext = true

	_, err := svc.Create(context.Background(), CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		File:       strings.NewReader("pdf bytes"),
	}, nil)
	require.Error(t, err)

	// The orphaned artifact is removed once the row insert fails.
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.deleted)
}

func TestDocumentServiceCreateRequiresFile(t *testing.T) {
	svc, _, _, emp := newDocumentFixture()

	_, err := svc.Create(context.Background(), CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
	}, nil)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	assert.Contains(t, apperror.FieldErrors(err), "file")
}

func TestDocumentServiceReplaceFile(t *testing.T) {
	svc, _, store, emp := newDocumentFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		File:       strings.NewReader("v1"),
	}, nil)
	require.NoError(t, err)
	oldPath := d.FilePath

	updated, err := svc.Update(ctx, d.ID, UpdateDocumentInput{
		FileName: "contract-v2.pdf",
		MimeType: "application/pdf",
		File:     strings.NewReader("v2 longer"),
	}, nil)
	require.NoError(t, err)

	// New file stored, reference swapped, old artifact dropped last.
	assert.NotEqual(t, oldPath, updated.FilePath)
	assert.Equal(t, int64(9), updated.SizeBytes)
	assert.Equal(t, []string{oldPath}, store.deleted)
}

func TestDocumentServiceReplaceKeepsOldFileOnFailure(t *testing.T) {
	svc, repo, store, emp := newDocumentFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		File:       strings.NewReader("v1"),
	}, nil)
	require.NoError(t, err)

	repo.failNext = true
	_, err = svc.Update(ctx, d.ID, UpdateDocumentInput{
		FileName: "contract-v2.pdf",
		File:     strings.NewReader("v2"),
	}, nil)
	require.Error(t, err)

	// The failed replacement is cleaned up; the original stays referenced.
	require.Len(t, store.deleted, 1)
	assert.NotEqual(t, d.FilePath, store.deleted[0])

	current, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.FilePath, current.FilePath)
}

func TestDocumentServiceTitleOnlyUpdate(t *testing.T) {
	svc, _, store, emp := newDocumentFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		File:       strings.NewReader("v1"),
	}, nil)
	require.NoError(t, err)

	title := "Signed Contract"
	updated, err := svc.Update(ctx, d.ID, UpdateDocumentInput{Title: &title}, nil)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, d.FilePath, updated.FilePath)
	assert.Empty(t, store.deleted)
}

func TestDocumentServiceSoftDeleteKeepsFile(t *testing.T) {
	svc, _, store, emp := newDocumentFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateDocumentInput{
		EmployeeID: emp.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		File:       strings.NewReader("v1"),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, d.ID, nil))
	assert.Empty(t, store.deleted)

	_, err = svc.Get(ctx, d.ID)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}
