package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
)

// In-memory repository fakes. Only the behavior the services rely on is
// modeled: id assignment, not-found semantics and soft-delete visibility.

func pageOf[T any](items []T, desc query.Descriptor) *domain.Page[T] {
	return domain.NewPage(items, desc.Page, desc.PerPage, len(items))
}

type fakeAuditRepo struct {
	entries []domain.AuditLog
	failing bool
}

func (f *fakeAuditRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AuditLog], error) {
	return pageOf(f.entries, desc), nil
}

func (f *fakeAuditRepo) GetByID(ctx context.Context, id int64) (*domain.AuditLog, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, apperror.NotFound("audit log")
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if f.failing {
		return apperror.New(apperror.CodeInternal, "audit insert failed")
	}
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.User], error) {
	var items []domain.User
	for _, u := range f.users {
		items = append(items, *u)
	}
	return pageOf(items, desc), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperror.NotFound("user")
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Options(ctx context.Context) ([]domain.Option, error) {
	var opts []domain.Option
	for _, u := range f.users {
		opts = append(opts, domain.Option{ID: u.ID, Name: u.Name})
	}
	return opts, nil
}

type fakeDepartmentRepo struct {
	departments map[int64]*domain.Department
	nextID      int64
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[int64]*domain.Department)}
}

func (f *fakeDepartmentRepo) add(d domain.Department) *domain.Department {
	f.nextID++
	d.ID = f.nextID
	f.departments[d.ID] = &d
	return &d
}

func (f *fakeDepartmentRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Department], error) {
	var items []domain.Department
	for _, d := range f.departments {
		if d.DeletedAt == nil {
			items = append(items, *d)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	d, ok := f.departments[id]
	if !ok || d.DeletedAt != nil {
		return nil, apperror.NotFound("department")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDepartmentRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return nil, apperror.NotFound("department")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d *domain.Department) error {
	f.nextID++
	d.ID = f.nextID
	clone := *d
	f.departments[d.ID] = &clone
	return nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, d *domain.Department) error {
	existing, ok := f.departments[d.ID]
	if !ok || existing.DeletedAt != nil {
		return apperror.NotFound("department")
	}
	clone := *d
	f.departments[d.ID] = &clone
	return nil
}

func (f *fakeDepartmentRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	d, ok := f.departments[id]
	if !ok || d.DeletedAt != nil {
		return apperror.NotFound("department")
	}
	now := time.Now().UTC()
	d.DeletedAt = &now
	d.DeletedBy = actor
	return nil
}

func (f *fakeDepartmentRepo) Options(ctx context.Context) ([]domain.Option, error) {
	var opts []domain.Option
	for _, d := range f.departments {
		if d.DeletedAt == nil {
			opts = append(opts, domain.Option{ID: d.ID, Name: d.Name})
		}
	}
	return opts, nil
}

type fakeEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]*domain.Employee)}
}

func (f *fakeEmployeeRepo) add(e domain.Employee) *domain.Employee {
	f.nextID++
	e.ID = f.nextID
	f.employees[e.ID] = &e
	return &e
}

func (f *fakeEmployeeRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Employee], error) {
	var items []domain.Employee
	for _, e := range f.employees {
		if e.DeletedAt == nil {
			items = append(items, *e)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.DeletedAt != nil {
		return nil, apperror.NotFound("employee")
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEmployeeRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, apperror.NotFound("employee")
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	f.nextID++
	e.ID = f.nextID
	clone := *e
	f.employees[e.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	existing, ok := f.employees[e.ID]
	if !ok || existing.DeletedAt != nil {
		return apperror.NotFound("employee")
	}
	clone := *e
	f.employees[e.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	e, ok := f.employees[id]
	if !ok || e.DeletedAt != nil {
		return apperror.NotFound("employee")
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	e.DeletedBy = actor
	return nil
}

func (f *fakeEmployeeRepo) Options(ctx context.Context) ([]domain.Option, error) {
	var opts []domain.Option
	for _, e := range f.employees {
		if e.DeletedAt == nil {
			opts = append(opts, domain.Option{ID: e.ID, Name: e.FirstName + " " + e.LastName})
		}
	}
	return opts, nil
}

type fakeDesignationRepo struct {
	designations map[int64]*domain.Designation
	nextID       int64
}

func newFakeDesignationRepo() *fakeDesignationRepo {
	return &fakeDesignationRepo{designations: make(map[int64]*domain.Designation)}
}

func (f *fakeDesignationRepo) add(d domain.Designation) *domain.Designation {
	f.nextID++
	d.ID = f.nextID
	f.designations[d.ID] = &d
	return &d
}

func (f *fakeDesignationRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Designation], error) {
	var items []domain.Designation
	for _, d := range f.designations {
		if d.DeletedAt == nil {
			items = append(items, *d)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeDesignationRepo) GetByID(ctx context.Context, id int64) (*domain.Designation, error) {
	d, ok := f.designations[id]
	if !ok || d.DeletedAt != nil {
		return nil, apperror.NotFound("designation")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDesignationRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Designation, error) {
	d, ok := f.designations[id]
	if !ok {
		return nil, apperror.NotFound("designation")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDesignationRepo) Create(ctx context.Context, d *domain.Designation) error {
	f.nextID++
	d.ID = f.nextID
	clone := *d
	f.designations[d.ID] = &clone
	return nil
}

func (f *fakeDesignationRepo) Update(ctx context.Context, d *domain.Designation) error {
	if _, ok := f.designations[d.ID]; !ok {
		return apperror.NotFound("designation")
	}
	clone := *d
	f.designations[d.ID] = &clone
	return nil
}

func (f *fakeDesignationRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	d, ok := f.designations[id]
	if !ok || d.DeletedAt != nil {
		return apperror.NotFound("designation")
	}
	now := time.Now().UTC()
	d.DeletedAt = &now
	return nil
}

func (f *fakeDesignationRepo) Options(ctx context.Context) ([]domain.Option, error) {
	return nil, nil
}

type fakeAttendanceRepo struct {
	records map[int64]*domain.AttendanceRecord
	nextID  int64
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[int64]*domain.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AttendanceRecord], error) {
	var items []domain.AttendanceRecord
	for _, a := range f.records {
		items = append(items, *a)
	}
	return pageOf(items, desc), nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id int64) (*domain.AttendanceRecord, error) {
	a, ok := f.records[id]
	if !ok {
		return nil, apperror.NotFound("attendance record")
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *domain.AttendanceRecord) error {
	f.nextID++
	a.ID = f.nextID
	clone := *a
	f.records[a.ID] = &clone
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a *domain.AttendanceRecord) error {
	if _, ok := f.records[a.ID]; !ok {
		return apperror.NotFound("attendance record")
	}
	clone := *a
	f.records[a.ID] = &clone
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return apperror.NotFound("attendance record")
	}
	delete(f.records, id)
	return nil
}

type fakeLeaveTypeRepo struct {
	types  map[int64]*domain.LeaveType
	nextID int64
}

func newFakeLeaveTypeRepo() *fakeLeaveTypeRepo {
	return &fakeLeaveTypeRepo{types: make(map[int64]*domain.LeaveType)}
}

func (f *fakeLeaveTypeRepo) add(lt domain.LeaveType) *domain.LeaveType {
	f.nextID++
	lt.ID = f.nextID
	f.types[lt.ID] = &lt
	return &lt
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.LeaveType], error) {
	var items []domain.LeaveType
	for _, lt := range f.types {
		if lt.DeletedAt == nil {
			items = append(items, *lt)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id int64) (*domain.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok || lt.DeletedAt != nil {
		return nil, apperror.NotFound("leave type")
	}
	clone := *lt
	return &clone, nil
}

func (f *fakeLeaveTypeRepo) GetAnyByID(ctx context.Context, id int64) (*domain.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return nil, apperror.NotFound("leave type")
	}
	clone := *lt
	return &clone, nil
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt *domain.LeaveType) error {
	f.nextID++
	lt.ID = f.nextID
	clone := *lt
	f.types[lt.ID] = &clone
	return nil
}

func (f *fakeLeaveTypeRepo) Update(ctx context.Context, lt *domain.LeaveType) error {
	if _, ok := f.types[lt.ID]; !ok {
		return apperror.NotFound("leave type")
	}
	clone := *lt
	f.types[lt.ID] = &clone
	return nil
}

func (f *fakeLeaveTypeRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	lt, ok := f.types[id]
	if !ok || lt.DeletedAt != nil {
		return apperror.NotFound("leave type")
	}
	now := time.Now().UTC()
	lt.DeletedAt = &now
	return nil
}

func (f *fakeLeaveTypeRepo) Options(ctx context.Context) ([]domain.Option, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	leaves map[int64]*domain.Leave
	nextID int64
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[int64]*domain.Leave)}
}

func (f *fakeLeaveRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Leave], error) {
	var items []domain.Leave
	for _, l := range f.leaves {
		if l.DeletedAt == nil {
			items = append(items, *l)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id int64) (*domain.Leave, error) {
	l, ok := f.leaves[id]
	if !ok || l.DeletedAt != nil {
		return nil, apperror.NotFound("leave request")
	}
	clone := *l
	return &clone, nil
}

func (f *fakeLeaveRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return nil, apperror.NotFound("leave request")
	}
	clone := *l
	return &clone, nil
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l *domain.Leave) error {
	f.nextID++
	l.ID = f.nextID
	clone := *l
	f.leaves[l.ID] = &clone
	return nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, l *domain.Leave) error {
	existing, ok := f.leaves[l.ID]
	if !ok || existing.DeletedAt != nil {
		return apperror.NotFound("leave request")
	}
	clone := *l
	f.leaves[l.ID] = &clone
	return nil
}

func (f *fakeLeaveRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	l, ok := f.leaves[id]
	if !ok || l.DeletedAt != nil {
		return apperror.NotFound("leave request")
	}
	now := time.Now().UTC()
	l.DeletedAt = &now
	return nil
}

type fakeCurrencyRepo struct {
	currencies map[int64]*domain.Currency
	nextID     int64
}

func newFakeCurrencyRepo() *fakeCurrencyRepo {
	return &fakeCurrencyRepo{currencies: make(map[int64]*domain.Currency)}
}

func (f *fakeCurrencyRepo) add(c domain.Currency) *domain.Currency {
	f.nextID++
	c.ID = f.nextID
	f.currencies[c.ID] = &c
	return &c
}

func (f *fakeCurrencyRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Currency], error) {
	var items []domain.Currency
	for _, c := range f.currencies {
		if c.DeletedAt == nil {
			items = append(items, *c)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeCurrencyRepo) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	c, ok := f.currencies[id]
	if !ok || c.DeletedAt != nil {
		return nil, apperror.NotFound("currency")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCurrencyRepo) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	for _, c := range f.currencies {
		if c.Code == code && c.DeletedAt == nil {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("currency")
}

func (f *fakeCurrencyRepo) Create(ctx context.Context, c *domain.Currency) error {
	f.nextID++
	c.ID = f.nextID
	clone := *c
	f.currencies[c.ID] = &clone
	return nil
}

func (f *fakeCurrencyRepo) Update(ctx context.Context, c *domain.Currency) error {
	if _, ok := f.currencies[c.ID]; !ok {
		return apperror.NotFound("currency")
	}
	clone := *c
	f.currencies[c.ID] = &clone
	return nil
}

func (f *fakeCurrencyRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	c, ok := f.currencies[id]
	if !ok || c.DeletedAt != nil {
		return apperror.NotFound("currency")
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

func (f *fakeCurrencyRepo) Options(ctx context.Context) ([]domain.CurrencyOption, error) {
	return nil, nil
}

type fakeSalaryRepo struct {
	salaries map[int64]*domain.Salary
	nextID   int64
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{salaries: make(map[int64]*domain.Salary)}
}

func (f *fakeSalaryRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Salary], error) {
	var items []domain.Salary
	for _, s := range f.salaries {
		if s.DeletedAt == nil {
			items = append(items, *s)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeSalaryRepo) GetByID(ctx context.Context, id int64) (*domain.Salary, error) {
	s, ok := f.salaries[id]
	if !ok || s.DeletedAt != nil {
		return nil, apperror.NotFound("salary record")
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSalaryRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Salary, error) {
	s, ok := f.salaries[id]
	if !ok {
		return nil, apperror.NotFound("salary record")
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSalaryRepo) Create(ctx context.Context, s *domain.Salary) error {
	f.nextID++
	s.ID = f.nextID
	clone := *s
	f.salaries[s.ID] = &clone
	return nil
}

func (f *fakeSalaryRepo) Update(ctx context.Context, s *domain.Salary) error {
	if _, ok := f.salaries[s.ID]; !ok {
		return apperror.NotFound("salary record")
	}
	clone := *s
	f.salaries[s.ID] = &clone
	return nil
}

func (f *fakeSalaryRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	s, ok := f.salaries[id]
	if !ok || s.DeletedAt != nil {
		return apperror.NotFound("salary record")
	}
	now := time.Now().UTC()
	s.DeletedAt = &now
	return nil
}

type fakeDocumentRepo struct {
	documents map[int64]*domain.EmployeeDocument
	nextID    int64
	failNext  bool
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[int64]*domain.EmployeeDocument)}
}

func (f *fakeDocumentRepo) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.EmployeeDocument], error) {
	var items []domain.EmployeeDocument
	for _, d := range f.documents {
		if d.DeletedAt == nil {
			items = append(items, *d)
		}
	}
	return pageOf(items, desc), nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	d, ok := f.documents[id]
	if !ok || d.DeletedAt != nil {
		return nil, apperror.NotFound("document")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDocumentRepo) GetAnyByID(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	d, ok := f.documents[id]
	if !ok {
		return nil, apperror.NotFound("document")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d *domain.EmployeeDocument) error {
	if f.failNext {
		f.failNext = false
		return apperror.New(apperror.CodeInternal, "insert failed")
	}
	f.nextID++
	d.ID = f.nextID
	clone := *d
	f.documents[d.ID] = &clone
	return nil
}

func (f *fakeDocumentRepo) Update(ctx context.Context, d *domain.EmployeeDocument) error {
	if f.failNext {
		f.failNext = false
		return apperror.New(apperror.CodeInternal, "update failed")
	}
	if _, ok := f.documents[d.ID]; !ok {
		return apperror.NotFound("document")
	}
	clone := *d
	f.documents[d.ID] = &clone
	return nil
}

func (f *fakeDocumentRepo) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	d, ok := f.documents[id]
	if !ok || d.DeletedAt != nil {
		return apperror.NotFound("document")
	}
	now := time.Now().UTC()
	d.DeletedAt = &now
	return nil
}

// fakeStore records saved and deleted paths in order.
type fakeStore struct {
	saved   []string
	deleted []string
	nextID  int
}

func (f *fakeStore) Save(ctx context.Context, r io.Reader, originalName string) (string, int64, error) {
	f.nextID++
	path := fmt.Sprintf("stored-%d%s", f.nextID, filepath.Ext(originalName))
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", 0, err
	}
	f.saved = append(f.saved, path)
	return path, n, nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, path string) (bool, error) {
	for _, p := range f.saved {
		if p == path {
			return true, nil
		}
	}
	return false, nil
}
