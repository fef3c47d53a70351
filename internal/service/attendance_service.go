package service

import (
	"context"
	"time"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// AttendanceService handles business logic for attendance records. The log
// date derives from check-in and hours worked from the check-in/check-out
// pair; neither is accepted from clients.
type AttendanceService struct {
	repo      domain.AttendanceRepository
	employees domain.EmployeeRepository
}

func NewAttendanceService(repo domain.AttendanceRepository, employees domain.EmployeeRepository) *AttendanceService {
	return &AttendanceService{repo: repo, employees: employees}
}

type CreateAttendanceInput struct {
	EmployeeID int64  `json:"employee_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Notes      string `json:"notes"`
}

type UpdateAttendanceInput struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Notes    *string `json:"notes"`
}

func (as *AttendanceService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AttendanceRecord], error) {
	return as.repo.List(ctx, desc)
}

func (as *AttendanceService) Get(ctx context.Context, id int64) (*domain.AttendanceRecord, error) {
	return as.repo.GetByID(ctx, id)
}

func (as *AttendanceService) Create(ctx context.Context, in CreateAttendanceInput) (*domain.AttendanceRecord, error) {
	errs := validate.Errors{}
	validate.RequiredID(errs, "employee_id", in.EmployeeID)
	checkIn := validate.Timestamp(errs, "check_in", in.CheckIn)
	checkOut := validate.OptionalTimestamp(errs, "check_out", in.CheckOut)
	validate.MaxLen(errs, "notes", in.Notes, 500)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}
	if err := checkPair(errs, checkIn, checkOut); err != nil {
		return nil, err
	}

	if _, err := as.employees.GetByID(ctx, in.EmployeeID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("employee_id", "the selected employee does not exist")
	}

	a := &domain.AttendanceRecord{
		EmployeeID: in.EmployeeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      in.Notes,
	}
	deriveAttendance(a)

	if err := as.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return as.repo.GetByID(ctx, a.ID)
}

func (as *AttendanceService) Update(ctx context.Context, id int64, in UpdateAttendanceInput) (*domain.AttendanceRecord, error) {
	a, err := as.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.CheckIn != nil {
		a.CheckIn = validate.Timestamp(errs, "check_in", *in.CheckIn)
	}
	if in.CheckOut != nil {
		a.CheckOut = validate.OptionalTimestamp(errs, "check_out", *in.CheckOut)
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
		validate.MaxLen(errs, "notes", a.Notes, 500)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}
	if err := checkPair(errs, a.CheckIn, a.CheckOut); err != nil {
		return nil, err
	}

	deriveAttendance(a)
	if err := as.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return as.repo.GetByID(ctx, a.ID)
}

func (as *AttendanceService) Delete(ctx context.Context, id int64) error {
	return as.repo.Delete(ctx, id)
}

func checkPair(errs validate.Errors, checkIn time.Time, checkOut *time.Time) error {
	if checkOut != nil && !checkOut.After(checkIn) {
		errs.Add("check_out", "the check_out field must be after check_in")
	}
	if !errs.Empty() {
		return apperror.Validation(errs)
	}
	return nil
}

// deriveAttendance recomputes the stored derived columns. LogDate is the UTC
// calendar day of check-in; HoursWorked stays nil until check-out is known.
func deriveAttendance(a *domain.AttendanceRecord) {
	in := a.CheckIn.UTC()
	a.LogDate = time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, time.UTC)

	if a.CheckOut == nil {
		a.HoursWorked = nil
		return
	}
	hours := a.CheckOut.Sub(a.CheckIn).Hours()
	a.HoursWorked = &hours
}
