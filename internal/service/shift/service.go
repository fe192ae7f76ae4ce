package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/company"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type ShiftServiceImpl struct {
	tx           database.Transactor
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	storeRepo    store.StoreRepository
	companyRepo  company.CompanyRepository
	oracle       holiday.Oracle
}

func NewShiftService(
	tx database.Transactor,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	storeRepo store.StoreRepository,
	companyRepo company.CompanyRepository,
	oracle holiday.Oracle,
) shift.ShiftService {
	return &ShiftServiceImpl{
		tx:           tx,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		storeRepo:    storeRepo,
		companyRepo:  companyRepo,
		oracle:       oracle,
	}
}

// prepare resolves the references of s and derives the company snapshot and
// the stored holiday flag. It must run inside the write transaction.
func (svc *ShiftServiceImpl) prepare(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	emp, err := svc.employeeRepo.GetByID(ctx, s.EmployeeID)
	if err != nil {
		return shift.Shift{}, err
	}
	if _, err := svc.storeRepo.GetByID(ctx, s.StoreID); err != nil {
		return shift.Shift{}, err
	}

	s.CompanyID = ""
	if emp.CompanyID != "" {
		if _, err := svc.companyRepo.GetByID(ctx, emp.CompanyID); err != nil {
			if !errors.Is(err, company.ErrCompanyNotFound) {
				return shift.Shift{}, err
			}
			slog.Warn("employee references a missing company", "employee_id", emp.ID, "company_id", emp.CompanyID)
		} else {
			s.CompanyID = emp.CompanyID
		}
	}

	classified, err := shift.ClassifyRange(ctx, svc.oracle, []shift.Shift{s}, s.Date, s.Date)
	if err != nil {
		return shift.Shift{}, err
	}
	return classified[0], nil
}

// Create implements shift.ShiftService.
func (svc *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var saved shift.Shift
	err := svc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		s, err := svc.prepare(ctx, req.Shift())
		if err != nil {
			return err
		}
		created, err := svc.shiftRepo.Create(ctx, s)
		if err != nil {
			return err
		}
		saved, err = svc.shiftRepo.GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(saved, saved.WorkedHours()), nil
}

// Update implements shift.ShiftService.
func (svc *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var saved shift.Shift
	err := svc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := svc.shiftRepo.GetByID(ctx, req.ID); err != nil {
			return err
		}
		s, err := svc.prepare(ctx, req.Shift())
		if err != nil {
			return err
		}
		if _, err := svc.shiftRepo.Update(ctx, s); err != nil {
			return err
		}
		saved, err = svc.shiftRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(saved, saved.WorkedHours()), nil
}

// Delete implements shift.ShiftService.
func (svc *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return svc.shiftRepo.Delete(ctx, id)
}

// GetByID implements shift.ShiftService.
func (svc *ShiftServiceImpl) GetByID(ctx context.Context, id string) (shift.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return shift.ShiftResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	s, err := svc.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	classified, err := shift.ClassifyRange(ctx, svc.oracle, []shift.Shift{s}, s.Date, s.Date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(classified[0], classified[0].WorkedHours()), nil
}

// ListByEmployee implements shift.ShiftService. Totals cover every listed
// shift of the employee.
func (svc *ShiftServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id must be a valid UUID"}}
	}
	if _, err := svc.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	shifts, err := svc.shiftRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return []shift.ShiftResponse{}, nil
	}
	return svc.annotate(ctx, shifts, shifts[0].Date, shifts[len(shifts)-1].Date)
}

// ListMonthly implements shift.ShiftService.
func (svc *ShiftServiceImpl) ListMonthly(ctx context.Context, req shift.MonthlyShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	first, last, err := worktime.MonthRange(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	var shifts []shift.Shift
	if req.EmployeeID != "" {
		if _, err := svc.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return nil, err
		}
		shifts, err = svc.shiftRepo.ListByEmployeeAndDateRange(ctx, req.EmployeeID, first, last)
	} else {
		shifts, err = svc.shiftRepo.ListByDateRange(ctx, first, last)
	}
	if err != nil {
		return nil, err
	}
	return svc.annotate(ctx, shifts, first, last)
}

func (svc *ShiftServiceImpl) annotate(ctx context.Context, shifts []shift.Shift, start, end time.Time) ([]shift.ShiftResponse, error) {
	shifts, err := shift.ClassifyRange(ctx, svc.oracle, shifts, start, end)
	if err != nil {
		return nil, err
	}
	return shift.ToResponses(shifts, worktime.Aggregate(shift.Records(shifts))), nil
}

// ReconcileHolidayFlags implements shift.ShiftService.
func (svc *ShiftServiceImpl) ReconcileHolidayFlags(ctx context.Context, start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("reconcile holiday flags: end %s before start %s", worktime.FormatDate(end), worktime.FormatDate(start))
	}

	var changed int64
	err := svc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shifts, err := svc.shiftRepo.ListByDateRange(ctx, start, end)
		if err != nil {
			return err
		}
		classified, err := shift.ClassifyRange(ctx, svc.oracle, shifts, start, end)
		if err != nil {
			return err
		}

		var flag, unflag []string
		for i, s := range shifts {
			fresh := classified[i].Holiday
			switch {
			case fresh && !s.Holiday:
				flag = append(flag, s.ID)
			case !fresh && s.Holiday:
				unflag = append(unflag, s.ID)
			}
		}

		n, err := svc.shiftRepo.SetHolidayFlag(ctx, flag, true)
		if err != nil {
			return err
		}
		changed += n
		n, err = svc.shiftRepo.SetHolidayFlag(ctx, unflag, false)
		if err != nil {
			return err
		}
		changed += n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile holiday flags: %w", err)
	}
	return int(changed), nil
}
