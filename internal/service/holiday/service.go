package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type HolidayServiceImpl struct {
	Source
	// repo is nil when holidays come from a static table.
	repo      holiday.HolidayRepository
	shiftRepo shift.ShiftRepository
	tx        database.Transactor
	defaults  []holiday.Holiday
}

func NewHolidayService(source Source, repo holiday.HolidayRepository, shiftRepo shift.ShiftRepository, tx database.Transactor, defaults []holiday.Holiday) holiday.HolidayService {
	return &HolidayServiceImpl{
		Source:    source,
		repo:      repo,
		shiftRepo: shiftRepo,
		tx:        tx,
		defaults:  defaults,
	}
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, req holiday.ListHolidaysRequest) ([]holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		holidays []holiday.Holiday
		err      error
	)
	if start, end, ok := req.Range(); ok {
		holidays, err = s.Between(ctx, start, end)
	} else {
		holidays, err = s.All(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.ToResponse(h))
	}
	return out, nil
}

// Check implements holiday.HolidayService.
func (s *HolidayServiceImpl) Check(ctx context.Context, date time.Time) (holiday.CheckHolidayResponse, error) {
	date = worktime.DateOf(date)
	cal, err := holiday.CalendarFor(ctx, s, date, date)
	if err != nil {
		return holiday.CheckHolidayResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	return holiday.CheckHolidayResponse{
		Date:        worktime.FormatDate(date),
		Holiday:     cal.IsHoliday(date),
		Description: cal.Description(date),
	}, nil
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	if s.repo == nil {
		return holiday.HolidayResponse{}, holiday.ErrHolidayReadOnly
	}

	var created holiday.Holiday
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByDate(ctx, req.ParsedDate())
		if err != nil {
			return err
		}
		if exists {
			return holiday.ErrHolidayDateExists
		}
		created, err = s.repo.Create(ctx, holiday.Holiday{Date: req.ParsedDate(), Description: req.Description})
		if err != nil {
			return err
		}
		n, err := s.shiftRepo.SetHolidayFlagByDate(ctx, created.Date, true)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("holiday created, shifts re-flagged", "date", worktime.FormatDate(created.Date), "shifts", n)
		}
		return nil
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return holiday.ErrHolidayReadOnly
	}
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		h, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		n, err := s.shiftRepo.SetHolidayFlagByDate(ctx, h.Date, false)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("holiday deleted, shifts re-flagged", "date", worktime.FormatDate(h.Date), "shifts", n)
		}
		return nil
	})
}

// SeedDefaults implements holiday.HolidayService.
func (s *HolidayServiceImpl) SeedDefaults(ctx context.Context) (int, error) {
	if s.repo == nil {
		return 0, nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return s.Import(ctx, s.defaults)
}

// Import implements holiday.HolidayService. Existing dates are renamed.
func (s *HolidayServiceImpl) Import(ctx context.Context, holidays []holiday.Holiday) (int, error) {
	if s.repo == nil {
		return 0, holiday.ErrHolidayReadOnly
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, h := range holidays {
			h.Date = worktime.DateOf(h.Date)
			if err := s.repo.Upsert(ctx, h); err != nil {
				return err
			}
			if _, err := s.shiftRepo.SetHolidayFlagByDate(ctx, h.Date, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import holidays: %w", err)
	}
	return len(holidays), nil
}
