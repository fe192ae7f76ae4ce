// Package bootstrap assembles repositories, services and the holiday oracle
// from configuration for the api server and the shiftctl CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sportcenter/shift-manager/internal/config"
	"github.com/sportcenter/shift-manager/internal/domain/company"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/report"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/fixtures"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/repository/postgresql"
	pgMigrations "github.com/sportcenter/shift-manager/internal/repository/postgresql/migrations"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite"
	sqliteMigrations "github.com/sportcenter/shift-manager/internal/repository/sqlite/migrations"
	holidayService "github.com/sportcenter/shift-manager/internal/service/holiday"
	reportService "github.com/sportcenter/shift-manager/internal/service/report"
	shiftService "github.com/sportcenter/shift-manager/internal/service/shift"
)

// Store is the persistence layer for the configured driver.
type Store struct {
	Tx        database.Transactor
	Shifts    shift.ShiftRepository
	Employees employee.EmployeeRepository
	Stores    store.StoreRepository
	Companies company.CompanyRepository
	Holidays  holiday.HolidayRepository

	migrator func() (*database.Migrator, error)
	close    func()
}

// OpenStore connects to PostgreSQL or SQLite according to DB_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dsn := cfg.DatabaseURL()
		db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Store{
			Tx:        postgresql.NewTransactor(db),
			Shifts:    postgresql.NewShiftRepository(db),
			Employees: postgresql.NewEmployeeRepository(db),
			Stores:    postgresql.NewStoreRepository(db),
			Companies: postgresql.NewCompanyRepository(db),
			Holidays:  postgresql.NewHolidayRepository(db),
			migrator: func() (*database.Migrator, error) {
				return database.NewPostgresMigrator(pgMigrations.FS, dsn)
			},
			close: db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return newSQLiteStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

func newSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Tx:        sqlite.NewTransactor(db),
		Shifts:    sqlite.NewShiftRepository(db),
		Employees: sqlite.NewEmployeeRepository(db),
		Stores:    sqlite.NewStoreRepository(db),
		Companies: sqlite.NewCompanyRepository(db),
		Holidays:  sqlite.NewHolidayRepository(db),
		migrator: func() (*database.Migrator, error) {
			return database.NewSQLiteMigrator(sqliteMigrations.FS, db)
		},
		close: func() { db.Close() },
	}
}

// Migrator returns a migrator for the store's schema. Callers close it.
func (s *Store) Migrator() (*database.Migrator, error) {
	return s.migrator()
}

func (s *Store) Migrate() error {
	m, err := s.Migrator()
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func (s *Store) Close() {
	s.close()
}

// Services is the wired service layer.
type Services struct {
	Shifts   shift.ShiftService
	Reports  report.ReportService
	Holidays holiday.HolidayService
	Oracle   holiday.Oracle
}

// NewServices picks the holiday oracle from HOLIDAY_SOURCE and wires every
// service on top of the store.
func NewServices(cfg *config.Config, st *Store) (*Services, error) {
	var (
		source holidayService.Source
		repo   holiday.HolidayRepository
	)

	switch cfg.Holiday.Source {
	case config.HolidaySourceStatic:
		holidays := fixtures.DefaultHolidays()
		if cfg.Holiday.File != "" {
			loaded, err := fixtures.LoadHolidaysFile(cfg.Holiday.File)
			if err != nil {
				return nil, err
			}
			holidays = loaded
		}
		source = holidayService.NewStaticOracle(holidays)
		slog.Info("holiday oracle: static table", "holidays", len(holidays), "file", cfg.Holiday.File)
	default:
		source = holidayService.NewRepositoryOracle(st.Holidays)
		repo = st.Holidays
	}

	return &Services{
		Shifts:   shiftService.NewShiftService(st.Tx, st.Shifts, st.Employees, st.Stores, st.Companies, source),
		Reports:  reportService.NewReportService(st.Shifts, st.Employees, st.Stores, source),
		Holidays: holidayService.NewHolidayService(source, repo, st.Shifts, st.Tx, fixtures.DefaultHolidays()),
		Oracle:   source,
	}, nil
}

// Setup opens the store, applies migrations when DB_AUTO_MIGRATE is set,
// wires the services and seeds the default holidays when configured.
func Setup(ctx context.Context, cfg *config.Config) (*Store, *Services, error) {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	svc, err := NewServices(cfg, st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	if cfg.Holiday.SeedDefaults {
		n, err := svc.Holidays.SeedDefaults(ctx)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("seed holidays: %w", err)
		}
		if n > 0 {
			slog.Info("default holidays seeded", "count", n)
		}
	}

	return st, svc, nil
}
