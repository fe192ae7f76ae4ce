package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sportcenter/shift-manager/internal/bootstrap"
	"github.com/sportcenter/shift-manager/internal/config"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/fixtures"
	"github.com/sportcenter/shift-manager/internal/pkg/jwt"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

var rootCmd = &cobra.Command{
	Use:   "shiftctl",
	Short: "Shift manager administration",
	Long:  `shiftctl runs schema migrations, maintains the holiday table and inspects month partitions.`,
}

// ===== MIGRATE =====

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		withMigrator(func(st *bootstrap.Store) {
			if err := st.Migrate(); err != nil {
				fail("Error running migrations", err)
			}
			fmt.Println("Migrations applied.")
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Run: func(cmd *cobra.Command, args []string) {
		withMigrator(func(st *bootstrap.Store) {
			m, err := st.Migrator()
			if err != nil {
				fail("Error opening migrator", err)
			}
			defer m.Close()
			if err := m.Down(); err != nil {
				fail("Error rolling back migrations", err)
			}
			fmt.Println("Migrations rolled back.")
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied and latest schema versions",
	Run: func(cmd *cobra.Command, args []string) {
		withMigrator(func(st *bootstrap.Store) {
			m, err := st.Migrator()
			if err != nil {
				fail("Error opening migrator", err)
			}
			defer m.Close()
			status, err := m.Status()
			if err != nil {
				fail("Error reading migration status", err)
			}
			fmt.Printf("Current: %d\n", status.CurrentVersion)
			fmt.Printf("Latest:  %d\n", status.LatestVersion)
			if status.Dirty {
				fmt.Println("State:   dirty")
			} else if status.Pending {
				fmt.Println("State:   pending migrations")
			} else {
				fmt.Println("State:   up to date")
			}
		})
	},
}

// ===== WEEKS =====

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "Print the Monday-aligned week partition of a month",
	Run: func(cmd *cobra.Command, args []string) {
		month, _ := cmd.Flags().GetInt("month")
		year, _ := cmd.Flags().GetInt("year")

		buckets, err := worktime.PartitionMonth(month, year)
		if err != nil {
			fail("Error", err)
		}
		for _, b := range buckets {
			fmt.Printf("Week %d: %s .. %s (%d days)\n", b.Index, worktime.FormatDate(b.Start()), worktime.FormatDate(b.End()), len(b.Dates))
		}
	},
}

// ===== TOKEN =====

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token signed with JWT_SECRET_KEY",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.JWT.Secret == "" {
			fail("Error", fmt.Errorf("JWT_SECRET_KEY is not set"))
		}
		user, _ := cmd.Flags().GetString("user")
		admin, _ := cmd.Flags().GetBool("admin")

		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(user, admin)
		if err != nil {
			fail("Error issuing token", err)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %d\n", expiresAt)
	},
}

// ===== HOLIDAYS =====

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Maintain the holiday table",
}

var holidaysImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Upsert holidays from a TOML file and re-flag their shifts",
	Long: `Upsert holidays from a TOML file and re-flag shifts on those dates.

File layout:
  [[holiday]]
  date = "2025-12-25"
  description = "Navidad"`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		holidays, err := fixtures.LoadHolidaysFile(path)
		if err != nil {
			fail("Error", err)
		}
		withServices(func(ctx context.Context, svc *bootstrap.Services) {
			n, err := svc.Holidays.Import(ctx, holidays)
			if err != nil {
				fail("Error importing holidays", err)
			}
			fmt.Printf("Imported: %d holidays\n", n)
		})
	},
}

var holidaysSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in holiday table when no holiday exists",
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(ctx context.Context, svc *bootstrap.Services) {
			n, err := svc.Holidays.SeedDefaults(ctx)
			if err != nil {
				fail("Error seeding holidays", err)
			}
			if n == 0 {
				fmt.Println("Holiday table already populated, nothing seeded.")
				return
			}
			fmt.Printf("Seeded: %d holidays\n", n)
		})
	},
}

var holidaysSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-derive the stored holiday flag of shifts in a date range",
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		start, err := worktime.ParseDate(from)
		if err != nil {
			fail("Invalid --from", err)
		}
		end, err := worktime.ParseDate(to)
		if err != nil {
			fail("Invalid --to", err)
		}
		if end.Before(start) {
			fail("Error", fmt.Errorf("--to must not be before --from"))
		}

		withServices(func(ctx context.Context, svc *bootstrap.Services) {
			n, err := svc.Shifts.ReconcileHolidayFlags(ctx, start, end)
			if err != nil {
				fail("Error reconciling flags", err)
			}
			fmt.Printf("Shifts re-flagged: %d\n", n)
		})
	},
}

var holidaysExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active holiday table as TOML",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		withServices(func(ctx context.Context, svc *bootstrap.Services) {
			list, err := svc.Holidays.List(ctx, holiday.ListHolidaysRequest{})
			if err != nil {
				fail("Error listing holidays", err)
			}
			holidays := make([]holiday.Holiday, 0, len(list))
			for _, h := range list {
				date, err := worktime.ParseDate(h.Date)
				if err != nil {
					fail("Error", err)
				}
				holidays = append(holidays, holiday.Holiday{Date: date, Description: h.Description})
			}

			if path == "" || path == "-" {
				err = fixtures.WriteHolidays(os.Stdout, holidays)
			} else {
				err = fixtures.WriteHolidaysFile(path, holidays)
			}
			if err != nil {
				fail("Error writing holidays", err)
			}
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	weeksCmd.Flags().Int("month", 0, "Month (1-12)")
	weeksCmd.Flags().Int("year", 0, "Four digit year")
	_ = weeksCmd.MarkFlagRequired("month")
	_ = weeksCmd.MarkFlagRequired("year")

	tokenCmd.Flags().String("user", "", "Subject user id")
	tokenCmd.Flags().Bool("admin", false, "Grant the is_admin claim")
	_ = tokenCmd.MarkFlagRequired("user")

	holidaysImportCmd.Flags().StringP("file", "f", "", "TOML holiday file")
	_ = holidaysImportCmd.MarkFlagRequired("file")
	holidaysSyncCmd.Flags().String("from", "", "First date, YYYY-MM-DD")
	holidaysSyncCmd.Flags().String("to", "", "Last date, YYYY-MM-DD")
	_ = holidaysSyncCmd.MarkFlagRequired("from")
	_ = holidaysSyncCmd.MarkFlagRequired("to")
	holidaysExportCmd.Flags().StringP("file", "f", "-", "Output file, - for stdout")

	holidaysCmd.AddCommand(holidaysImportCmd)
	holidaysCmd.AddCommand(holidaysSeedCmd)
	holidaysCmd.AddCommand(holidaysSyncCmd)
	holidaysCmd.AddCommand(holidaysExportCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(holidaysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}
	return cfg
}

// withMigrator opens the store without applying migrations.
func withMigrator(fn func(st *bootstrap.Store)) {
	cfg := loadConfig()
	st, err := bootstrap.OpenStore(context.Background(), cfg)
	if err != nil {
		fail("Error opening database", err)
	}
	defer st.Close()
	fn(st)
}

// withServices runs fn against the fully wired service layer. Seeding is
// left to the explicit seed command.
func withServices(fn func(ctx context.Context, svc *bootstrap.Services)) {
	cfg := loadConfig()
	cfg.Holiday.SeedDefaults = false

	ctx := context.Background()
	st, svc, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		fail("Error opening database", err)
	}
	defer st.Close()
	fn(ctx, svc)
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
