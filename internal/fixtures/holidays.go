package fixtures

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

// ==========================================
// DEFAULT HOLIDAYS
// ==========================================

type holidayDef struct {
	Date        string `toml:"date"`
	Description string `toml:"description"`
}

var defaultHolidays = []holidayDef{
	{"2025-01-01", "Año Nuevo"},
	{"2025-04-17", "Jueves Santo"},
	{"2025-04-18", "Viernes Santo"},
	{"2025-05-01", "Día del Trabajo"},
	{"2025-06-07", "Batalla de Arica y Día de la Bandera"},
	{"2025-06-29", "Día de San Pedro y San Pablo"},
	{"2025-07-23", "Día de la Fuerza Aérea del Perú"},
	{"2025-07-28", "Fiestas Patrias"},
	{"2025-07-29", "Fiestas Patrias"},
	{"2025-08-06", "Batalla de Junín"},
	{"2025-08-30", "Santa Rosa de Lima"},
	{"2025-10-08", "Combate de Angamos"},
	{"2025-11-01", "Día de Todos los Santos"},
	{"2025-12-08", "Inmaculada Concepción"},
	{"2025-12-09", "Batalla de Ayacucho"},
	{"2025-12-25", "Navidad"},
}

// DefaultHolidays returns the built-in national holiday table.
func DefaultHolidays() []holiday.Holiday {
	out, err := toHolidays(defaultHolidays)
	if err != nil {
		panic(err)
	}
	return out
}

// ==========================================
// TOML FILE
// ==========================================

// HolidayFile is the on-disk layout:
//
//	[[holiday]]
//	date = "2025-01-01"
//	description = "Año Nuevo"
type HolidayFile struct {
	Holidays []holidayDef `toml:"holiday"`
}

// LoadHolidaysFile reads a holiday table from a TOML file.
func LoadHolidaysFile(path string) ([]holiday.Holiday, error) {
	var f HolidayFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("read holiday file %s: %w", path, err)
	}
	out, err := toHolidays(f.Holidays)
	if err != nil {
		return nil, fmt.Errorf("holiday file %s: %w", path, err)
	}
	return out, nil
}

// WriteHolidays encodes holidays in the LoadHolidaysFile layout.
func WriteHolidays(w io.Writer, holidays []holiday.Holiday) error {
	f := HolidayFile{Holidays: make([]holidayDef, 0, len(holidays))}
	for _, h := range holidays {
		f.Holidays = append(f.Holidays, holidayDef{Date: worktime.FormatDate(h.Date), Description: h.Description})
	}
	return toml.NewEncoder(w).Encode(f)
}

// WriteHolidaysFile writes holidays to path, replacing any existing file.
func WriteHolidaysFile(path string, holidays []holiday.Holiday) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHolidays(file, holidays); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func toHolidays(defs []holidayDef) ([]holiday.Holiday, error) {
	seen := make(map[string]struct{}, len(defs))
	out := make([]holiday.Holiday, 0, len(defs))
	for _, d := range defs {
		date, err := worktime.ParseDate(d.Date)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d.Date]; dup {
			return nil, fmt.Errorf("duplicate holiday date %s", d.Date)
		}
		seen[d.Date] = struct{}{}
		out = append(out, holiday.Holiday{Date: date, Description: d.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
