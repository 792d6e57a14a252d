// Package io is the spec's external interface boundary (spec §6.1, §6.3):
// excelize-backed LoadInstance and WriteAssignment/WriteValidation. Neither the CP
// model nor the solver driver import this package; they only ever see the
// domain types it produces, so a different loader (a database row reader,
// a different spreadsheet layout) can replace it without touching pkg/rules
// or pkg/solver.
package io

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
)

// Layout parameterizes where an Instance's data sits in the workbook, per
// spec §6.1: resident names run down a fixed column starting at
// ResidentsStart, day headers run across two stacked rows (day number,
// then weekday letter) starting at the same column as the shift grid, and
// the shift grid's top-left cell is (GridRowStart, GridColStart).
// ExtraPDays is supplied directly rather than read from the sheet, since
// it names holiday days that may have no column of their own.
type Layout struct {
	Sheet string

	ResidentsStart int // first row (1-indexed) holding a resident name
	NResidents     int

	DayNumberRow int // row holding day numbers ("12")
	WeekdayRow   int // row holding weekday letters ("V"), directly below DayNumberRow
	NDays        int

	GridRowStart int // first row of the shift grid
	GridColStart int // first column of the shift grid

	ExtraPDays []int
}

const (
	nameCol     = 1
	rankCol     = 2
	externalCol = 3 // holds "EXT" for a resident on external rotation all month
)

// cell codes a grid cell may carry in place of a solver-assigned shift.
const (
	codeRestricted = "V"  // restricted_day_off
	codeEmergency  = "U"  // full-day emergency already worked
	codeHalfEmerg  = "UT" // half-day emergency already worked
	codeHoliday    = "P"  // holiday coverage this resident must work, no fixed shift
)

// LoadInstance reads the workbook at path under layout and builds an
// Instance. A missing sheet, or a day-number header that doesn't parse as
// an integer, is a fatal configuration error (spec §6.1, §7).
func LoadInstance(path string, layout Layout) (*domain.Instance, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("io: failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetIdx, err := f.GetSheetIndex(layout.Sheet)
	if err != nil {
		return nil, fmt.Errorf("io: sheet %q not found in %s: %w", layout.Sheet, path, err)
	}
	if sheetIdx < 0 {
		return nil, fmt.Errorf("io: sheet %q not found in %s", layout.Sheet, path)
	}

	residents, externalRotations, err := loadResidents(f, layout)
	if err != nil {
		return nil, err
	}
	days, err := loadDays(f, layout)
	if err != nil {
		return nil, err
	}

	var vPositions, uPositions, utPositions, pPositions []domain.Position
	var presets []domain.Preset

	for ri := 0; ri < layout.NResidents; ri++ {
		row := layout.GridRowStart + ri
		for di := 0; di < layout.NDays; di++ {
			col := layout.GridColStart + di
			value := strings.TrimSpace(cell(f, layout.Sheet, col, row))
			if value == "" {
				continue
			}
			switch value {
			case codeRestricted:
				vPositions = append(vPositions, domain.Position{ResidentIdx: ri, DayIdx: di})
			case codeEmergency:
				uPositions = append(uPositions, domain.Position{ResidentIdx: ri, DayIdx: di})
			case codeHalfEmerg:
				utPositions = append(utPositions, domain.Position{ResidentIdx: ri, DayIdx: di})
			case codeHoliday:
				pPositions = append(pPositions, domain.Position{ResidentIdx: ri, DayIdx: di})
			default:
				shift, err := domain.ParseShiftType(value)
				if err != nil {
					return nil, fmt.Errorf("io: cell %s!%s: %w", layout.Sheet, cellName(col, row), err)
				}
				presets = append(presets, domain.Preset{ResidentIdx: ri, DayIdx: di, Shift: shift})
			}
		}
	}

	inst := domain.New(residents, days, func(inst *domain.Instance) {
		inst.VPositions = domain.NewPositions(vPositions...)
		inst.UPositions = domain.NewPositions(uPositions...)
		inst.UtPositions = domain.NewPositions(utPositions...)
		inst.PPositions = domain.NewPositions(pPositions...)
		inst.ExternalRotations = externalRotations
		inst.Presets = presets
		inst.ExtraPDays = layout.ExtraPDays
	})
	return inst, inst.Validate()
}

func loadResidents(f *excelize.File, layout Layout) ([]domain.Resident, []int, error) {
	residents := make([]domain.Resident, layout.NResidents)
	var external []int
	for i := 0; i < layout.NResidents; i++ {
		row := layout.ResidentsStart + i
		name := strings.TrimSpace(cell(f, layout.Sheet, nameCol, row))
		rank := strings.TrimSpace(cell(f, layout.Sheet, rankCol, row))
		residents[i] = domain.Resident{Name: name, Rank: domain.Rank(rank)}
		if strings.TrimSpace(cell(f, layout.Sheet, externalCol, row)) == "EXT" {
			external = append(external, i)
		}
	}
	return residents, external, nil
}

// loadDays reads the two stacked header rows (day number, then weekday
// letter) at each grid column, per spec §6.1's "two rows: day-number,
// weekday letter".
func loadDays(f *excelize.File, layout Layout) ([]domain.Day, error) {
	days := make([]domain.Day, layout.NDays)
	for i := 0; i < layout.NDays; i++ {
		col := layout.GridColStart + i
		numberHeader := strings.TrimSpace(cell(f, layout.Sheet, col, layout.DayNumberRow))
		number, err := strconv.Atoi(numberHeader)
		if err != nil {
			return nil, fmt.Errorf("io: day number header %s!%s: %w", layout.Sheet, cellName(col, layout.DayNumberRow), err)
		}
		weekday := strings.TrimSpace(cell(f, layout.Sheet, col, layout.WeekdayRow))
		days[i] = domain.Day{Number: number, DayOfWeek: domain.Weekday(weekday)}
	}
	return days, nil
}

func cell(f *excelize.File, sheet string, col, row int) string {
	value, _ := f.GetCellValue(sheet, cellName(col, row))
	return value
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", col, row)
	}
	return name
}
