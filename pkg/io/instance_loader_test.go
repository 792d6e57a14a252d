package io_test

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	oncallio "github.com/residency-ops/oncall-scheduler/pkg/io"
)

func writeFixtureWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Schedule"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	// day headers: numbers at row 2, weekday letters at row 3, columns D, E (4, 5)
	f.SetCellStr(sheet, "D2", "1")
	f.SetCellStr(sheet, "E2", "2")
	f.SetCellStr(sheet, "D3", "L")
	f.SetCellStr(sheet, "E3", "M")

	// residents at rows 4, 5: name (A), rank (B), external marker (C)
	f.SetCellStr(sheet, "A4", "Ana")
	f.SetCellStr(sheet, "B4", "R1")
	f.SetCellStr(sheet, "A5", "Beto")
	f.SetCellStr(sheet, "B5", "R2")
	f.SetCellStr(sheet, "C5", "EXT")

	// grid: Ana has a preset G on day 1, a restricted day off on day 2
	f.SetCellStr(sheet, "D4", "G")
	f.SetCellStr(sheet, "E4", "V")

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture workbook: %v", err)
	}
}

func testLayout() oncallio.Layout {
	return oncallio.Layout{
		Sheet:          "Schedule",
		ResidentsStart: 4,
		NResidents:     2,
		DayNumberRow:   2,
		WeekdayRow:     3,
		NDays:          2,
		GridRowStart:   4,
		GridColStart:   4,
	}
}

func TestLoadInstanceParsesResidentsDaysAndGridCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	writeFixtureWorkbook(t, path)

	inst, err := oncallio.LoadInstance(path, testLayout())
	if err != nil {
		t.Fatalf("LoadInstance returned error: %v", err)
	}

	if len(inst.Residents) != 2 || inst.Residents[0].Name != "Ana" || inst.Residents[1].Name != "Beto" {
		t.Fatalf("unexpected residents: %+v", inst.Residents)
	}
	if len(inst.Days) != 2 || inst.Days[0].Number != 1 || inst.Days[1].Number != 2 {
		t.Fatalf("unexpected days: %+v", inst.Days)
	}
	if !inst.IsExternalRotation(1) {
		t.Errorf("expected Beto (index 1) to be flagged as an external rotator")
	}
	if !inst.VPositions.Has(0, 1) {
		t.Errorf("expected a restricted day off at (0,1)")
	}
	if len(inst.Presets) != 1 || inst.Presets[0].ResidentIdx != 0 || inst.Presets[0].DayIdx != 0 {
		t.Fatalf("unexpected presets: %+v", inst.Presets)
	}
}

func TestLoadInstanceRejectsMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	writeFixtureWorkbook(t, path)

	layout := testLayout()
	layout.Sheet = "NotASheet"
	if _, err := oncallio.LoadInstance(path, layout); err == nil {
		t.Fatal("expected an error for a missing sheet, got nil")
	}
}

func TestLoadInstanceRejectsMalformedDayHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	f := excelize.NewFile()
	f.NewSheet("Schedule")
	f.DeleteSheet("Sheet1")
	f.SetCellStr("Schedule", "D2", "not-a-number")
	f.SetCellStr("Schedule", "D3", "L")
	f.SetCellStr("Schedule", "A4", "Ana")
	f.SetCellStr("Schedule", "B4", "R1")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture workbook: %v", err)
	}
	f.Close()

	layout := testLayout()
	layout.NDays = 1
	layout.NResidents = 1
	if _, err := oncallio.LoadInstance(path, layout); err == nil {
		t.Fatal("expected a malformed day-number header error, got nil")
	}
}
