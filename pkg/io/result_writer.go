package io

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/residency-ops/oncall-scheduler/pkg/solver"
)

// WriteAssignment writes an AssignmentResult's matrix into layout's grid,
// overwriting the source workbook's shift cells in place, and saves the
// workbook to outPath. Relaxed and re-enabled rule ids are written as two
// extra rows below the grid, after one blank row, so a reviewer opening the sheet sees
// what the relaxation loop had to give up without needing a separate log.
func WriteAssignment(srcPath, outPath string, layout Layout, result solver.AssignmentResult) error {
	f, err := excelize.OpenFile(srcPath)
	if err != nil {
		return fmt.Errorf("io: failed to open workbook %s: %w", srcPath, err)
	}
	defer f.Close()

	for ri, row := range result.Matrix {
		for di, value := range row {
			name := cellName(layout.GridColStart+di, layout.GridRowStart+ri)
			if err := f.SetCellStr(layout.Sheet, name, value); err != nil {
				return fmt.Errorf("io: failed to write cell %s!%s: %w", layout.Sheet, name, err)
			}
		}
	}

	footerRow := layout.GridRowStart + layout.NResidents + 1
	if err := writeRow(f, layout.Sheet, footerRow, "relaxed_rules", result.RelaxedRuleIDs); err != nil {
		return err
	}
	if err := writeRow(f, layout.Sheet, footerRow+1, "re_enabled_rules", result.ReEnabledRuleIDs); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("io: failed to save workbook %s: %w", outPath, err)
	}
	return nil
}

// WriteValidation writes a ValidationResult's status and (when infeasible)
// minimal unsatisfiable rule subset into a fresh row below the grid, and
// saves the workbook to outPath. It never touches the grid cells
// themselves: validation doesn't produce an assignment.
func WriteValidation(srcPath, outPath string, layout Layout, result solver.ValidationResult) error {
	f, err := excelize.OpenFile(srcPath)
	if err != nil {
		return fmt.Errorf("io: failed to open workbook %s: %w", srcPath, err)
	}
	defer f.Close()

	footerRow := layout.GridRowStart + layout.NResidents + 1
	status := "FEASIBLE"
	if !result.Feasible() {
		status = string(result.SolverStatus)
	}
	if err := f.SetCellStr(layout.Sheet, cellName(nameCol, footerRow), status); err != nil {
		return fmt.Errorf("io: failed to write validation status: %w", err)
	}
	if err := writeRow(f, layout.Sheet, footerRow+1, "unsat_core", result.UnsatCore); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("io: failed to save workbook %s: %w", outPath, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, label string, ruleIDs []string) error {
	if err := f.SetCellStr(sheet, cellName(nameCol, row), label); err != nil {
		return fmt.Errorf("io: failed to write %s label: %w", label, err)
	}
	for i, ruleID := range ruleIDs {
		if err := f.SetCellStr(sheet, cellName(nameCol+1+i, row), ruleID); err != nil {
			return fmt.Errorf("io: failed to write %s entry %d: %w", label, i, err)
		}
	}
	return nil
}
