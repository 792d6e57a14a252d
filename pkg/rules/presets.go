package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// applyEnforcePresets: for every (i,j,k) in presets, X[i,j,k]=1.
func applyEnforcePresets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, preset := range inst.Presets {
		forceOn(model, vars.Get(preset.ResidentIdx, preset.DayIdx, preset.Shift), enable)
	}
	return enable
}

// applyOnlyPresetsForTargets: for target residents, X[i,j,k]=0 for every
// (i,j,k) not in presets. Used for self-scheduling R4s.
func applyOnlyPresetsForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	preset := make(map[domain.Position]domain.ShiftType, len(inst.Presets))
	for _, p := range inst.Presets {
		preset[domain.Position{ResidentIdx: p.ResidentIdx, DayIdx: p.DayIdx}] = p.Shift
	}
	for _, i := range ri.Params.Filter.Targets(inst) {
		for j := range inst.Days {
			fixed, hasPreset := preset[domain.Position{ResidentIdx: i, DayIdx: j}]
			for _, k := range domain.ShiftTypes {
				if hasPreset && k == fixed {
					continue
				}
				forceOff(model, vars.Get(i, j, k), enable)
			}
		}
	}
	return enable
}

// applyHolidayAssignedMustWork: for every (i,j) in p_positions,
// sum_k X[i,j,k] = 1.
func applyHolidayAssignedMustWork(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for pos := range inst.PPositions {
		model.AddEquality(sum(model, vars.Day(pos.ResidentIdx, pos.DayIdx)...), model.NewConstant(1)).OnlyEnforceIf(enable)
	}
	return enable
}
