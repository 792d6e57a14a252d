package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// applyOneShiftPerDay: for every (i,j), sum_k X[i,j,k] <= 1.
func applyOneShiftPerDay(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for i := range inst.Residents {
		for j := range inst.Days {
			model.AddLessOrEqual(sum(model, vars.Day(i, j)...), model.NewConstant(1)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applyAtMostOneResidentPerShiftPerDay: for every (j,k), sum_i X[i,j,k] <= 1.
func applyAtMostOneResidentPerShiftPerDay(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for j := range inst.Days {
		for _, k := range domain.ShiftTypes {
			residentVars := make([]cpmodel.BoolVar, len(inst.Residents))
			for i := range inst.Residents {
				residentVars[i] = vars.Get(i, j, k)
			}
			model.AddLessOrEqual(sum(model, residentVars...), model.NewConstant(1)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applyRestrictedDayOff: for every (i,j) in v_positions and every k, X[i,j,k]=0.
func applyRestrictedDayOff(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for pos := range inst.VPositions {
		for _, k := range domain.ShiftTypes {
			forceOff(model, vars.Get(pos.ResidentIdx, pos.DayIdx, k), enable)
		}
	}
	return enable
}

// applyExternalRotationOff: for every i in external_rotations, every (j,k), X[i,j,k]=0.
func applyExternalRotationOff(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range inst.ExternalRotations {
		for j := range inst.Days {
			for _, k := range domain.ShiftTypes {
				forceOff(model, vars.Get(i, j, k), enable)
			}
		}
	}
	return enable
}

// applyNoRonWeekendsOrHolidays: for every (i,j) with day in {S,D} or j in
// p_days, X[i,j,R]=0.
func applyNoRonWeekendsOrHolidays(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for j := range inst.Days {
		if !onWeekendOrHoliday(inst, j) {
			continue
		}
		for i := range inst.Residents {
			forceOff(model, vars.Get(i, j, domain.R), enable)
		}
	}
	return enable
}

// applyRestAfterAnyShift: for every i and j < len(days)-1,
// sum_k X[i,j,k] + sum_k X[i,j+1,k] <= 1.
func applyRestAfterAnyShift(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for i := range inst.Residents {
		for j := 0; j < len(inst.Days)-1; j++ {
			both := append(append([]cpmodel.BoolVar{}, vars.Day(i, j)...), vars.Day(i, j+1)...)
			model.AddLessOrEqual(sum(model, both...), model.NewConstant(1)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applyBlockAroundEmergencyU: for every (i,j) in u_positions and every k,
// X[i,j,k]=0; if 0<j<len(days)-1, also the adjacent days are blocked.
func applyBlockAroundEmergencyU(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for pos := range inst.UPositions {
		i, j := pos.ResidentIdx, pos.DayIdx
		for _, k := range domain.ShiftTypes {
			forceOff(model, vars.Get(i, j, k), enable)
			if j > 0 && j < len(inst.Days)-1 {
				forceOff(model, vars.Get(i, j-1, k), enable)
				forceOff(model, vars.Get(i, j+1, k), enable)
			}
		}
	}
	return enable
}

// applyBlockAroundEmergencyUt: for every (i,j) in ut_positions and every k,
// X[i,j,k]=0; if j>0, also the previous day is blocked.
func applyBlockAroundEmergencyUt(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for pos := range inst.UtPositions {
		i, j := pos.ResidentIdx, pos.DayIdx
		for _, k := range domain.ShiftTypes {
			forceOff(model, vars.Get(i, j, k), enable)
			if j > 0 {
				forceOff(model, vars.Get(i, j-1, k), enable)
			}
		}
	}
	return enable
}
