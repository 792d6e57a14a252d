package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// applyAtLeastOneWeekendForTargets: for each target i,
// sum_{j<end_of_month, day in {S,D}, k} X[i,j,k] >= 1.
func applyAtLeastOneWeekendForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		var vs []cpmodel.BoolVar
		for j := 0; j < inst.EndOfMonth; j++ {
			if inst.Days[j].DayOfWeek.IsWeekend() {
				vs = append(vs, vars.Day(i, j)...)
			}
		}
		model.AddGreaterOrEqual(sum(model, vs...), model.NewConstant(1)).OnlyEnforceIf(enable)
	}
	return enable
}

// applyFridayRequiresSunday: for each target i and every Friday j with
// j+2<len(days), sum_{k!=R} X[i,j,k] = sum_k X[i,j+2,k].
func applyFridayRequiresSunday(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for j := range inst.Days {
			if inst.Days[j].DayOfWeek != domain.Viernes || j+2 >= len(inst.Days) {
				continue
			}
			var fridayNonR []cpmodel.BoolVar
			for _, k := range domain.ShiftTypes {
				if k == domain.R {
					continue
				}
				fridayNonR = append(fridayNonR, vars.Get(i, j, k))
			}
			model.AddEquality(sum(model, fridayNonR...), sum(model, vars.Day(i, j+2)...)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applySundayDifferentTypeThanFriday: for each target i, Friday j
// (j+2<len(days)), every k: X[i,j,k] + X[i,j+2,k] <= 1.
func applySundayDifferentTypeThanFriday(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for j := range inst.Days {
			if inst.Days[j].DayOfWeek != domain.Viernes || j+2 >= len(inst.Days) {
				continue
			}
			for _, k := range domain.ShiftTypes {
				model.AddLessOrEqual(sum(model, vars.Get(i, j, k), vars.Get(i, j+2, k)), model.NewConstant(1)).OnlyEnforceIf(enable)
			}
		}
	}
	return enable
}

// applyBlockMondayAfterSaturdayShiftTargets: for each target i and
// Saturday j with j+2<len(days),
// sum_k X[i,j,k] + sum_k X[i,j+2,k] <= 1.
func applyBlockMondayAfterSaturdayShiftTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for j := range inst.Days {
			if inst.Days[j].DayOfWeek != domain.Sabado || j+2 >= len(inst.Days) {
				continue
			}
			both := append(append([]cpmodel.BoolVar{}, vars.Day(i, j)...), vars.Day(i, j+2)...)
			model.AddLessOrEqual(sum(model, both...), model.NewConstant(1)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applyBlockMondayAfterSatEmergency: for every (i,j) in u_positions with i
// a target, days[j]=S, j<len(days)-2: X[i,j+2,k]=0 for every k.
func applyBlockMondayAfterSatEmergency(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	targets := map[int]bool{}
	for _, i := range ri.Params.Filter.Targets(inst) {
		targets[i] = true
	}
	for pos := range inst.UPositions {
		i, j := pos.ResidentIdx, pos.DayIdx
		if !targets[i] || inst.Days[j].DayOfWeek != domain.Sabado || j >= len(inst.Days)-2 {
			continue
		}
		for _, k := range domain.ShiftTypes {
			forceOff(model, vars.Get(i, j+2, k), enable)
		}
	}
	return enable
}

// applyMaxWeekendShiftsForTargets: for each target i, |weekend shifts of i|
// + |u_positions of i on weekends| + |ut_positions of i on weekends| <= max.
func applyMaxWeekendShiftsForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	if ri.Params.Max == nil {
		return enable
	}
	for _, i := range ri.Params.Filter.Targets(inst) {
		fixedEmergencies := 0
		for pos := range inst.UPositions {
			if pos.ResidentIdx == i && pos.DayIdx < inst.EndOfMonth && inst.Days[pos.DayIdx].DayOfWeek.IsWeekend() {
				fixedEmergencies++
			}
		}
		for pos := range inst.UtPositions {
			if pos.ResidentIdx == i && pos.DayIdx < inst.EndOfMonth && inst.Days[pos.DayIdx].DayOfWeek.IsWeekend() {
				fixedEmergencies++
			}
		}
		var vs []cpmodel.BoolVar
		for j := 0; j < inst.EndOfMonth; j++ {
			if inst.Days[j].DayOfWeek.IsWeekend() {
				vs = append(vs, vars.Day(i, j)...)
			}
		}
		budget := *ri.Params.Max - fixedEmergencies
		model.AddLessOrEqual(sum(model, vs...), model.NewConstant(int64(budget))).OnlyEnforceIf(enable)
	}
	return enable
}

// applyWeekendBalanceForTargets: for each target i,
// |#Saturday-shifts(i) - #Sunday-shifts(i)| <= 1.
func applyWeekendBalanceForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		var saturdays, sundays []cpmodel.BoolVar
		for j := 0; j < inst.EndOfMonth; j++ {
			switch inst.Days[j].DayOfWeek {
			case domain.Sabado:
				saturdays = append(saturdays, vars.Day(i, j)...)
			case domain.Domingo:
				sundays = append(sundays, vars.Day(i, j)...)
			}
		}
		diff := cpmodel.NewLinearExpr()
		for _, v := range saturdays {
			diff.AddTerm(v, 1)
		}
		for _, v := range sundays {
			diff.AddTerm(v, -1)
		}
		model.AddLessOrEqual(diff, model.NewConstant(1)).OnlyEnforceIf(enable)
		model.AddGreaterOrEqual(diff, model.NewConstant(-1)).OnlyEnforceIf(enable)
	}
	return enable
}

// applyMaxOneSundayForTargets: for each target i,
// sum_{j<end_of_month, day=D, k} X[i,j,k] <= 1.
func applyMaxOneSundayForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		var vs []cpmodel.BoolVar
		for j := 0; j < inst.EndOfMonth; j++ {
			if inst.Days[j].DayOfWeek == domain.Domingo {
				vs = append(vs, vars.Day(i, j)...)
			}
		}
		model.AddLessOrEqual(sum(model, vs...), model.NewConstant(1)).OnlyEnforceIf(enable)
	}
	return enable
}
