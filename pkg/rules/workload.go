package rules

import (
	"github.com/samber/lo"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// shiftsBefore returns every (i,j,k) variable for j < endOfMonth.
func shiftsBefore(inst *domain.Instance, vars variables.Set, i int) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for j := 0; j < inst.EndOfMonth; j++ {
		out = append(out, vars.Day(i, j)...)
	}
	return out
}

// applyTotalNumberOfShifts: for each target i,
// sum_{j<end_of_month,k} X[i,j,k] = max(0, total - u_count(i) - floor(ut_count(i)/2)).
func applyTotalNumberOfShifts(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	if ri.Params.Total == nil {
		return enable
	}
	total := *ri.Params.Total
	for _, i := range ri.Params.Filter.Targets(inst) {
		rhs := total - inst.EmergencyCount(i) - inst.HalfEmergencyCount(i)/2
		if rhs < 0 {
			rhs = 0
		}
		model.AddEquality(sum(model, shiftsBefore(inst, vars, i)...), model.NewConstant(int64(rhs))).OnlyEnforceIf(enable)
	}
	return enable
}

// applyTargetsDoAtLeastOfType: for each target i and each k whose name is
// in ri.Params.Types, sum_{j<end_of_month} X[i,j,k] >= 1.
func applyTargetsDoAtLeastOfType(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for _, k := range domain.ShiftTypes {
			if !lo.Contains(ri.Params.Types, k.Name()) {
				continue
			}
			var vs []cpmodel.BoolVar
			for j := 0; j < inst.EndOfMonth; j++ {
				vs = append(vs, vars.Get(i, j, k))
			}
			model.AddGreaterOrEqual(sum(model, vs...), model.NewConstant(1)).OnlyEnforceIf(enable)
		}
	}
	return enable
}

// applyTargetsDoNotDoType: for each target i, every day j, every k in
// ri.Params.Types, X[i,j,k]=0.
func applyTargetsDoNotDoType(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for j := range inst.Days {
			for _, k := range domain.ShiftTypes {
				if !lo.Contains(ri.Params.Types, k.Name()) {
					continue
				}
				forceOff(model, vars.Get(i, j, k), enable)
			}
		}
	}
	return enable
}

// applyMaxTwoPerTypeForTargets: for each target i and each k,
// sum_{j<end_of_month} X[i,j,k] <= 2.
func applyMaxTwoPerTypeForTargets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	for _, i := range ri.Params.Filter.Targets(inst) {
		for _, k := range domain.ShiftTypes {
			var vs []cpmodel.BoolVar
			for j := 0; j < inst.EndOfMonth; j++ {
				vs = append(vs, vars.Get(i, j, k))
			}
			model.AddLessOrEqual(sum(model, vs...), model.NewConstant(2)).OnlyEnforceIf(enable)
		}
	}
	return enable
}
