package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// applyNoMShiftsInNDays: for every target i and every sliding window
// [j, j+n_days), sum_{d in window, k} X[i,d,k] + #u-positions(i) in window
// < m_shifts.
func applyNoMShiftsInNDays(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar {
	enable := newEnable(model, ri.ID())
	if ri.Params.MShifts == nil || ri.Params.NDays == nil {
		return enable
	}
	mShifts, nDays := *ri.Params.MShifts, *ri.Params.NDays
	// n_days range is checked by the assembler before this Applier ever runs.
	for _, i := range ri.Params.Filter.Targets(inst) {
		for start := 0; start+nDays <= len(inst.Days); start++ {
			uCount := 0
			var vs []cpmodel.BoolVar
			for d := start; d < start+nDays; d++ {
				vs = append(vs, vars.Day(i, d)...)
				if inst.UPositions.Has(i, d) {
					uCount++
				}
			}
			// strict "< m_shifts" <=> "<= m_shifts - 1 - uCount"
			rhs := int64(mShifts - 1 - uCount)
			model.AddLessOrEqual(sum(model, vs...), model.NewConstant(rhs)).OnlyEnforceIf(enable)
		}
	}
	return enable
}
