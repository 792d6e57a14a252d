package assembler

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// FixPresets adds an unconditional hard constraint pass fixing every
// preset cell: X[i,j,k*]=1 for the preset's own shift, X[i,j,k]=0 for
// every other k on that (resident, day). Unlike the rest of the catalogue
// this is not guarded by an enable literal — spec §4.5.4 calls for it on
// the validate path "independent of whether the enforce_presets rule has
// been requested", so it must hold even when enforce_presets is absent
// from the policy or has been relaxed away.
func FixPresets(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set) {
	for _, preset := range inst.Presets {
		for _, k := range domain.ShiftTypes {
			if k == preset.Shift {
				model.AddEquality(vars.Get(preset.ResidentIdx, preset.DayIdx, k), model.NewConstant(1))
			} else {
				model.AddEquality(vars.Get(preset.ResidentIdx, preset.DayIdx, k), model.NewConstant(0))
			}
		}
	}
}
