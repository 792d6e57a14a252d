// Package variables is C2: allocating one boolean decision variable per
// (resident, day, shift type) triple, with stable, dense naming. Grounded
// on the other_examples CP-SAT nurse-scheduling sample's
// shifts[shiftKey{...}] = model.NewBoolVar().WithName(...) pattern.
package variables

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
)

// Key identifies one decision variable.
type Key struct {
	ResidentIdx int
	DayIdx      int
	Shift       domain.ShiftType
}

// Set is the (i,j,k) -> BoolVar mapping built fresh for each solve
// attempt (spec §3: "Lifetime: created per solve attempt, destroyed after").
type Set map[Key]cpmodel.BoolVar

// Build allocates the full dense triple space for inst: every
// (resident, day, shift type) combination gets a variable, with no attempt
// to prune impossible cells here (spec §4.1: "Rules do the pruning by
// constraint").
func Build(model *cpmodel.CpModelBuilder, inst *domain.Instance) Set {
	vars := make(Set, len(inst.Residents)*len(inst.Days)*len(domain.ShiftTypes))
	for i := range inst.Residents {
		for j := range inst.Days {
			for _, k := range domain.ShiftTypes {
				name := fmt.Sprintf("shift_%d_%d_%d", i, j, int(k))
				vars[Key{ResidentIdx: i, DayIdx: j, Shift: k}] = model.NewBoolVar().WithName(name)
			}
		}
	}
	return vars
}

// Get returns the variable for (residentIdx, dayIdx, shift).
func (s Set) Get(residentIdx, dayIdx int, shift domain.ShiftType) cpmodel.BoolVar {
	return s[Key{ResidentIdx: residentIdx, DayIdx: dayIdx, Shift: shift}]
}

// Day returns every shift-type variable for (residentIdx, dayIdx), in
// ShiftTypes order.
func (s Set) Day(residentIdx, dayIdx int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, len(domain.ShiftTypes))
	for idx, k := range domain.ShiftTypes {
		out[idx] = s.Get(residentIdx, dayIdx, k)
	}
	return out
}
