package assembler

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// MaximizeTotalCoverage sets the objective used by Assign: maximize the
// number of assigned shifts across every resident and day. Validate never
// calls this; it only needs feasibility.
func MaximizeTotalCoverage(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set) {
	expr := cpmodel.NewLinearExpr()
	for i := range inst.Residents {
		for j := range inst.Days {
			for _, k := range domain.ShiftTypes {
				expr.AddTerm(vars.Get(i, j, k), 1)
			}
		}
	}
	model.Maximize(expr)
}
