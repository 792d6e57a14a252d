package solver

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// AssignmentResult is the outcome of Assign (spec §4.6): a full shift
// matrix plus the bookkeeping describing which rules had to give way to
// reach it. Matrix and Objective are nil/zero when SolverStatus never
// reached OPTIMAL/FEASIBLE (spec §4.5.2 step 6: UNKNOWN/MODEL_INVALID
// return a value, not an error). UnsatCore is the first infeasibility core
// observed across the whole relaxation loop ("first_core"), preserved even
// once a result is ultimately produced.
type AssignmentResult struct {
	Matrix           [][]string // [residentIdx][dayIdx] -> shift type name, or "" if unassigned
	Objective        *float64
	SolverStatus     SolverStatus
	WallTime         time.Duration
	UnsatCore        []string // first_core; nil if the loop never saw an infeasible attempt
	RelaxedRuleIDs   []string // rules the cascading loop disabled, sorted
	ReEnabledRuleIDs []string // disabled rules the trim pass restored, in the order it tried them
}

// ValidationResult is the outcome of Validate (spec §4.6): whether the
// instance/policy pair is solvable as given, and if not, a minimal
// explanation.
type ValidationResult struct {
	SolverStatus SolverStatus
	UnsatCore    []string // subset-minimal unsatisfiable rule id set; nil when feasible
	WallTime     time.Duration
}

// Feasible reports whether the instance/policy pair solved as given.
func (r ValidationResult) Feasible() bool {
	return r.SolverStatus == StatusOptimal || r.SolverStatus == StatusFeasible
}

func buildMatrix(inst *domain.Instance, vars variables.Set, response *cpmodel.CpSolverResponse) [][]string {
	matrix := make([][]string, len(inst.Residents))
	for i := range inst.Residents {
		matrix[i] = make([]string, len(inst.Days))
		for j := range inst.Days {
			for _, k := range domain.ShiftTypes {
				if cpmodel.SolutionBooleanValue(response, vars.Get(i, j, k)) {
					matrix[i][j] = k.Name()
					break
				}
			}
		}
	}
	return matrix
}
