// Package solver is C6-C8: the thin CP-SAT wrapper (cpsolver.go), the
// core-to-rule-id mapping (corequery.go), the priority-driven relaxation
// and trim driver (driver.go), the deletion-based MUS shrinker (mus.go),
// and the result types (result.go).
package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Attempt is one CP-SAT solve over an already-assembled model: the builder
// plus the enable literals to assert as assumptions for this attempt only.
// Every attempt instantiates and solves its own model (spec's "created per
// solve attempt, destroyed after" variable lifetime extends to the whole
// attempt).
type Attempt struct {
	Model    *cpmodel.CpModelBuilder
	Literals []cpmodel.BoolVar
}

// SolverStatus mirrors the solver's own status vocabulary (spec §4.6/§7)
// verbatim, so a caller can surface it as-is rather than translating it
// through a Go-specific enum.
type SolverStatus string

const (
	StatusOptimal      SolverStatus = "OPTIMAL"
	StatusFeasible     SolverStatus = "FEASIBLE"
	StatusInfeasible   SolverStatus = "INFEASIBLE"
	StatusUnknown      SolverStatus = "UNKNOWN"
	StatusModelInvalid SolverStatus = "MODEL_INVALID"
)

// Outcome is the interpreted result of one solve call. Core is populated
// only when Status is StatusInfeasible: the rule ids the solver found
// jointly responsible for infeasibility, deduplicated, in the order the
// solver reported them. Status values other than OPTIMAL/FEASIBLE/
// INFEASIBLE are not errors (spec §7: "solver-status failures are values,
// not exceptions") — callers branch on Status, not on a returned error.
type Outcome struct {
	Status   SolverStatus
	Feasible bool
	Response *cpmodel.CpSolverResponse
	Core     []string
}

// Solve instantiates a.Model, attaches a.Literals as solver assumptions,
// and interprets the resulting status. The only errors it returns are
// build/call failures (malformed model, solve call itself erroring); every
// solver-reported status, including UNKNOWN and MODEL_INVALID, comes back
// as a value in Outcome.
func Solve(a Attempt) (Outcome, error) {
	a.Model.AddAssumptions(a.Literals...)
	m, err := a.Model.Model()
	if err != nil {
		return Outcome{}, fmt.Errorf("solver: failed to instantiate model: %w", err)
	}
	response, err := cpmodel.SolveCpModel(m)
	if err != nil {
		return Outcome{}, fmt.Errorf("solver: solve call failed: %w", err)
	}
	switch response.GetStatus() {
	case cpmodel.CpSolverStatus_OPTIMAL:
		return Outcome{Status: StatusOptimal, Feasible: true, Response: response}, nil
	case cpmodel.CpSolverStatus_FEASIBLE:
		return Outcome{Status: StatusFeasible, Feasible: true, Response: response}, nil
	case cpmodel.CpSolverStatus_INFEASIBLE:
		core := coreRuleIDs(m, response.GetSufficientAssumptionsForInfeasibility())
		return Outcome{Status: StatusInfeasible, Response: response, Core: core}, nil
	case cpmodel.CpSolverStatus_MODEL_INVALID:
		return Outcome{Status: StatusModelInvalid, Response: response}, nil
	default:
		return Outcome{Status: StatusUnknown, Response: response}, nil
	}
}
