package solver

import (
	"context"
	"sort"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/internal/log"
	"github.com/residency-ops/oncall-scheduler/internal/metrics"
	"github.com/residency-ops/oncall-scheduler/pkg/assembler"
	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
)

// Assign runs the priority-driven cascading relaxation loop: solve with
// every rule active; on infeasibility, disable the highest-priority rule
// in the reported core, re-solve, and repeat until feasible or no
// relaxable rule remains. Once feasible, a trim pass tries to re-enable
// each disabled rule, in ascending-priority order, keeping the re-enable
// only if the model stays feasible. The returned matrix comes from the
// final solve under the trimmed active set, maximizing total coverage.
// Solver statuses other than OPTIMAL/FEASIBLE/INFEASIBLE (UNKNOWN,
// MODEL_INVALID) end the loop and come back as a value in the result
// (spec §4.5.2 step 6), not as a Go error.
func Assign(ctx context.Context, inst *domain.Instance, ruleInstances []policy.RuleInstance) (AssignmentResult, error) {
	logger := log.FromContext(ctx)
	start := time.Now()
	defer func() {
		metrics.SolveWallTimeSeconds.WithLabelValues("assign").Observe(time.Since(start).Seconds())
	}()

	priorities := rulePriorities(ruleInstances)
	active := allActive(ruleInstances)

	var relaxed []string
	var firstCore []string

	for {
		assembled, err := assembler.Build(inst, ruleInstances)
		if err != nil {
			return AssignmentResult{}, err
		}
		assembler.MaximizeTotalCoverage(assembled.Model, inst, assembled.Vars)

		outcome, err := Solve(Attempt{Model: assembled.Model, Literals: assumptionLiterals(assembled, active)})
		if err != nil {
			return AssignmentResult{}, err
		}
		metrics.SolveAttemptsCounter.WithLabelValues(statusLabel(outcome)).Inc()

		if outcome.Status == StatusOptimal || outcome.Status == StatusFeasible {
			break
		}
		if outcome.Status == StatusUnknown || outcome.Status == StatusModelInvalid {
			return AssignmentResult{
				SolverStatus:   outcome.Status,
				WallTime:       time.Since(start),
				UnsatCore:      firstCore,
				RelaxedRuleIDs: relaxed,
			}, nil
		}

		// outcome.Status == StatusInfeasible.
		if firstCore == nil {
			firstCore = outcome.Core
		}
		candidate, ok := pickRelaxationCandidate(outcome.Core, priorities)
		if !ok {
			return AssignmentResult{
				SolverStatus:   outcome.Status,
				WallTime:       time.Since(start),
				UnsatCore:      firstCore,
				RelaxedRuleIDs: relaxed,
			}, nil
		}
		logger.Infow("relaxing rule", "rule_id", candidate, "core", outcome.Core)
		active[candidate] = false
		relaxed = append(relaxed, candidate)
		metrics.RulesRelaxedCounter.WithLabelValues(candidate).Inc()
	}

	reEnabled := trim(inst, ruleInstances, active, relaxed)
	for _, id := range reEnabled {
		active[id] = true
	}
	relaxed = subtract(relaxed, reEnabled)
	sort.Strings(relaxed)

	assembled, err := assembler.Build(inst, ruleInstances)
	if err != nil {
		return AssignmentResult{}, err
	}
	assembler.MaximizeTotalCoverage(assembled.Model, inst, assembled.Vars)
	outcome, err := Solve(Attempt{Model: assembled.Model, Literals: assumptionLiterals(assembled, active)})
	if err != nil {
		return AssignmentResult{}, err
	}
	if outcome.Status != StatusOptimal && outcome.Status != StatusFeasible {
		return AssignmentResult{
			SolverStatus:   outcome.Status,
			WallTime:       time.Since(start),
			UnsatCore:      firstCore,
			RelaxedRuleIDs: relaxed,
		}, nil
	}

	objective := outcome.Response.GetObjectiveValue()
	return AssignmentResult{
		Matrix:           buildMatrix(inst, assembled.Vars, outcome.Response),
		Objective:        &objective,
		SolverStatus:     outcome.Status,
		WallTime:         time.Since(start),
		UnsatCore:        firstCore,
		RelaxedRuleIDs:   relaxed,
		ReEnabledRuleIDs: reEnabled,
	}, nil
}

// Validate checks the instance/policy pair as given, with no relaxation.
// In addition to whatever enforce_presets rule the policy carries, it adds
// a hard preset-fixing pass (spec §4.5.4) so presets are inviolable for
// validation regardless of policy content. On infeasibility it shrinks the
// reported core to a minimal unsatisfiable subset of rule ids. UNKNOWN/
// MODEL_INVALID come back as a value, not an error.
func Validate(ctx context.Context, inst *domain.Instance, ruleInstances []policy.RuleInstance) (ValidationResult, error) {
	start := time.Now()
	defer func() {
		metrics.SolveWallTimeSeconds.WithLabelValues("validate").Observe(time.Since(start).Seconds())
	}()

	assembled, err := assembler.Build(inst, ruleInstances)
	if err != nil {
		return ValidationResult{}, err
	}
	assembler.FixPresets(assembled.Model, inst, assembled.Vars)
	active := allActive(ruleInstances)

	outcome, err := Solve(Attempt{Model: assembled.Model, Literals: assumptionLiterals(assembled, active)})
	if err != nil {
		return ValidationResult{}, err
	}
	metrics.SolveAttemptsCounter.WithLabelValues(statusLabel(outcome)).Inc()

	if outcome.Status == StatusOptimal || outcome.Status == StatusFeasible {
		return ValidationResult{SolverStatus: outcome.Status, WallTime: time.Since(start)}, nil
	}
	if outcome.Status == StatusUnknown || outcome.Status == StatusModelInvalid {
		return ValidationResult{SolverStatus: outcome.Status, WallTime: time.Since(start)}, nil
	}

	mus, err := ShrinkToMUS(inst, ruleInstances, outcome.Core)
	if err != nil {
		return ValidationResult{}, err
	}
	sort.Strings(mus)
	return ValidationResult{SolverStatus: outcome.Status, UnsatCore: mus, WallTime: time.Since(start)}, nil
}

// trim tries to re-enable each member of relaxed, in ascending-priority
// order (the rules closest to hard go first), keeping the re-enable only
// if the model stays feasible with it active.
func trim(inst *domain.Instance, ruleInstances []policy.RuleInstance, active map[string]bool, relaxed []string) []string {
	priorities := rulePriorities(ruleInstances)
	ordered := append([]string(nil), relaxed...)
	sort.Slice(ordered, func(a, b int) bool { return priorities[ordered[a]] < priorities[ordered[b]] })

	trial := make(map[string]bool, len(active))
	for id, v := range active {
		trial[id] = v
	}

	var reEnabled []string
	for _, id := range ordered {
		trial[id] = true
		assembled, err := assembler.Build(inst, ruleInstances)
		if err != nil {
			trial[id] = false
			continue
		}
		outcome, err := Solve(Attempt{Model: assembled.Model, Literals: assumptionLiterals(assembled, trial)})
		if err != nil || !outcome.Feasible {
			trial[id] = false
			continue
		}
		reEnabled = append(reEnabled, id)
	}
	return reEnabled
}

// pickRelaxationCandidate returns the core member with the largest
// priority (spec §4.5.2 step 7: no floor at priority 0 — a core made up
// entirely of hard rules still yields a candidate); ties go to whichever
// the solver listed first in core.
func pickRelaxationCandidate(core []string, priorities map[string]int) (string, bool) {
	best := ""
	bestPriority := -1
	found := false
	for _, id := range core {
		p := priorities[id]
		if !found || p > bestPriority {
			bestPriority = p
			best = id
			found = true
		}
	}
	return best, found
}

func allActive(ruleInstances []policy.RuleInstance) map[string]bool {
	active := make(map[string]bool, len(ruleInstances))
	for _, ri := range ruleInstances {
		active[ri.ID()] = true
	}
	return active
}

func rulePriorities(ruleInstances []policy.RuleInstance) map[string]int {
	priorities := make(map[string]int, len(ruleInstances))
	for _, ri := range ruleInstances {
		priorities[ri.ID()] = ri.Priority
	}
	return priorities
}

func assumptionLiterals(assembled *assembler.Assembled, active map[string]bool) []cpmodel.BoolVar {
	ids := make([]string, 0, len(assembled.Enables))
	for id := range assembled.Enables {
		if active[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	literals := make([]cpmodel.BoolVar, len(ids))
	for i, id := range ids {
		literals[i] = assembled.Enables[id]
	}
	return literals
}

func subtract(all, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, id := range remove {
		removeSet[id] = true
	}
	var out []string
	for _, id := range all {
		if !removeSet[id] {
			out = append(out, id)
		}
	}
	return out
}

func statusLabel(outcome Outcome) string {
	return string(outcome.Status)
}
