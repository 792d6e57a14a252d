package solver

import (
	"github.com/residency-ops/oncall-scheduler/pkg/assembler"
	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
)

// ShrinkToMUS reduces core -- already known unsatisfiable under the full
// active rule set -- to a minimal unsatisfiable subset by the standard
// deletion-based algorithm: try dropping one rule id at a time; the drop
// sticks only if the remainder is still infeasible. Every remaining member
// is therefore necessary: dropping any one of them makes the subset
// feasible. Probes use the same hard preset-fixing pass as Validate.
func ShrinkToMUS(inst *domain.Instance, ruleInstances []policy.RuleInstance, core []string) ([]string, error) {
	mus := append([]string(nil), core...)
	for i := 0; i < len(mus); {
		candidate := make([]string, 0, len(mus)-1)
		candidate = append(candidate, mus[:i]...)
		candidate = append(candidate, mus[i+1:]...)

		feasible, err := probeFeasible(inst, ruleInstances, candidate)
		if err != nil {
			return nil, err
		}
		if feasible {
			i++
			continue
		}
		mus = candidate
	}
	return mus, nil
}

func probeFeasible(inst *domain.Instance, ruleInstances []policy.RuleInstance, activeIDs []string) (bool, error) {
	assembled, err := assembler.Build(inst, ruleInstances)
	if err != nil {
		return false, err
	}
	assembler.FixPresets(assembled.Model, inst, assembled.Vars)
	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}
	outcome, err := Solve(Attempt{Model: assembled.Model, Literals: assumptionLiterals(assembled, active)})
	if err != nil {
		return false, err
	}
	return outcome.Feasible, nil
}
