// Package assembler is C4: given an instance and an ordered policy, build
// the CP model (allocate variables via pkg/variables, apply every rule via
// pkg/rules in order) and return the rule_id -> enable-literal map the
// solver driver needs to interpret assumptions and cores.
package assembler

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/rules"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// Assembled is everything the solver driver needs to solve one attempt: the
// model, the decision variables, and the rule_id -> enable literal map.
type Assembled struct {
	Model   *cpmodel.CpModelBuilder
	Vars    variables.Set
	Enables map[string]cpmodel.BoolVar
}

// Build assembles a fresh model for inst under ruleInstances, applied in
// order. Two rule instances sharing a rule id is a configuration error
// (spec §4.3, §7).
func Build(inst *domain.Instance, ruleInstances []policy.RuleInstance) (*Assembled, error) {
	model := cpmodel.NewCpModelBuilder()
	vars := variables.Build(model, inst)

	enables := make(map[string]cpmodel.BoolVar, len(ruleInstances))
	for _, ri := range ruleInstances {
		id := ri.ID()
		if _, exists := enables[id]; exists {
			return nil, fmt.Errorf("assembler: duplicate rule id %q", id)
		}
		if err := validateRuleInstance(inst, ri); err != nil {
			return nil, err
		}
		enable, err := rules.Apply(model, inst, vars, ri)
		if err != nil {
			return nil, err
		}
		enables[id] = enable
	}
	return &Assembled{Model: model, Vars: vars, Enables: enables}, nil
}

// validateRuleInstance checks configuration constraints that a rule
// instance's Applier has no way to report on its own (spec §7: "out-of-
// range window size" is a fatal configuration error, raised before
// solving, not a silently-accepted no-op).
func validateRuleInstance(inst *domain.Instance, ri policy.RuleInstance) error {
	if ri.Kind == policy.NoMShiftsInNDays && ri.Params.NDays != nil {
		n := *ri.Params.NDays
		if n <= 0 || n > len(inst.Days) {
			return fmt.Errorf("assembler: rule %q: n_days %d out of range for a %d-day instance", ri.ID(), n, len(inst.Days))
		}
	}
	return nil
}
