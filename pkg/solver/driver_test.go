package solver_test

import (
	"context"
	"testing"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/solver"
)

func weekdays(n int) []domain.Day {
	letters := []domain.Weekday{domain.Lunes, domain.Martes, domain.Miercoles, domain.Jueves, domain.Viernes}
	days := make([]domain.Day, n)
	for i := 0; i < n; i++ {
		days[i] = domain.Day{Number: i + 1, DayOfWeek: letters[i%len(letters)]}
	}
	return days
}

func twoResidents() []domain.Resident {
	return []domain.Resident{
		{Name: "Ana", Rank: domain.R1},
		{Name: "Beto", Rank: domain.R2},
	}
}

func hardPhysicalRules() []policy.RuleInstance {
	return []policy.RuleInstance{
		policy.NewRuleInstance(policy.OneShiftPerDay, "", nil, policy.Params{}),
		policy.NewRuleInstance(policy.AtMostOneResidentPerShiftPerDay, "", nil, policy.Params{}),
	}
}

func TestAssignFeasibleBaseline(t *testing.T) {
	inst := domain.New(twoResidents(), weekdays(3))
	result, err := solver.Assign(context.Background(), inst, hardPhysicalRules())
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if len(result.RelaxedRuleIDs) != 0 {
		t.Fatalf("expected no relaxed rules, got %v", result.RelaxedRuleIDs)
	}
	if len(result.Matrix) != 2 || len(result.Matrix[0]) != 3 {
		t.Fatalf("matrix has wrong shape: %v", result.Matrix)
	}
}

func TestAssignRelaxesSoftRuleOverHardOne(t *testing.T) {
	filter := policy.Filter{IncludeRanks: []domain.Rank{domain.R1}}
	needsM := policy.NewRuleInstance(policy.TargetsDoAtLeastOfType, "needs_m", nil, policy.Params{Filter: filter, Types: []string{"M"}})
	noMAllowed := policy.NewRuleInstance(policy.TargetsDoNotDoType, "no_m_allowed", nil, policy.Params{Filter: filter, Types: []string{"M"}})

	ruleInstances := append(hardPhysicalRules(), needsM, noMAllowed)
	inst := domain.New(twoResidents(), weekdays(3))

	result, err := solver.Assign(context.Background(), inst, ruleInstances)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if len(result.RelaxedRuleIDs) != 1 || result.RelaxedRuleIDs[0] != "needs_m" {
		t.Fatalf("expected needs_m (the higher-priority, more relaxable rule) to be relaxed, got %v", result.RelaxedRuleIDs)
	}
}

func TestValidateReportsMUSOnConflictingSoftRules(t *testing.T) {
	filter := policy.Filter{IncludeRanks: []domain.Rank{domain.R1}}
	needsM := policy.NewRuleInstance(policy.TargetsDoAtLeastOfType, "needs_m", nil, policy.Params{Filter: filter, Types: []string{"M"}})
	doesNotDoM := policy.NewRuleInstance(policy.TargetsDoNotDoType, "no_m_allowed", intPtr(5), policy.Params{Filter: filter, Types: []string{"M"}})

	ruleInstances := append(hardPhysicalRules(), needsM, doesNotDoM)
	inst := domain.New(twoResidents(), weekdays(3))

	result, err := solver.Validate(context.Background(), inst, ruleInstances)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Feasible() {
		t.Fatalf("expected infeasible, got feasible result")
	}
	if result.SolverStatus != solver.StatusInfeasible {
		t.Fatalf("expected INFEASIBLE solver status, got %v", result.SolverStatus)
	}
	if len(result.UnsatCore) != 2 {
		t.Fatalf("expected a two-rule unsat core, got %v", result.UnsatCore)
	}
	if result.UnsatCore[0] != "needs_m" || result.UnsatCore[1] != "no_m_allowed" {
		t.Fatalf("expected unsat core {needs_m, no_m_allowed}, got %v", result.UnsatCore)
	}
}

func TestValidateFeasibleInstanceReportsNoMUS(t *testing.T) {
	inst := domain.New(twoResidents(), weekdays(3))
	result, err := solver.Validate(context.Background(), inst, hardPhysicalRules())
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Feasible() {
		t.Fatalf("expected feasible, got infeasible with unsat core %v", result.UnsatCore)
	}
	if result.UnsatCore != nil {
		t.Fatalf("expected nil unsat core on a feasible result, got %v", result.UnsatCore)
	}
}

func TestAssignRelaxesHardRuleWhenCoreIsAllPriorityZero(t *testing.T) {
	filter := policy.Filter{IncludeRanks: []domain.Rank{domain.R1}}
	doNotDoG := policy.NewRuleInstance(policy.TargetsDoNotDoType, "no_g", nil, policy.Params{Filter: filter, Types: []string{"G"}})
	doNotDoGAgain := policy.NewRuleInstance(policy.TargetsDoNotDoType, "no_g_again", nil, policy.Params{Filter: filter, Types: []string{"R", "T", "M"}})

	residents := []domain.Resident{{Name: "Ana", Rank: domain.R1}}
	inst := domain.New(residents, weekdays(1), func(inst *domain.Instance) {
		inst.PPositions = domain.NewPositions(domain.Position{ResidentIdx: 0, DayIdx: 0})
	})
	ruleInstances := []policy.RuleInstance{
		policy.NewRuleInstance(policy.OneShiftPerDay, "", nil, policy.Params{}),
		policy.NewRuleInstance(policy.AtMostOneResidentPerShiftPerDay, "", nil, policy.Params{}),
		policy.NewRuleInstance(policy.HolidayAssignedMustWork, "", nil, policy.Params{}),
		doNotDoG,
		doNotDoGAgain,
	}

	result, err := solver.Assign(context.Background(), inst, ruleInstances)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if result.SolverStatus != solver.StatusOptimal && result.SolverStatus != solver.StatusFeasible {
		t.Fatalf("expected a feasible result after relaxing a priority-0 rule, got status %v", result.SolverStatus)
	}
	if len(result.RelaxedRuleIDs) == 0 {
		t.Fatalf("expected the cascading loop to relax one of the all-hard conflicting rules, got none")
	}
}

func TestValidateFixesPresetsEvenWithoutEnforcePresetsRule(t *testing.T) {
	residents := []domain.Resident{{Name: "Ana", Rank: domain.R3}}
	inst := domain.New(residents, weekdays(1), func(inst *domain.Instance) {
		inst.Presets = []domain.Preset{{ResidentIdx: 0, DayIdx: 0, Shift: domain.G}}
	})

	ruleInstances := []policy.RuleInstance{
		policy.NewRuleInstance(policy.TargetsDoNotDoType, "", nil, policy.Params{Types: []string{"G"}}),
	}

	result, err := solver.Validate(context.Background(), inst, ruleInstances)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Feasible() {
		t.Fatalf("expected infeasible: the hard preset-fixing pass should force the preset shift even though enforce_presets is absent from the policy")
	}
}

func intPtr(v int) *int { return &v }
