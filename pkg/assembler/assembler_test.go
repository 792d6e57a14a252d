package assembler_test

import (
	"testing"

	"github.com/residency-ops/oncall-scheduler/pkg/assembler"
	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
)

func smallInstance() *domain.Instance {
	residents := []domain.Resident{{Name: "Ana", Rank: domain.R1}, {Name: "Beto", Rank: domain.R2}}
	days := []domain.Day{
		{Number: 1, DayOfWeek: domain.Lunes},
		{Number: 2, DayOfWeek: domain.Martes},
	}
	return domain.New(residents, days)
}

func TestBuildCollectsOneEnableLiteralPerRule(t *testing.T) {
	ruleInstances := []policy.RuleInstance{
		policy.NewRuleInstance(policy.OneShiftPerDay, "", nil, policy.Params{}),
		policy.NewRuleInstance(policy.AtMostOneResidentPerShiftPerDay, "", nil, policy.Params{}),
	}
	assembled, err := assembler.Build(smallInstance(), ruleInstances)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(assembled.Enables) != 2 {
		t.Fatalf("expected 2 enable literals, got %d", len(assembled.Enables))
	}
	if _, ok := assembled.Enables["one_shift_per_day"]; !ok {
		t.Errorf("missing enable literal for one_shift_per_day")
	}
	if _, ok := assembled.Enables["at_most_one_resident_per_shift_per_day"]; !ok {
		t.Errorf("missing enable literal for at_most_one_resident_per_shift_per_day")
	}
}

func TestBuildRejectsDuplicateRuleID(t *testing.T) {
	ruleInstances := []policy.RuleInstance{
		policy.NewRuleInstance(policy.OneShiftPerDay, "shared", nil, policy.Params{}),
		policy.NewRuleInstance(policy.AtMostOneResidentPerShiftPerDay, "shared", nil, policy.Params{}),
	}
	_, err := assembler.Build(smallInstance(), ruleInstances)
	if err == nil {
		t.Fatal("expected a duplicate rule id error, got nil")
	}
}

func TestBuildRejectsUnknownRuleKind(t *testing.T) {
	ruleInstances := []policy.RuleInstance{
		{Kind: "not_a_real_rule", RuleID: "x"},
	}
	_, err := assembler.Build(smallInstance(), ruleInstances)
	if err == nil {
		t.Fatal("expected an unknown rule kind error, got nil")
	}
}
