package policy_test

import (
	"context"
	"strings"
	"testing"

	"github.com/residency-ops/oncall-scheduler/pkg/policy"
)

const samplePolicy = `
rules:
  - id: one_shift_per_day
  - id: at_most_one_resident_per_shift_per_day
  - id: total_number_of_shifts
    init:
      total: 5
      include_ranks: [R2, R3]
  - id: no_such_rule
  - id: targets_do_at_least_of_type
    init:
      id: custom_id
      priority: 4
      types: [R, G, T, M]
`

func TestLoadYAMLSkipsUnknownAndAppliesOverrides(t *testing.T) {
	rules, err := policy.LoadYAML(context.Background(), []byte(samplePolicy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 4 {
		t.Fatalf("expected 4 known rules, got %d: %+v", len(rules), rules)
	}
	last := rules[3]
	if last.ID() != "custom_id" {
		t.Fatalf("expected overridden id custom_id, got %q", last.ID())
	}
	if last.Priority != 4 {
		t.Fatalf("expected overridden priority 4, got %d", last.Priority)
	}

	total := rules[2]
	if total.Priority != policy.DefaultPriorities[policy.TotalNumberOfShifts] {
		t.Fatalf("expected default priority for total_number_of_shifts, got %d", total.Priority)
	}
	if total.Params.Total == nil || *total.Params.Total != 5 {
		t.Fatalf("expected total=5, got %+v", total.Params.Total)
	}
}

func TestLoadYAMLRejectsDuplicateIDs(t *testing.T) {
	doc := `
rules:
  - id: one_shift_per_day
  - id: at_most_one_resident_per_shift_per_day
    init:
      id: one_shift_per_day
`
	_, err := policy.LoadYAML(context.Background(), []byte(doc))
	if err == nil || !strings.Contains(err.Error(), "duplicate rule id") {
		t.Fatalf("expected duplicate rule id error, got %v", err)
	}
}

func TestLoadYAMLRejectsIllegalFilterCombination(t *testing.T) {
	doc := `
rules:
  - id: total_number_of_shifts
    init:
      total: 1
      include_ranks: [R1]
      exclude_ranks: [R2]
`
	_, err := policy.LoadYAML(context.Background(), []byte(doc))
	if err == nil || !strings.Contains(err.Error(), "illegal target filter") {
		t.Fatalf("expected illegal filter combination error, got %v", err)
	}
}

func TestLoadYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := policy.LoadYAML(context.Background(), []byte("not: [valid"))
	if err == nil {
		t.Fatal("expected a malformed-document error")
	}
}
