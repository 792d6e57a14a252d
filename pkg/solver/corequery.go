package solver

import (
	"strings"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

const enablePrefix = "enable_"

// ruleIDFromLiteralName strips the enable_ naming convention (pkg/rules's
// newEnable) to recover the rule id a literal guards.
func ruleIDFromLiteralName(name string) (string, bool) {
	if !strings.HasPrefix(name, enablePrefix) {
		return "", false
	}
	return strings.TrimPrefix(name, enablePrefix), true
}

// coreRuleIDs maps a sufficient-assumptions-for-infeasibility core (proto
// variable indices into m) back to the rule ids they guard, preserving the
// solver's reported order and dropping duplicates. Purely name-indexed: a
// core entry that isn't an enable literal, or whose index falls outside
// m's variable list, is silently dropped rather than matched by identity.
func coreRuleIDs(m *cpmodel.CpModelProto, core []int32) []string {
	vars := m.GetVariables()
	seen := make(map[string]bool, len(core))
	var ids []string
	for _, idx := range core {
		if idx < 0 || int(idx) >= len(vars) {
			continue
		}
		ruleID, ok := ruleIDFromLiteralName(vars[idx].GetName())
		if !ok || seen[ruleID] {
			continue
		}
		seen[ruleID] = true
		ids = append(ids, ruleID)
	}
	return ids
}
