// Package rules is C3: the ~25-strong rule catalogue of spec §4.2. Every
// rule is a pure function (model, instance, variables, rule instance) ->
// enable literal, conditioning every constraint it emits on that literal
// via OnlyEnforceIf, so the solver's infeasibility core can later identify
// exactly which rule to relax (spec §3 "Enable literals").
package rules

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

// Applier emits the constraints for one rule instance, guarded by a fresh
// enable literal, and returns that literal.
type Applier func(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) cpmodel.BoolVar

// catalogue is the static rule_id -> RuleKind dispatch table of Design
// Note 1, replacing the source's runtime subclass registry.
var catalogue = map[policy.RuleKind]Applier{
	policy.OneShiftPerDay:                       applyOneShiftPerDay,
	policy.AtMostOneResidentPerShiftPerDay:       applyAtMostOneResidentPerShiftPerDay,
	policy.RestrictedDayOff:                      applyRestrictedDayOff,
	policy.ExternalRotationOff:                   applyExternalRotationOff,
	policy.NoRonWeekendsOrHolidays:                applyNoRonWeekendsOrHolidays,
	policy.RestAfterAnyShift:                     applyRestAfterAnyShift,
	policy.BlockAroundEmergencyU:                 applyBlockAroundEmergencyU,
	policy.BlockAroundEmergencyUt:                applyBlockAroundEmergencyUt,
	policy.EnforcePresets:                        applyEnforcePresets,
	policy.OnlyPresetsForTargets:                 applyOnlyPresetsForTargets,
	policy.HolidayAssignedMustWork:               applyHolidayAssignedMustWork,
	policy.CoverGOrTEachDay:                      applyCoverGOrTEachDay,
	policy.SeniorGOrTRequiresOtherCoverage:       applySeniorGOrTRequiresOtherCoverage,
	policy.MinAssignmentsPerDay:                  applyMinAssignmentsPerDay,
	policy.NotSameTypeUncoveredBothWeekendDays:   applyNotSameTypeUncoveredBothWeekendDays,
	policy.TotalNumberOfShifts:                   applyTotalNumberOfShifts,
	policy.TargetsDoAtLeastOfType:                applyTargetsDoAtLeastOfType,
	policy.TargetsDoNotDoType:                    applyTargetsDoNotDoType,
	policy.MaxTwoPerTypeForTargets:                applyMaxTwoPerTypeForTargets,
	policy.AtLeastOneWeekendForTargets:            applyAtLeastOneWeekendForTargets,
	policy.FridayRequiresSunday:                   applyFridayRequiresSunday,
	policy.SundayDifferentTypeThanFriday:          applySundayDifferentTypeThanFriday,
	policy.BlockMondayAfterSaturdayShiftTargets:   applyBlockMondayAfterSaturdayShiftTargets,
	policy.BlockMondayAfterSatEmergency:           applyBlockMondayAfterSatEmergency,
	policy.MaxWeekendShiftsForTargets:             applyMaxWeekendShiftsForTargets,
	policy.WeekendBalanceForTargets:                applyWeekendBalanceForTargets,
	policy.MaxOneSundayForTargets:                  applyMaxOneSundayForTargets,
	policy.NoMShiftsInNDays:                        applyNoMShiftsInNDays,
}

// Apply dispatches ri to its class's Applier. It is a configuration error
// for a RuleInstance to carry an unknown Kind (should not occur once
// policy.LoadYAML has already filtered these out, but library callers may
// construct RuleInstance directly).
func Apply(model *cpmodel.CpModelBuilder, inst *domain.Instance, vars variables.Set, ri policy.RuleInstance) (cpmodel.BoolVar, error) {
	applier, ok := catalogue[ri.Kind]
	if !ok {
		return cpmodel.BoolVar{}, fmt.Errorf("rules: unknown rule kind %q", ri.Kind)
	}
	return applier(model, inst, vars, ri), nil
}

// newEnable allocates the fresh enable literal for ruleID, named per spec
// §3 ("enable_{rule_id}") so the core->rule mapping (pkg/solver/corequery.go)
// can recover the rule id purely from the literal's name.
func newEnable(model *cpmodel.CpModelBuilder, ruleID string) cpmodel.BoolVar {
	return model.NewBoolVar().WithName(enableName(ruleID))
}

func enableName(ruleID string) string {
	return "enable_" + ruleID
}

// onWeekendOrHoliday reports whether dayIdx is a Saturday/Sunday or a
// holiday day (spec §4.2's recurring "S/D or j in p_days" condition).
func onWeekendOrHoliday(inst *domain.Instance, dayIdx int) bool {
	return inst.Days[dayIdx].DayOfWeek.IsWeekend() || inst.PDays[dayIdx]
}
