// Package policy holds the declarative rule-instance representation (spec
// §3 "Rule instance", §6.2) and its YAML loader. Design Note 1 calls for a
// closed tagged union in place of the source's runtime subclass registry;
// RuleKind is that union's tag, and Params carries every kind-specific
// parameter the catalogue in pkg/rules consumes.
package policy

import "github.com/residency-ops/oncall-scheduler/pkg/domain"

// RuleKind is one of the ~25 stable rule ids of spec §4.2.
type RuleKind string

const (
	OneShiftPerDay                     RuleKind = "one_shift_per_day"
	AtMostOneResidentPerShiftPerDay    RuleKind = "at_most_one_resident_per_shift_per_day"
	RestrictedDayOff                   RuleKind = "restricted_day_off"
	ExternalRotationOff                RuleKind = "external_rotation_off"
	NoRonWeekendsOrHolidays            RuleKind = "no_R_on_weekends_or_holidays"
	RestAfterAnyShift                  RuleKind = "rest_after_any_shift"
	BlockAroundEmergencyU              RuleKind = "block_around_emergency_u"
	BlockAroundEmergencyUt             RuleKind = "block_around_emergency_ut"
	EnforcePresets                     RuleKind = "enforce_presets"
	OnlyPresetsForTargets              RuleKind = "only_presets_for_targets"
	HolidayAssignedMustWork            RuleKind = "holiday_assigned_must_work"
	CoverGOrTEachDay                   RuleKind = "cover_G_or_T_each_day"
	SeniorGOrTRequiresOtherCoverage    RuleKind = "senior_G_or_T_requires_other_coverage"
	MinAssignmentsPerDay               RuleKind = "min_assignments_per_day"
	NotSameTypeUncoveredBothWeekendDays RuleKind = "not_same_type_uncovered_both_weekend_days"
	TotalNumberOfShifts                RuleKind = "total_number_of_shifts"
	TargetsDoAtLeastOfType              RuleKind = "targets_do_at_least_of_type"
	TargetsDoNotDoType                  RuleKind = "targets_do_not_do_type"
	MaxTwoPerTypeForTargets             RuleKind = "max_two_per_type_for_targets"
	AtLeastOneWeekendForTargets         RuleKind = "at_least_one_weekend_for_targets"
	FridayRequiresSunday                RuleKind = "friday_requires_sunday"
	SundayDifferentTypeThanFriday       RuleKind = "sunday_different_type_than_friday"
	BlockMondayAfterSaturdayShiftTargets RuleKind = "block_monday_after_saturday_shift_targets"
	BlockMondayAfterSatEmergency         RuleKind = "block_monday_after_sat_emergency"
	MaxWeekendShiftsForTargets           RuleKind = "max_weekend_shifts_for_targets"
	WeekendBalanceForTargets             RuleKind = "weekend_balance_for_targets"
	MaxOneSundayForTargets               RuleKind = "max_one_sunday_for_targets"
	NoMShiftsInNDays                     RuleKind = "no_m_shifts_in_n_days"
)

// DefaultPriorities is the class-level default priority table of spec
// §4.2, carried verbatim from the original's rule registry (SPEC_FULL.md
// "Supplemented from original_source/"). 0 means hard; higher is more
// relaxable. An instance's own Priority, if set, overrides this.
var DefaultPriorities = map[RuleKind]int{
	OneShiftPerDay:                       0,
	AtMostOneResidentPerShiftPerDay:      0,
	RestrictedDayOff:                     0,
	ExternalRotationOff:                  0,
	NoRonWeekendsOrHolidays:              0,
	RestAfterAnyShift:                    0,
	BlockAroundEmergencyU:                0,
	BlockAroundEmergencyUt:               0,
	EnforcePresets:                       0,
	OnlyPresetsForTargets:                2,
	HolidayAssignedMustWork:              0,
	CoverGOrTEachDay:                     1,
	SeniorGOrTRequiresOtherCoverage:      1,
	MinAssignmentsPerDay:                 1,
	NotSameTypeUncoveredBothWeekendDays:  1,
	TotalNumberOfShifts:                  2,
	TargetsDoAtLeastOfType:               3,
	TargetsDoNotDoType:                   0,
	MaxTwoPerTypeForTargets:              3,
	AtLeastOneWeekendForTargets:          1,
	FridayRequiresSunday:                 1,
	SundayDifferentTypeThanFriday:        2,
	BlockMondayAfterSaturdayShiftTargets: 3,
	BlockMondayAfterSatEmergency:         3,
	MaxWeekendShiftsForTargets:           3,
	WeekendBalanceForTargets:             3,
	MaxOneSundayForTargets:               3,
	NoMShiftsInNDays:                     0,
}

// KnownKinds reports whether kind is a recognized rule class id.
func KnownKinds(kind RuleKind) bool {
	_, ok := DefaultPriorities[kind]
	return ok
}

// Filter is the shared target-filter representation of spec §4.2's
// "Target filter" and Design Note 2: a precomputable predicate in place of
// the source's per-rule-instance closure.
type Filter struct {
	IncludeRanks []domain.Rank
	ExcludeRanks []domain.Rank
	IncludeNames []string
	ExcludeNames []string
}

// Params bundles every kind-specific parameter consumed by the catalogue
// in pkg/rules. Zero values (nil slice, nil pointer) mean "not set"; each
// rule applier documents which fields it reads.
type Params struct {
	Filter Filter

	Ranks []domain.Rank   // senior_G_or_T_requires_other_coverage
	Types []string        // targets_do_at_least_of_type, targets_do_not_do_type

	Total *int // total_number_of_shifts
	Max   *int // max_weekend_shifts_for_targets

	MShifts *int // no_m_shifts_in_n_days
	NDays   *int // no_m_shifts_in_n_days
}

// RuleInstance is one entry of the ordered policy list (spec §3). It is
// immutable once constructed.
type RuleInstance struct {
	Kind     RuleKind
	RuleID   string // defaults to string(Kind); instance-overridable for disambiguation
	Priority int
	Params   Params
}

// ID returns the effective rule id: the instance override if set, else the
// class's stable kind string.
func (ri RuleInstance) ID() string {
	if ri.RuleID != "" {
		return ri.RuleID
	}
	return string(ri.Kind)
}

// NewRuleInstance builds a RuleInstance, resolving the class default
// priority when priorityOverride is nil and the rule id default when
// ruleIDOverride is empty.
func NewRuleInstance(kind RuleKind, ruleIDOverride string, priorityOverride *int, params Params) RuleInstance {
	priority := DefaultPriorities[kind]
	if priorityOverride != nil {
		priority = *priorityOverride
	}
	return RuleInstance{
		Kind:     kind,
		RuleID:   ruleIDOverride,
		Priority: priority,
		Params:   params,
	}
}
