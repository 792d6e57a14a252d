package rules_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/rules"
)

func TestRules(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rules Catalogue Suite")
}

var allKinds = []policy.RuleKind{
	policy.OneShiftPerDay, policy.AtMostOneResidentPerShiftPerDay, policy.RestrictedDayOff,
	policy.ExternalRotationOff, policy.NoRonWeekendsOrHolidays, policy.RestAfterAnyShift,
	policy.BlockAroundEmergencyU, policy.BlockAroundEmergencyUt, policy.EnforcePresets,
	policy.OnlyPresetsForTargets, policy.HolidayAssignedMustWork, policy.CoverGOrTEachDay,
	policy.SeniorGOrTRequiresOtherCoverage, policy.MinAssignmentsPerDay,
	policy.NotSameTypeUncoveredBothWeekendDays, policy.TotalNumberOfShifts,
	policy.TargetsDoAtLeastOfType, policy.TargetsDoNotDoType, policy.MaxTwoPerTypeForTargets,
	policy.AtLeastOneWeekendForTargets, policy.FridayRequiresSunday,
	policy.SundayDifferentTypeThanFriday, policy.BlockMondayAfterSaturdayShiftTargets,
	policy.BlockMondayAfterSatEmergency, policy.MaxWeekendShiftsForTargets,
	policy.WeekendBalanceForTargets, policy.MaxOneSundayForTargets, policy.NoMShiftsInNDays,
}

var _ = Describe("Catalogue", func() {
	It("dispatches every rule kind named in the policy without an unknown-kind error", func() {
		for _, kind := range allKinds {
			ri := policy.NewRuleInstance(kind, "", nil, policy.Params{})
			_, err := rules.Apply(newTestModel(), emptyInstance(), emptyVars(), ri)
			Expect(err).NotTo(HaveOccurred(), "kind %s should be dispatchable", kind)
		}
	})

	It("rejects a rule instance with an unrecognized kind", func() {
		ri := policy.RuleInstance{Kind: "not_a_real_rule", RuleID: "x"}
		_, err := rules.Apply(newTestModel(), emptyInstance(), emptyVars(), ri)
		Expect(err).To(HaveOccurred())
	})

	It("names every enable literal enable_<rule id>", func() {
		ri := policy.NewRuleInstance(policy.OneShiftPerDay, "my_rule", nil, policy.Params{})
		enable, err := rules.Apply(newTestModel(), emptyInstance(), emptyVars(), ri)
		Expect(err).NotTo(HaveOccurred())
		Expect(enable.Name()).To(Equal("enable_my_rule"))
	})
})
