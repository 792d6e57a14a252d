package policy

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
)

// Validate enforces the legal filter combinations of spec §4.2: any one
// filter alone, or exactly {IncludeRanks, ExcludeNames} (start from a rank
// set and subtract named residents), or exactly {ExcludeRanks,
// IncludeNames} (exclude some ranks but whitelist named residents). Any
// other pairing is a configuration error.
func (f Filter) Validate() error {
	set := 0
	if len(f.IncludeRanks) > 0 {
		set++
	}
	if len(f.ExcludeRanks) > 0 {
		set++
	}
	if len(f.IncludeNames) > 0 {
		set++
	}
	if len(f.ExcludeNames) > 0 {
		set++
	}
	switch set {
	case 0, 1:
		return nil
	case 2:
		if len(f.IncludeRanks) > 0 && len(f.ExcludeNames) > 0 {
			return nil
		}
		if len(f.ExcludeRanks) > 0 && len(f.IncludeNames) > 0 {
			return nil
		}
		return fmt.Errorf("policy: illegal target filter combination (only include_ranks+exclude_names or exclude_ranks+include_names may be paired)")
	default:
		return fmt.Errorf("policy: target filter may set at most two of include_ranks, exclude_ranks, include_names, exclude_names")
	}
}

// Matches reports whether resident is selected by the filter.
func (f Filter) Matches(r domain.Resident) bool {
	switch {
	case len(f.IncludeRanks) > 0 && len(f.ExcludeNames) > 0:
		return lo.Contains(f.IncludeRanks, r.Rank) && !lo.Contains(f.ExcludeNames, r.Name)
	case len(f.ExcludeRanks) > 0 && len(f.IncludeNames) > 0:
		return !lo.Contains(f.ExcludeRanks, r.Rank) || lo.Contains(f.IncludeNames, r.Name)
	case len(f.IncludeRanks) > 0:
		return lo.Contains(f.IncludeRanks, r.Rank)
	case len(f.ExcludeRanks) > 0:
		return !lo.Contains(f.ExcludeRanks, r.Rank)
	case len(f.IncludeNames) > 0:
		return lo.Contains(f.IncludeNames, r.Name)
	case len(f.ExcludeNames) > 0:
		return !lo.Contains(f.ExcludeNames, r.Name)
	default:
		return true
	}
}

// Targets precomputes the filtered resident-index set once per rule
// instance per attempt (Design Note 2), always removing external rotators
// first (spec §4.2: "Residents in external_rotations are always removed
// from the target set before the rule sees it").
func (f Filter) Targets(inst *domain.Instance) []int {
	var out []int
	for i, r := range inst.Residents {
		if inst.IsExternalRotation(i) {
			continue
		}
		if f.Matches(r) {
			out = append(out, i)
		}
	}
	return out
}
