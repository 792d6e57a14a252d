package domain

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Position identifies a (resident, day) cell.
type Position struct {
	ResidentIdx int
	DayIdx      int
}

// Preset identifies an externally-fixed (resident, day, shift type) cell.
type Preset struct {
	ResidentIdx int
	DayIdx      int
	Shift       ShiftType
}

// Instance is the immutable problem description for one month. It is built
// once, by pkg/io's LoadInstance, and never mutated afterward; every
// relation is carried as indices into Residents/Days rather than by name,
// so the core never has to re-resolve a name at solve time.
type Instance struct {
	Residents []Resident
	Days      []Day

	VPositions Positions // resident cannot be assigned on this day
	UPositions Positions // full-day emergency shift already worked
	UtPositions Positions // half-day (afternoon) emergency shift already worked
	PPositions Positions // holiday coverage this resident must work

	ExtraPDays        []int // day numbers declared holidays with no assignee
	ExternalRotations []int // resident indices away the whole month

	Presets []Preset

	// derived, computed once in New.
	EndOfMonth int
	PDays      map[int]bool
}

// Positions is a set of (resident, day) pairs.
type Positions map[Position]bool

// NewPositions builds a Positions set from a literal slice, useful in tests
// and loaders.
func NewPositions(positions ...Position) Positions {
	set := make(Positions, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}

func (p Positions) Has(residentIdx, dayIdx int) bool {
	return p[Position{ResidentIdx: residentIdx, DayIdx: dayIdx}]
}

// New constructs an Instance and computes its derived fields. It does not
// validate the instance; call Validate separately (the loader does this
// once, at load time, per spec's fatal-configuration-error policy).
func New(residents []Resident, days []Day, opts ...func(*Instance)) *Instance {
	inst := &Instance{
		Residents:  residents,
		Days:       days,
		VPositions: Positions{},
		UPositions: Positions{},
		UtPositions: Positions{},
		PPositions: Positions{},
	}
	for _, opt := range opts {
		opt(inst)
	}
	inst.EndOfMonth = computeEndOfMonth(inst.Days)
	inst.PDays = computePDays(inst)
	return inst
}

// computeEndOfMonth implements the heuristic of spec §9: the index of the
// first day whose Number is strictly less than its predecessor's, else
// len(days). Must be preserved exactly, including on inputs with no drop.
func computeEndOfMonth(days []Day) int {
	for i := 1; i < len(days); i++ {
		if days[i].Number < days[i-1].Number {
			return i
		}
	}
	return len(days)
}

func computePDays(inst *Instance) map[int]bool {
	pDays := map[int]bool{}
	for pos := range inst.PPositions {
		pDays[pos.DayIdx] = true
	}
	for dayIdx, day := range inst.Days {
		if lo.Contains(inst.ExtraPDays, day.Number) {
			pDays[dayIdx] = true
		}
	}
	return pDays
}

// IsExternalRotation reports whether the resident is away the whole month.
func (inst *Instance) IsExternalRotation(residentIdx int) bool {
	return lo.Contains(inst.ExternalRotations, residentIdx)
}

// EmergencyCount returns the number of full-day emergency (u) shifts this
// resident already covers this month.
func (inst *Instance) EmergencyCount(residentIdx int) int {
	count := 0
	for pos := range inst.UPositions {
		if pos.ResidentIdx == residentIdx {
			count++
		}
	}
	return count
}

// HalfEmergencyCount returns the number of half-day (ut) emergency shifts
// this resident already covers this month. Two ut count as one u for
// workload purposes (spec §3's "Two `ut` are counted as one emergency").
func (inst *Instance) HalfEmergencyCount(residentIdx int) int {
	count := 0
	for pos := range inst.UtPositions {
		if pos.ResidentIdx == residentIdx {
			count++
		}
	}
	return count
}

// Validate checks the invariants spec §3 requires of every Instance:
// in-range indices, valid extra_p_days, and collision-free presets. It
// returns an aggregated configuration error (spec §7), never a panic.
func (inst *Instance) Validate() error {
	var errs error
	nR, nD := len(inst.Residents), len(inst.Days)

	checkPos := func(label string, set Positions) {
		for pos := range set {
			if pos.ResidentIdx < 0 || pos.ResidentIdx >= nR {
				errs = multierr.Append(errs, fmt.Errorf("domain: %s has out-of-range resident index %d", label, pos.ResidentIdx))
			}
			if pos.DayIdx < 0 || pos.DayIdx >= nD {
				errs = multierr.Append(errs, fmt.Errorf("domain: %s has out-of-range day index %d", label, pos.DayIdx))
			}
		}
	}
	checkPos("v_positions", inst.VPositions)
	checkPos("u_positions", inst.UPositions)
	checkPos("ut_positions", inst.UtPositions)
	checkPos("p_positions", inst.PPositions)

	for _, residentIdx := range inst.ExternalRotations {
		if residentIdx < 0 || residentIdx >= nR {
			errs = multierr.Append(errs, fmt.Errorf("domain: external_rotations has out-of-range resident index %d", residentIdx))
		}
	}

	dayNumbers := make(map[int]bool, nD)
	for _, d := range inst.Days {
		dayNumbers[d.Number] = true
		if err := d.Validate(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for _, num := range inst.ExtraPDays {
		if !dayNumbers[num] {
			errs = multierr.Append(errs, fmt.Errorf("domain: extra_p_days references day number %d not present in days", num))
		}
	}

	for i, r := range inst.Residents {
		if err := r.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("domain: resident %d: %w", i, err))
		}
	}

	seen := map[Position]ShiftType{}
	for _, preset := range inst.Presets {
		if preset.ResidentIdx < 0 || preset.ResidentIdx >= nR || preset.DayIdx < 0 || preset.DayIdx >= nD {
			errs = multierr.Append(errs, fmt.Errorf("domain: preset has out-of-range index (%d,%d)", preset.ResidentIdx, preset.DayIdx))
			continue
		}
		pos := Position{ResidentIdx: preset.ResidentIdx, DayIdx: preset.DayIdx}
		if existing, ok := seen[pos]; ok && existing != preset.Shift {
			errs = multierr.Append(errs, fmt.Errorf("domain: preset collision at (%d,%d): %s vs %s", preset.ResidentIdx, preset.DayIdx, existing, preset.Shift))
			continue
		}
		seen[pos] = preset.Shift
	}

	return errs
}
