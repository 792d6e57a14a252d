package domain_test

import (
	"testing"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
)

func days(numbers ...int) []domain.Day {
	weekdays := []domain.Weekday{domain.Lunes, domain.Martes, domain.Miercoles, domain.Jueves, domain.Viernes, domain.Sabado, domain.Domingo}
	out := make([]domain.Day, len(numbers))
	for i, n := range numbers {
		out[i] = domain.Day{Number: n, DayOfWeek: weekdays[i%len(weekdays)]}
	}
	return out
}

func TestEndOfMonthWithTrailingDays(t *testing.T) {
	inst := domain.New(nil, days(29, 30, 31, 1, 2))
	if inst.EndOfMonth != 3 {
		t.Fatalf("expected EndOfMonth=3, got %d", inst.EndOfMonth)
	}
}

func TestEndOfMonthNoDrop(t *testing.T) {
	inst := domain.New(nil, days(1, 2, 3, 4))
	if inst.EndOfMonth != len(inst.Days) {
		t.Fatalf("expected EndOfMonth=len(days)=%d, got %d", len(inst.Days), inst.EndOfMonth)
	}
}

func TestPDaysUnionsExplicitAndExtra(t *testing.T) {
	inst := domain.New([]domain.Resident{{Name: "A", Rank: domain.R3}}, days(1, 2, 3), func(i *domain.Instance) {
		i.PPositions = domain.NewPositions(domain.Position{ResidentIdx: 0, DayIdx: 0})
		i.ExtraPDays = []int{3}
	})
	if !inst.PDays[0] || !inst.PDays[2] || inst.PDays[1] {
		t.Fatalf("unexpected PDays: %+v", inst.PDays)
	}
}

func TestValidateCatchesPresetCollision(t *testing.T) {
	inst := domain.New([]domain.Resident{{Name: "A", Rank: domain.R3}}, days(1), func(i *domain.Instance) {
		i.Presets = []domain.Preset{
			{ResidentIdx: 0, DayIdx: 0, Shift: domain.G},
			{ResidentIdx: 0, DayIdx: 0, Shift: domain.T},
		}
	})
	if err := inst.Validate(); err == nil {
		t.Fatal("expected a preset collision error")
	}
}

func TestValidateCatchesOutOfRangePosition(t *testing.T) {
	inst := domain.New([]domain.Resident{{Name: "A", Rank: domain.R3}}, days(1), func(i *domain.Instance) {
		i.VPositions = domain.NewPositions(domain.Position{ResidentIdx: 5, DayIdx: 0})
	})
	if err := inst.Validate(); err == nil {
		t.Fatal("expected an out-of-range index error")
	}
}

func TestValidateAcceptsCleanInstance(t *testing.T) {
	inst := domain.New([]domain.Resident{{Name: "A", Rank: domain.R3}}, days(1, 2))
	if err := inst.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmergencyCounts(t *testing.T) {
	inst := domain.New([]domain.Resident{{Name: "A", Rank: domain.R3}}, days(1, 2, 3), func(i *domain.Instance) {
		i.UPositions = domain.NewPositions(domain.Position{ResidentIdx: 0, DayIdx: 0})
		i.UtPositions = domain.NewPositions(
			domain.Position{ResidentIdx: 0, DayIdx: 1},
			domain.Position{ResidentIdx: 0, DayIdx: 2},
		)
	})
	if inst.EmergencyCount(0) != 1 {
		t.Fatalf("expected EmergencyCount=1, got %d", inst.EmergencyCount(0))
	}
	if inst.HalfEmergencyCount(0) != 2 {
		t.Fatalf("expected HalfEmergencyCount=2, got %d", inst.HalfEmergencyCount(0))
	}
}
