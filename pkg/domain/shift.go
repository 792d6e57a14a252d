// Package domain holds the immutable value types describing one month's
// on-call scheduling problem: residents, days, shift types, and the
// instance that ties them together with the restrictions and presets
// carried over from the source spreadsheet.
package domain

import "fmt"

// ShiftType is one of the four on-call shift categories. Ordinals are
// stable and double as the third coordinate of a decision variable.
type ShiftType int

const (
	R ShiftType = iota
	G
	T
	M
)

// ShiftTypes lists every shift type in ordinal order.
var ShiftTypes = []ShiftType{R, G, T, M}

var shiftTypeNames = [...]string{"R", "G", "T", "M"}

// Name returns the stable two-letter-or-less code for the shift type.
func (s ShiftType) Name() string {
	if s < 0 || int(s) >= len(shiftTypeNames) {
		return fmt.Sprintf("ShiftType(%d)", int(s))
	}
	return shiftTypeNames[s]
}

func (s ShiftType) String() string { return s.Name() }

// ParseShiftType maps a spreadsheet/YAML code back to its ordinal.
func ParseShiftType(name string) (ShiftType, error) {
	for i, n := range shiftTypeNames {
		if n == name {
			return ShiftType(i), nil
		}
	}
	return 0, fmt.Errorf("domain: unknown shift type %q", name)
}
