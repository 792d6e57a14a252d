// Package config is the process configuration header of spec §6.4: the
// flags (with environment-variable defaults, in the teacher's
// cmd/controller/main.go style) that tell cmd/oncallsched which workbook,
// policy, and sheet layout to run against, and whether to assign or only
// validate.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/residency-ops/oncall-scheduler/pkg/io"
)

// Mode selects which operation cmd/oncallsched performs.
type Mode string

const (
	ModeAssign   Mode = "assign"
	ModeValidate Mode = "validate"
)

// Header is the fully-resolved process configuration.
type Header struct {
	Mode Mode

	InputPath  string
	OutputPath string
	PolicyPath string

	Layout io.Layout
}

// ParseFlags builds a Header from command-line args, falling back to
// environment variables, then hard-coded defaults, for everything not
// passed explicitly. A missing required path, or an unrecognized mode, is
// a fatal configuration error (spec §7).
func ParseFlags(args []string) (Header, error) {
	fs := flag.NewFlagSet("oncallsched", flag.ContinueOnError)

	mode := fs.String("mode", withDefaultString("ONCALL_MODE", string(ModeAssign)), "assign or validate")
	input := fs.String("input", withDefaultString("ONCALL_INPUT", ""), "path to the source workbook")
	output := fs.String("output", withDefaultString("ONCALL_OUTPUT", ""), "path to write the result workbook")
	policyPath := fs.String("policy", withDefaultString("ONCALL_POLICY", ""), "path to the policy YAML file")
	sheet := fs.String("sheet", withDefaultString("ONCALL_SHEET", "Schedule"), "worksheet name")
	residentsStart := fs.Int("residents-start", withDefaultInt("ONCALL_RESIDENTS_START", 4), "first row holding a resident name")
	nResidents := fs.Int("n-residents", withDefaultInt("ONCALL_N_RESIDENTS", 0), "number of residents")
	dayNumberRow := fs.Int("day-number-row", withDefaultInt("ONCALL_DAY_NUMBER_ROW", 2), "row holding day numbers")
	weekdayRow := fs.Int("weekday-row", withDefaultInt("ONCALL_WEEKDAY_ROW", 3), "row holding weekday letters")
	nDays := fs.Int("n-days", withDefaultInt("ONCALL_N_DAYS", 0), "number of days")
	gridRowStart := fs.Int("grid-row-start", withDefaultInt("ONCALL_GRID_ROW_START", 4), "first row of the shift grid")
	gridColStart := fs.Int("grid-col-start", withDefaultInt("ONCALL_GRID_COL_START", 4), "first column of the shift grid")

	if err := fs.Parse(args); err != nil {
		return Header{}, err
	}

	header := Header{
		Mode:       Mode(*mode),
		InputPath:  *input,
		OutputPath: *output,
		PolicyPath: *policyPath,
		Layout: io.Layout{
			Sheet:          *sheet,
			ResidentsStart: *residentsStart,
			NResidents:     *nResidents,
			DayNumberRow:   *dayNumberRow,
			WeekdayRow:     *weekdayRow,
			NDays:          *nDays,
			GridRowStart:   *gridRowStart,
			GridColStart:   *gridColStart,
		},
	}
	return header, header.validate()
}

func (h Header) validate() error {
	if h.Mode != ModeAssign && h.Mode != ModeValidate {
		return fmt.Errorf("config: unrecognized mode %q, want %q or %q", h.Mode, ModeAssign, ModeValidate)
	}
	if h.InputPath == "" {
		return fmt.Errorf("config: -input is required")
	}
	if h.PolicyPath == "" {
		return fmt.Errorf("config: -policy is required")
	}
	if h.Mode == ModeAssign && h.OutputPath == "" {
		return fmt.Errorf("config: -output is required in assign mode")
	}
	if h.Layout.NResidents <= 0 {
		return fmt.Errorf("config: -n-residents must be positive")
	}
	if h.Layout.NDays <= 0 {
		return fmt.Errorf("config: -n-days must be positive")
	}
	return nil
}

func withDefaultString(envVar, fallback string) string {
	if v, ok := os.LookupEnv(envVar); ok {
		return v
	}
	return fallback
}

func withDefaultInt(envVar string, fallback int) int {
	if v, ok := os.LookupEnv(envVar); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
