package config_test

import (
	"testing"

	"github.com/residency-ops/oncall-scheduler/config"
)

func TestParseFlagsRequiresInputAndPolicy(t *testing.T) {
	_, err := config.ParseFlags([]string{"-n-residents=2", "-n-days=2"})
	if err == nil {
		t.Fatal("expected an error when -input and -policy are missing")
	}
}

func TestParseFlagsRejectsUnknownMode(t *testing.T) {
	_, err := config.ParseFlags([]string{
		"-mode=launch", "-input=in.xlsx", "-policy=policy.yaml", "-n-residents=2", "-n-days=2",
	})
	if err == nil {
		t.Fatal("expected an error for an unrecognized mode")
	}
}

func TestParseFlagsAssignModeRequiresOutput(t *testing.T) {
	_, err := config.ParseFlags([]string{
		"-mode=assign", "-input=in.xlsx", "-policy=policy.yaml", "-n-residents=2", "-n-days=2",
	})
	if err == nil {
		t.Fatal("expected an error when -output is missing in assign mode")
	}
}

func TestParseFlagsAcceptsValidAssignConfiguration(t *testing.T) {
	header, err := config.ParseFlags([]string{
		"-mode=assign", "-input=in.xlsx", "-output=out.xlsx", "-policy=policy.yaml",
		"-n-residents=3", "-n-days=28",
	})
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}
	if header.Layout.NResidents != 3 || header.Layout.NDays != 28 {
		t.Fatalf("unexpected layout: %+v", header.Layout)
	}
}

func TestParseFlagsValidateModeDoesNotRequireOutput(t *testing.T) {
	_, err := config.ParseFlags([]string{
		"-mode=validate", "-input=in.xlsx", "-policy=policy.yaml", "-n-residents=2", "-n-days=2",
	})
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}
}
