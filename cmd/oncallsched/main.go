// Command oncallsched is the process entrypoint of spec §6.4: it reads the
// configuration header, loads the workbook and policy it names, invokes
// Assign or Validate, writes the result workbook, and always exits 0,
// printing status and the relaxed-rule list to stdout regardless of
// outcome (the CP model never panics on a bad schedule; only a
// configuration error is fatal, and even that is reported, not paniced).
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	_ "go.uber.org/automaxprocs"

	"github.com/residency-ops/oncall-scheduler/config"
	"github.com/residency-ops/oncall-scheduler/internal/log"
	"github.com/residency-ops/oncall-scheduler/internal/metrics"
	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	ioutil "github.com/residency-ops/oncall-scheduler/pkg/io"
	"github.com/residency-ops/oncall-scheduler/pkg/policy"
	"github.com/residency-ops/oncall-scheduler/pkg/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "oncallsched: failed to build logger: %v\n", err)
		return 0
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger := zapLogger.Sugar()
	ctx := log.IntoContext(context.Background(), logger)

	metrics.MustRegister()

	header, err := config.ParseFlags(args)
	if err != nil {
		logger.Errorw("configuration error", "error", err)
		fmt.Println("status: CONFIG_ERROR")
		return 0
	}

	policyBytes, err := os.ReadFile(header.PolicyPath)
	if err != nil {
		logger.Errorw("failed to read policy file", "path", header.PolicyPath, "error", err)
		fmt.Println("status: CONFIG_ERROR")
		return 0
	}
	ruleInstances, err := policy.LoadYAML(ctx, policyBytes)
	if err != nil {
		logger.Errorw("failed to load policy", "path", header.PolicyPath, "error", err)
		fmt.Println("status: CONFIG_ERROR")
		return 0
	}

	inst, err := ioutil.LoadInstance(header.InputPath, header.Layout)
	if err != nil {
		logger.Errorw("failed to load instance", "path", header.InputPath, "error", err)
		fmt.Println("status: CONFIG_ERROR")
		return 0
	}

	switch header.Mode {
	case config.ModeValidate:
		runValidate(ctx, logger, header, inst, ruleInstances)
	default:
		runAssign(ctx, logger, header, inst, ruleInstances)
	}
	return 0
}

func runAssign(ctx context.Context, logger *zap.SugaredLogger, header config.Header, inst *domain.Instance, ruleInstances []policy.RuleInstance) {
	result, err := solver.Assign(ctx, inst, ruleInstances)
	if err != nil {
		logger.Errorw("assign failed", "error", err)
		fmt.Println("status: ERROR")
		return
	}
	fmt.Printf("status: %s\n", result.SolverStatus)
	if result.SolverStatus != solver.StatusOptimal && result.SolverStatus != solver.StatusFeasible {
		fmt.Printf("unsat_core: %v\n", result.UnsatCore)
		fmt.Printf("relaxed_rules: %v\n", result.RelaxedRuleIDs)
		return
	}
	if err := ioutil.WriteAssignment(header.InputPath, header.OutputPath, header.Layout, result); err != nil {
		logger.Errorw("failed to write result workbook", "error", err)
		fmt.Println("status: ERROR")
		return
	}
	fmt.Printf("relaxed_rules: %v\n", result.RelaxedRuleIDs)
	fmt.Printf("re_enabled_rules: %v\n", result.ReEnabledRuleIDs)
}

func runValidate(ctx context.Context, logger *zap.SugaredLogger, header config.Header, inst *domain.Instance, ruleInstances []policy.RuleInstance) {
	result, err := solver.Validate(ctx, inst, ruleInstances)
	if err != nil {
		logger.Errorw("validate failed", "error", err)
		fmt.Println("status: ERROR")
		return
	}
	if header.OutputPath != "" {
		if err := ioutil.WriteValidation(header.InputPath, header.OutputPath, header.Layout, result); err != nil {
			logger.Errorw("failed to write result workbook", "error", err)
			fmt.Println("status: ERROR")
			return
		}
	}
	fmt.Printf("status: %s\n", result.SolverStatus)
	if !result.Feasible() {
		fmt.Printf("unsat_core: %v\n", result.UnsatCore)
	}
}
