package rules_test

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/residency-ops/oncall-scheduler/pkg/domain"
	"github.com/residency-ops/oncall-scheduler/pkg/variables"
)

func newTestModel() *cpmodel.CpModelBuilder {
	return cpmodel.NewCpModelBuilder()
}

func emptyInstance() *domain.Instance {
	return domain.New(nil, nil)
}

func emptyVars() variables.Set {
	return variables.Set{}
}
