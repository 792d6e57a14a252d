package rules

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// sum builds a linear expression over the given boolean variables.
func sum(model *cpmodel.CpModelBuilder, vars ...cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, v := range vars {
		expr.Add(v)
	}
	return expr
}

// forceValue emits `v == value`, only-enforce-if enable.
func forceValue(model *cpmodel.CpModelBuilder, v cpmodel.BoolVar, value int64, enable cpmodel.BoolVar) {
	model.AddEquality(v, model.NewConstant(value)).OnlyEnforceIf(enable)
}

// forceOff is forceValue(..., 0, ...), spelled out at call sites that read
// "X[i,j,k] = 0" in the spec.
func forceOff(model *cpmodel.CpModelBuilder, v cpmodel.BoolVar, enable cpmodel.BoolVar) {
	forceValue(model, v, 0, enable)
}

// forceOn is forceValue(..., 1, ...), spelled out at call sites that read
// "X[i,j,k] = 1" in the spec.
func forceOn(model *cpmodel.CpModelBuilder, v cpmodel.BoolVar, enable cpmodel.BoolVar) {
	forceValue(model, v, 1, enable)
}
