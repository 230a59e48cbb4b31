package validate

import (
	"fmt"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
)

// Check is a named property check, each one runs independently
type Check struct {
	Name string
	Run  func() error
}

type Result struct {
	Name string
	Err  error
}

func (r Result) Passed() bool { return r.Err == nil }

func (r Result) String() string {
	if r.Passed() {
		return fmt.Sprintf("%s...pass", r.Name)
	}
	return fmt.Sprintf("%s...failed:\n   --> %v", r.Name, r.Err)
}

// Suite returns the element checks in their fixed order, names are prefixed
// test.element.<variant>.
func Suite(v FE2D.Variant, model models.Model, rnd *utils.Random, cfg Config) (checks []Check) {
	prefix := "test.element." + v.ElementType().ShortName() + "."
	checks = []Check{
		{prefix + "diractest", func() error { return Dirac(v) }},
		{prefix + "sumtounitytest", func() error { return SumToUnity(v, rnd, cfg) }},
		{prefix + "etaderivativetest", func() error { return EtaDerivative(v, rnd, cfg) }},
		{prefix + "quadrature", func() error { return Quadrature(v) }},
		{prefix + "quadratureexactness", func() error { return QuadratureExactness(v) }},
		{prefix + "isoparametriccheck", func() error { return IsoparametricCheck(v, model, rnd, cfg) }},
		{prefix + "energyderivative", func() error { return EnergyDerivative(v, model, rnd, cfg) }},
	}
	return
}

// ModelSuite checks a model's derivatives, named model.<name>.derivative
func ModelSuite(model models.Model, rnd *utils.Random, cfg Config) []Check {
	return []Check{
		{"model." + model.Name() + ".derivative", func() error { return ModelDerivative(model, rnd, cfg) }},
	}
}

// Run executes every check, a failing check does not stop the others.
// A panicking check is recorded as failed.
func Run(checks []Check) (results []Result) {
	results = make([]Result, len(checks))
	for i, c := range checks {
		results[i] = Result{Name: c.Name, Err: runOne(c)}
	}
	return
}

func runOne(c Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run()
}

// Failures counts the failed results
func Failures(results []Result) (n int) {
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return
}
