package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/isofem/utils"
)

// Model is a strain energy density of the displacement gradient with its
// first and second derivatives. Implementations hold material constants only.
type Model interface {
	Name() string
	W(gradu utils.Matrix) float64
	DW(gradu utils.Matrix) utils.Matrix
	DDW(gradu utils.Matrix) utils.Tensor4
}

type allocator func(prms map[string]float64) (Model, error)

var allocators = map[string]allocator{
	"isotropic":  newIsotropic,
	"neohookean": newNeoHookean,
}

// Names lists the registered models, sorted
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New allocates a model by name. Missing parameters take the model defaults.
func New(name string, prms map[string]float64) (m Model, err error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown model %q, available: %s", name, strings.Join(Names(), ", "))
		return
	}
	return alloc(prms)
}

// lame reads the Lame constants from prms, keys are case insensitive
func lame(prms map[string]float64, mu, lambda float64) (float64, float64, error) {
	for key, val := range prms {
		switch strings.ToLower(key) {
		case "mu":
			mu = val
		case "lambda":
			lambda = val
		default:
			return 0, 0, fmt.Errorf("unknown model parameter %q", key)
		}
	}
	if mu <= 0 {
		return 0, 0, fmt.Errorf("shear modulus Mu must be positive, have %v", mu)
	}
	return mu, lambda, nil
}

func delta(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}
