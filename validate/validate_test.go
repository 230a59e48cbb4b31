package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
)

func TestSuitePasses(t *testing.T) {
	var (
		cfg = DefaultConfig()
		rnd = utils.NewRandom(0)
		iso = models.NewIsotropic(3, 2)
	)
	require.NoError(t, cfg.Validate())
	for _, et := range utils.ElementTypes {
		results := Run(Suite(FE2D.GetReference(et), iso, rnd, cfg))
		require.Len(t, results, 7)
		for _, r := range results {
			assert.Truef(t, r.Passed(), "%v", r)
			assert.True(t, strings.HasPrefix(r.Name, "test.element."+et.ShortName()+"."))
		}
		assert.Equal(t, 0, Failures(results))
	}
}

func TestModelDerivative(t *testing.T) {
	var (
		cfg = DefaultConfig()
		rnd = utils.NewRandom(1)
	)
	for _, name := range models.Names() {
		model, err := models.New(name, nil)
		require.NoError(t, err)
		results := Run(ModelSuite(model, rnd, cfg))
		require.Len(t, results, 1)
		assert.Equal(t, "model."+name+".derivative", results[0].Name)
		assert.Truef(t, results[0].Passed(), "%v", results[0])
	}
}

// brokenModel has a DW that is not the derivative of W
type brokenModel struct{ models.Isotropic }

func (b *brokenModel) Name() string { return "broken" }
func (b *brokenModel) DW(gradu utils.Matrix) utils.Matrix {
	return b.Isotropic.DW(gradu).Scale(2)
}

func TestFailuresAreReported(t *testing.T) {
	var (
		cfg    = DefaultConfig()
		rnd    = utils.NewRandom(2)
		broken = &brokenModel{models.Isotropic{Mu: 3, Lambda: 2}}
	)
	{
		err := ModelDerivative(broken, rnd, cfg)
		var ute *UnitTestError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, "ModelDerivative", ute.Check)
		assert.Contains(t, err.Error(), "broken DW")
	}
	{
		err := EnergyDerivative(FE2D.GetReference(utils.Quad), broken, rnd, cfg)
		var ute *UnitTestError
		require.True(t, errors.As(err, &ute))
		assert.Contains(t, ute.Msg, "DW")
	}
	{ // A failure does not stop the remaining checks
		results := Run([]Check{
			{"first", func() error { return failf("First", "bad") }},
			{"second", func() error { panic("boom") }},
			{"third", func() error { return nil }},
		})
		assert.False(t, results[0].Passed())
		assert.Equal(t, "first...failed:\n   --> First test failed: bad", results[0].String())
		assert.False(t, results[1].Passed())
		assert.Equal(t, "third...pass", results[2].String())
		assert.Equal(t, 2, Failures(results))
	}
}

func TestGenerators(t *testing.T) {
	var (
		cfg = DefaultConfig()
		rnd = utils.NewRandom(3)
	)
	for _, et := range utils.ElementTypes {
		ref := FE2D.GetReference(et)
		{
			el := DefaultElement(ref)
			assert.Equal(t, ref.Y0(), el.X)
			assert.InDelta(t, ref.ReferenceArea(), el.Area(), 1.e-12)
		}
		for i := 0; i < 20; i++ {
			Y := RandomPointInElement(ref, rnd)
			if et.IsSimplex() {
				assert.True(t, Y[0] >= 0 && Y[1] >= 0 && Y[0]+Y[1] <= 1, "%v outside triangle", Y)
			} else {
				assert.True(t, Y[0] >= -1 && Y[0] <= 1 && Y[1] >= -1 && Y[1] <= 1, "%v outside square", Y)
			}
		}
		el, err := RandomElement(ref, rnd, cfg)
		require.NoError(t, err)
		for _, X := range el.X {
			assert.True(t, X[0] >= -1 && X[0] < 1 && X[1] >= -1 && X[1] < 1)
		}
	}
	{ // Unreachable tolerance exhausts the retries
		cfg.DetTol = 1.e6
		cfg.Retries = 3
		_, err := RandomElement(FE2D.GetReference(utils.Triangle), rnd, cfg)
		assert.True(t, errors.Is(err, ErrConstruction))
		err = IsoparametricCheck(FE2D.GetReference(utils.Triangle), models.NewIsotropic(3, 2), rnd, cfg)
		assert.True(t, errors.Is(err, ErrConstruction))
	}
}

func TestQuadratureExactnessDetectsLowOrderRule(t *testing.T) {
	// The Q4 rule applied to a Q9 degree claim misses r^4
	weak := FE2D.NewReference(utils.Quad9, FE2D.GetReference(utils.Quad9).Y0(),
		FE2D.GetReference(utils.Quad).QuadraturePoints(), FE2D.GetReference(utils.Quad).QuadratureWeights(),
		4, 5)
	err := QuadratureExactness(weak)
	var ute *UnitTestError
	require.True(t, errors.As(err, &ute))
	assert.NoError(t, Quadrature(weak))
	assert.NoError(t, Dirac(weak))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Points = 0
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.GradientScale = 0
	assert.Error(t, cfg.Validate())
}

// shiftedEta adds a constant to the first shape function
type shiftedEta struct{ *FE2D.Reference }

func (s shiftedEta) Eta(Y utils.Point) []float64 {
	eta := s.Reference.Eta(Y)
	eta[0] += 1.e-3
	return eta
}

// scaledDeta returns shape function gradients one percent too large
type scaledDeta struct{ *FE2D.Reference }

func (s scaledDeta) Deta(Y utils.Point) (deta []utils.Point) {
	deta = s.Reference.Deta(Y)
	for n := range deta {
		deta[n] = deta[n].Scale(1.01)
	}
	return
}

func requireCheckFailure(t *testing.T, err error, check string) *UnitTestError {
	var ute *UnitTestError
	require.Truef(t, errors.As(err, &ute), "%s: expected a UnitTestError, got %v", check, err)
	assert.Equal(t, check, ute.Check)
	return ute
}

func TestShapeChecksDetectBrokenVariants(t *testing.T) {
	var (
		cfg = DefaultConfig()
		rnd = utils.NewRandom(4)
	)
	for _, et := range utils.ElementTypes {
		ref := FE2D.GetReference(et)
		{
			v := shiftedEta{ref}
			requireCheckFailure(t, Dirac(v), "Dirac")
			requireCheckFailure(t, SumToUnity(v, rnd, cfg), "SumToUnity")
			// A constant shift leaves the derivatives intact
			assert.NoError(t, EtaDerivative(v, rnd, cfg), et.String())
		}
		{
			v := scaledDeta{ref}
			requireCheckFailure(t, EtaDerivative(v, rnd, cfg), "EtaDerivative")
			assert.NoError(t, Dirac(v), et.String())
			assert.NoError(t, SumToUnity(v, rnd, cfg), et.String())
		}
	}
}

// zeroModel stores no energy for any deformation
type zeroModel struct{}

func (zeroModel) Name() string                   { return "zero" }
func (zeroModel) W(utils.Matrix) float64         { return 0 }
func (zeroModel) DW(utils.Matrix) utils.Matrix   { return utils.NewMatrix(2, 2) }
func (zeroModel) DDW(utils.Matrix) utils.Tensor4 { return utils.Tensor4{} }

// stiffDDW has a tangent one percent too stiff in the 0000 component
type stiffDDW struct{ models.Isotropic }

func (s *stiffDDW) Name() string { return "stiff" }
func (s *stiffDDW) DDW(gradu utils.Matrix) (C utils.Tensor4) {
	C = s.Isotropic.DDW(gradu)
	C[0][0][0][0] *= 1.01
	return
}

// shiftedDW adds a constant 0.01 I to the stress
type shiftedDW struct{ models.Isotropic }

func (s *shiftedDW) Name() string { return "shifted" }
func (s *shiftedDW) DW(gradu utils.Matrix) utils.Matrix {
	return s.Isotropic.DW(gradu).Add(utils.NewIdentity(2).Scale(0.01))
}

func TestEnergyChecksDetectBrokenModels(t *testing.T) {
	var (
		cfg = DefaultConfig()
	)
	for _, et := range utils.ElementTypes {
		ref := FE2D.GetReference(et)
		{
			rnd := utils.NewRandom(5)
			ute := requireCheckFailure(t, IsoparametricCheck(ref, zeroModel{}, rnd, cfg), "IsoparametricCheck")
			assert.Contains(t, ute.Msg, "unchanged by the embedding")
			ute = requireCheckFailure(t, EnergyDerivative(ref, zeroModel{}, rnd, cfg), "EnergyDerivative")
			assert.Contains(t, ute.Msg, "identically zero")
		}
		{ // DW is consistent with W, only the tangent is off
			rnd := utils.NewRandom(6)
			stiff := &stiffDDW{models.Isotropic{Mu: 3, Lambda: 2}}
			ute := requireCheckFailure(t, EnergyDerivative(ref, stiff, rnd, cfg), "EnergyDerivative")
			assert.Contains(t, ute.Msg, "DDW:", et.String())
		}
		{ // A small stress offset is caught entry by entry on every variant
			rnd := utils.NewRandom(0)
			shifted := &shiftedDW{models.Isotropic{Mu: 3, Lambda: 2}}
			ute := requireCheckFailure(t, EnergyDerivative(ref, shifted, rnd, cfg), "EnergyDerivative")
			assert.Contains(t, ute.Msg, "DW:", et.String())
			assert.NotContains(t, ute.Msg, "DDW:", et.String())
		}
	}
	{
		rnd := utils.NewRandom(7)
		err := ModelDerivative(&stiffDDW{models.Isotropic{Mu: 3, Lambda: 2}}, rnd, cfg)
		ute := requireCheckFailure(t, err, "ModelDerivative")
		assert.Contains(t, ute.Msg, "stiff DDW")
		assert.NoError(t, ModelDerivative(zeroModel{}, rnd, cfg))
	}
}
