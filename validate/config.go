package validate

import (
	"fmt"

	"github.com/notargets/isofem/utils"
)

// Config sets sample counts for the randomized checks
type Config struct {
	Points        int     // Random template points per shape function check
	Elements      int     // Random elements per energy check
	Fields        int     // Random displacement fields per element in the isoparametric check
	Retries       int     // Attempts at a non-degenerate random element
	SamplePoints  int     // Points at which a random element's Jacobian is checked
	DetTol        float64 // Smallest accepted |det J|
	GradientScale float64 // Entry magnitude of random displacement gradients in model checks
}

func DefaultConfig() Config {
	return Config{
		Points:        100,
		Elements:      10,
		Fields:        10,
		Retries:       100,
		SamplePoints:  10,
		DetTol:        utils.DETTOL,
		GradientScale: 0.25,
	}
}

func (c Config) Validate() (err error) {
	switch {
	case c.Points < 1, c.Elements < 1, c.Fields < 1, c.Retries < 1, c.SamplePoints < 1:
		err = fmt.Errorf("sample counts must be positive: %+v", c)
	case c.DetTol <= 0:
		err = fmt.Errorf("DetTol must be positive, have %v", c.DetTol)
	case c.GradientScale <= 0:
		err = fmt.Errorf("GradientScale must be positive, have %v", c.GradientScale)
	}
	return
}
