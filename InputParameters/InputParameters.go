package InputParameters

import (
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/isofem/utils"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title        string                        `yaml:"Title"`
	Seed         uint64                        `yaml:"Seed"`
	Elements     []string                      `yaml:"Elements"`     // Subset of cst, lst, q4, q9
	ElementModel string                        `yaml:"ElementModel"` // Model driving the element energy checks
	Models       map[string]map[string]float64 `yaml:"Models"`       // First key is model name, second is parameter name
	Trials       Trials                        `yaml:"Trials"`
	MeshFiles    []string                      `yaml:"MeshFiles"`
}

// Trials overrides the harness sample counts, zero keeps the default
type Trials struct {
	Points        int     `yaml:"Points"`
	Elements      int     `yaml:"Elements"`
	Fields        int     `yaml:"Fields"`
	Retries       int     `yaml:"Retries"`
	SamplePoints  int     `yaml:"SamplePoints"`
	GradientScale float64 `yaml:"GradientScale"`
}

func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:        "isofem element validation",
		Elements:     []string{"cst", "lst", "q4", "q9"},
		ElementModel: "isotropic",
		Models: map[string]map[string]float64{
			"isotropic":  {"Mu": 3, "Lambda": 2},
			"neohookean": {"Mu": 1, "Lambda": 1},
		},
		MeshFiles: []string{"cst.vtk", "q4.vtk", "lst.vtk", "q9.vtk"},
	}
}

// Parse overlays the YAML document onto the receiver. A Models entry in the
// document replaces the model set, so models it leaves out are not checked.
func (ip *InputParameters) Parse(data []byte) error {
	var models struct {
		Models map[string]map[string]float64 `yaml:"Models"`
	}
	if err := yaml.Unmarshal(data, &models); err != nil {
		return err
	}
	if models.Models != nil {
		ip.Models = nil
	}
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

// ReadFile parses an input file onto the defaults
func ReadFile(filename string) (ip *InputParameters, err error) {
	var data []byte
	ip = NewInputParameters()
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("input file %s: %w", filename, err)
	}
	return
}

func (ip *InputParameters) Validate() error {
	if _, err := ip.ElementTypes(); err != nil {
		return err
	}
	if ip.ElementModel == "" {
		return fmt.Errorf("ElementModel must name a model")
	}
	return nil
}

// ElementTypes resolves the element names
func (ip *InputParameters) ElementTypes() (ets []utils.ElementType, err error) {
	var et utils.ElementType
	for _, name := range ip.Elements {
		if et, err = utils.ParseElementType(name); err != nil {
			return
		}
		ets = append(ets, et)
	}
	return
}

// ModelNames returns the configured model names, sorted
func (ip *InputParameters) ModelNames() (keys []string) {
	keys = make([]string, 0, len(ip.Models))
	for k := range ip.Models {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Seed\n", ip.Seed)
	fmt.Printf("%v\t\t= Elements\n", ip.Elements)
	fmt.Printf("[%s]\t\t\t= Element Model\n", ip.ElementModel)
	for _, key := range ip.ModelNames() {
		fmt.Printf("Models[%s] = %v\n", key, ip.Models[key])
	}
	fmt.Printf("%+v\t= Trials\n", ip.Trials)
	fmt.Printf("%v\t= Mesh Files\n", ip.MeshFiles)
}
