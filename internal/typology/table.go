package typology

import (
	"embed"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pthm/squares/internal/spectrum"
)

//go:embed configs/typology.yaml
var configFS embed.FS

// VariationKey names an intensity preset of a Type.
type VariationKey string

const (
	Moderate         VariationKey = "moderate"
	DefaultVariation VariationKey = "default"
	Extreme          VariationKey = "extreme"
)

// variationOrder is the canonical order of presets within a Type.
var variationOrder = []VariationKey{Moderate, DefaultVariation, Extreme}

func (k VariationKey) rank() int {
	return slices.Index(variationOrder, k)
}

// Family groups the types that share the Openness and Redistribution
// letters of their call sign.
type Family struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Variation is one intensity preset of a Type.
type Variation struct {
	Key    VariationKey `json:"key"`
	Name   string       `json:"name"`
	Scores [4]int       `json:"scores"`
}

// Type is a named point in the 4-dimension typology space.
type Type struct {
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	FamilyCode string      `json:"familyCode"`
	FamilyName string      `json:"familyName"`
	CoreScores [4]int      `json:"coreScores"`
	Variations []Variation `json:"variations"`
}

// Table is the immutable typology: types by call sign, families by code and
// the color palette used to draw squares. A Table is safe for concurrent use.
type Table struct {
	families        map[string]Family
	types           map[string]Type
	codes           []string
	colors          map[string]string
	intensityColors map[VariationKey]map[string]string
}

// tableFile is the on-disk YAML shape.
type tableFile struct {
	Colors          map[string]string            `yaml:"colors"`
	IntensityColors map[string]map[string]string `yaml:"intensity_colors"`
	Families        []familyFile                 `yaml:"families"`
}

type familyFile struct {
	Code        string     `yaml:"code"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Types       []typeFile `yaml:"types"`
}

type typeFile struct {
	Code       string                   `yaml:"code"`
	Name       string                   `yaml:"name"`
	CoreScores []int                    `yaml:"core_scores"`
	Variations map[string]variationFile `yaml:"variations"`
}

type variationFile struct {
	Name   string `yaml:"name"`
	Scores []int  `yaml:"scores"`
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the built-in table. It is parsed once per process.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		data, err := configFS.ReadFile("configs/typology.yaml")
		if err != nil {
			defaultErr = fmt.Errorf("read builtin typology: %w", err)
			return
		}
		defaultTable, defaultErr = parse(data)
	})
	return defaultTable, defaultErr
}

// Load reads a typology table from YAML.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read typology: %w", err)
	}
	return parse(data)
}

// LoadFile reads a typology table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse typology: %w", err)
	}

	t := &Table{
		families:        make(map[string]Family, len(f.Families)),
		types:           make(map[string]Type),
		colors:          f.Colors,
		intensityColors: make(map[VariationKey]map[string]string, len(f.IntensityColors)),
	}
	if t.colors == nil {
		t.colors = map[string]string{}
	}
	for k, v := range f.IntensityColors {
		t.intensityColors[VariationKey(k)] = v
	}

	for _, ff := range f.Families {
		if ff.Code == "" {
			return nil, fmt.Errorf("family without code")
		}
		if _, dup := t.families[ff.Code]; dup {
			return nil, fmt.Errorf("duplicate family %s", ff.Code)
		}
		t.families[ff.Code] = Family{Code: ff.Code, Name: ff.Name, Description: ff.Description}

		for _, tf := range ff.Types {
			typ, err := buildType(ff, tf)
			if err != nil {
				return nil, err
			}
			if _, dup := t.types[typ.Code]; dup {
				return nil, fmt.Errorf("duplicate type %s", typ.Code)
			}
			t.types[typ.Code] = typ
			t.codes = append(t.codes, typ.Code)
		}
	}
	slices.Sort(t.codes)

	return t, nil
}

func buildType(ff familyFile, tf typeFile) (Type, error) {
	if !validCallSign(tf.Code) {
		return Type{}, fmt.Errorf("type %q: not a call sign", tf.Code)
	}
	if want := FamilyCodeOf(tf.Code); want != ff.Code {
		return Type{}, fmt.Errorf("type %s: listed under family %s, want %s", tf.Code, ff.Code, want)
	}
	core, err := vector(tf.CoreScores)
	if err != nil {
		return Type{}, fmt.Errorf("type %s core_scores: %w", tf.Code, err)
	}

	typ := Type{
		Code:       tf.Code,
		Name:       tf.Name,
		FamilyCode: ff.Code,
		FamilyName: ff.Name,
		CoreScores: core,
	}
	for _, key := range variationOrder {
		vf, ok := tf.Variations[string(key)]
		if !ok {
			return Type{}, fmt.Errorf("type %s: missing %s variation", tf.Code, key)
		}
		scores, err := vector(vf.Scores)
		if err != nil {
			return Type{}, fmt.Errorf("type %s %s variation: %w", tf.Code, key, err)
		}
		typ.Variations = append(typ.Variations, Variation{Key: key, Name: vf.Name, Scores: scores})
	}
	if len(tf.Variations) != len(variationOrder) {
		return Type{}, fmt.Errorf("type %s: unexpected variations %v", tf.Code, keys(tf.Variations))
	}
	return typ, nil
}

func vector(in []int) ([4]int, error) {
	var out [4]int
	if len(in) != len(out) {
		return out, fmt.Errorf("want %d scores, got %d", len(out), len(in))
	}
	for i, v := range in {
		if !spectrum.Current().InRange(v) {
			return out, fmt.Errorf("score %d out of range", v)
		}
		out[i] = v
	}
	return out, nil
}

func keys(m map[string]variationFile) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Type returns the type with the given call sign.
func (t *Table) Type(code string) (Type, bool) {
	typ, ok := t.types[code]
	if !ok {
		return Type{}, false
	}
	typ.Variations = slices.Clone(typ.Variations)
	return typ, true
}

// Family returns the family with the given code.
func (t *Table) Family(code string) (Family, bool) {
	f, ok := t.families[code]
	return f, ok
}

// Codes returns every type code in lexicographic order.
func (t *Table) Codes() []string {
	return slices.Clone(t.codes)
}

// Types returns every type in code order.
func (t *Table) Types() []Type {
	out := make([]Type, 0, len(t.codes))
	for _, code := range t.codes {
		typ, _ := t.Type(code)
		out = append(out, typ)
	}
	return out
}

// Len returns the number of types in the table.
func (t *Table) Len() int {
	return len(t.codes)
}
