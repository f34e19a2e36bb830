package pipeline

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/extractor"
	"github.com/pthm/squares/internal/spectrum"
)

// SchemaTargets names the documents Schema can describe.
var SchemaTargets = []string{"result", "record", "legacy"}

// Schema returns the JSON Schema of a document squares reads or writes:
// "result" for pipeline output, "record" for an extracted assessment and
// "legacy" for converter input.
func Schema(target string) (*jsonschema.Schema, error) {
	var v any
	switch target {
	case "result":
		v = Result{}
	case "record":
		v = extractor.Record{}
	case "legacy":
		v = convert.Legacy{}
	default:
		return nil, fmt.Errorf("unknown schema target %q (want one of %v)", target, SchemaTargets)
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapType,
	}
	return reflector.Reflect(v), nil
}

var scoreType = reflect.TypeOf(spectrum.Score(0))

// mapType describes a Score as it is encoded: a number, or null when
// unknown.
func mapType(t reflect.Type) *jsonschema.Schema {
	if t != scoreType {
		return nil
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:    "integer",
				Minimum: json.Number("0"),
				Maximum: json.Number(strconv.Itoa(spectrum.Legacy().Max)),
			},
			{Type: "null"},
		},
	}
}
