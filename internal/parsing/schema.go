package parsing

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema is deliberately permissive about which keys are present
// (missing sequences are defaulted after decoding) but strict about the
// type of every key that is present. A response where, say,
// competences_groups comes back as an object instead of an array is
// rejected here and routed to the fallback extractor.
const recordSchema = `{
  "type": "object",
  "properties": {
    "titre_professionnel": {"type": "string"},
    "nom": {"type": "string"},
    "email": {"type": "string"},
    "telephone": {"type": "string"},
    "adresse": {"type": "string"},
    "photo": {"type": "string"},
    "diplomes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "annee": {"type": "string"},
          "diplome": {"type": "string"},
          "etablissement": {"type": "string"}
        }
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "annee": {"type": "string"},
          "nom": {"type": "string"},
          "organisme": {"type": "string"}
        }
      }
    },
    "competences_groups": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "categorie": {"type": "string"},
          "competences": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "langues": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "langue": {"type": "string"},
          "niveau": {"type": "string"}
        }
      }
    },
    "experiences": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "entreprise": {"type": "string"},
          "periode": {"type": "string"},
          "poste": {"type": "string"},
          "lieu": {"type": "string"},
          "projets": {"type": "array", "items": {"type": "string"}},
          "realisations": {"type": "array", "items": {"type": "string"}},
          "environnement": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(recordSchema)

// ValidateShape checks a repaired JSON document against the record
// schema. Returns a JSONShapeError describing every violation.
func ValidateShape(jsonText string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return &JSONShapeError{Message: "response is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &JSONShapeError{Message: strings.Join(details, "; ")}
}
