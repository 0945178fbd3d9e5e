package compliance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// CatalogFormatConstraint is the range of catalog file format versions this
// engine accepts.
const CatalogFormatConstraint = ">= 1.0.0, < 2.0.0"

// catalogSchema validates external catalog files before any clause is
// admitted into the registry.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["standard_id", "format_version", "clauses"],
  "properties": {
    "standard_id": {"type": "string", "minLength": 1},
    "format_version": {"type": "string", "pattern": "^[0-9]+\\.[0-9]+\\.[0-9]+$"},
    "clauses": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "keywords"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "keywords": {"type": "array", "items": {"type": "string"}},
          "requires_evidence": {"type": "boolean"},
          "min_risk_level": {"enum": ["low", "medium", "high"]},
          "requires_lopa": {"type": "boolean"}
        }
      }
    }
  }
}`

// CatalogFile is the on-disk shape of an external clause catalog.
type CatalogFile struct {
	StandardID    StandardID `json:"standard_id"`
	FormatVersion string     `json:"format_version"`
	Clauses       []Clause   `json:"clauses"`
}

var compiledCatalogSchema = mustCompileCatalogSchema()

func mustCompileCatalogSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const url = "https://hazard-engine.schemas.local/catalog.schema.json"
	if err := c.AddResource(url, strings.NewReader(catalogSchema)); err != nil {
		panic(fmt.Sprintf("catalog schema resource: %v", err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("catalog schema compile: %v", err))
	}
	return s
}

// ParseCatalog validates raw catalog JSON against the embedded schema and
// the supported format-version range, then decodes it.
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("catalog is not valid JSON: %w", err)
	}
	if err := compiledCatalogSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("catalog schema validation: %w", err)
	}

	var cf CatalogFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}

	v, err := semver.NewVersion(cf.FormatVersion)
	if err != nil {
		return nil, fmt.Errorf("catalog format version %q: %w", cf.FormatVersion, err)
	}
	constraint, err := semver.NewConstraint(CatalogFormatConstraint)
	if err != nil {
		return nil, fmt.Errorf("catalog format constraint: %w", err)
	}
	if !constraint.Check(v) {
		return nil, fmt.Errorf("catalog format version %s outside supported range %q",
			cf.FormatVersion, CatalogFormatConstraint)
	}

	for i := range cf.Clauses {
		cl := &cf.Clauses[i]
		switch cl.MinRiskLevel {
		case "", hazop.RiskLow, hazop.RiskMedium, hazop.RiskHigh:
		default:
			return nil, fmt.Errorf("clause %s: unknown min risk level %q", cl.ID, cl.MinRiskLevel)
		}
	}
	return &cf, nil
}

// LoadCatalog installs an external catalog into the registry, replacing any
// existing catalog for the same standard. Intended for startup only; the
// registry must not be mutated once serving.
func (r *Registry) LoadCatalog(cf *CatalogFile) {
	r.add(cf.StandardID, cf.Clauses)
}

// LoadCatalogDir reads every *.json file in dir as a catalog and installs
// it. Returns the standards loaded, in file order.
func (r *Registry) LoadCatalogDir(dir string) ([]StandardID, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var loaded []StandardID
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return loaded, fmt.Errorf("read catalog %s: %w", path, err)
		}
		cf, err := ParseCatalog(data)
		if err != nil {
			return loaded, fmt.Errorf("catalog %s: %w", path, err)
		}
		r.LoadCatalog(cf)
		loaded = append(loaded, cf.StandardID)
	}
	return loaded, nil
}
