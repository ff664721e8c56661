package repo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed fixture_schema.json
var fixtureSchemaJSON string

var fixtureSchema = jsonschema.MustCompileString("listing-fixture.schema.json", fixtureSchemaJSON)

// LoadFixture reads a JSON array of listings used to seed the in-memory store.
func LoadFixture(path string) ([]models.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture validates data against the fixture schema and decodes it.
func ParseFixture(data []byte) ([]models.Listing, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("fixture is not valid JSON: %w", err)
	}
	if err := fixtureSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("fixture schema validation failed: %w", err)
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	seen := make(map[int]bool, len(listings))
	for _, l := range listings {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate listing id %d in fixture", l.ID)
		}
		seen[l.ID] = true
	}
	return listings, nil
}
