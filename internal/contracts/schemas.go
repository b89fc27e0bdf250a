package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const listingSchemaPath = "schemas/listing.schema.json"

var listingSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	raw, err := schemasFS.ReadFile(listingSchemaPath)
	if err != nil {
		log.Fatalf("failed to read embedded schema %s: %v", listingSchemaPath, err)
	}
	if err := compiler.AddResource(listingSchemaPath, bytes.NewReader(raw)); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", listingSchemaPath, err)
	}

	listingSchema, err = compiler.Compile(listingSchemaPath)
	if err != nil {
		log.Fatalf("could not compile schema %s: %v", listingSchemaPath, err)
	}
}

// ValidateListing проверяет один объект объявления против контракта инжеста.
// value — результат json-декодирования в interface{}.
// Неизвестные дополнительные поля контрактом не запрещены.
func ValidateListing(value interface{}) error {
	if err := listingSchema.Validate(value); err != nil {
		return fmt.Errorf("listing contract violation: %w", err)
	}
	return nil
}
