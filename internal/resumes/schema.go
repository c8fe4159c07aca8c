package resumes

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/save_request.schema.json
var saveRequestSchemaJSON []byte

var (
	saveSchemaOnce sync.Once
	saveSchema     *gojsonschema.Schema
	saveSchemaErr  error
)

func loadSaveSchema() (*gojsonschema.Schema, error) {
	saveSchemaOnce.Do(func() {
		saveSchema, saveSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(saveRequestSchemaJSON))
	})
	return saveSchema, saveSchemaErr
}

// validateSaveRequest checks a decoded save request body against the
// embedded schema. Schema violations are reported as *ValidationError.
func validateSaveRequest(body any) error {
	schema, err := loadSaveSchema()
	if err != nil {
		return fmt.Errorf("load save request schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		return fmt.Errorf("validate save request: %w", err)
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &ValidationError{Problems: problems}
}
