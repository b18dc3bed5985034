package dummyapi

import (
	_ "embed"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed envelope.schema.json
var envelopeSchemaJson []byte

var loadEnvelopeSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(envelopeSchemaJson))
})

func validateEnvelope(e Envelope) error {
	schema, err := loadEnvelopeSchema()
	if err != nil {
		return err
	}

	doc := map[string]any{"status": e.Status, "data": e.Data}
	if e.Data == nil {
		doc["data"] = nil
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return noEmployeeData(err.Error())
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return noEmployeeData(problems...)
}
