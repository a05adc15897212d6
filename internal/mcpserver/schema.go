package mcpserver

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const envelopeSchemaURL = "waypoint://schema/envelope.json"

//go:embed schema/envelope.schema.json
var envelopeSchemaJSON []byte

type envelopeSchema struct {
	schema *jsonschema.Schema
}

func compileEnvelopeSchema() (*envelopeSchema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(envelopeSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse envelope schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(envelopeSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add envelope schema: %w", err)
	}
	sch, err := c.Compile(envelopeSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile envelope schema: %w", err)
	}
	return &envelopeSchema{schema: sch}, nil
}

// validate checks a JSON encoded envelope.
func (e *envelopeSchema) validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return e.schema.Validate(inst)
}
