package ai

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// generateSchema reflects a strict JSON schema for structured model output.
// All fields become required and additional properties are rejected, which
// is what the OpenAI structured-output API demands. The response types here
// are flat, so one level of patching is enough.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	raw, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}

	m["additionalProperties"] = false
	if properties, ok := m["properties"].(map[string]any); ok {
		required := make([]string, 0, len(properties))
		for name := range properties {
			required = append(required, name)
		}
		if len(required) > 0 {
			m["required"] = required
		}
	}
	return m
}
