package loader

// Constraint keys accepted in schema documents. Two object conventions are
// supported: the JSON-schema style "properties"/"required"/
// "additionalProperties" triple, and the underscore-prefixed
// "fields"/"_required"/"_additionalProperties" triple. They are alternate
// external shapes, never merged on one node.
const (
	keyDescription = "description"
	keyType        = "type"
	keyRef         = "$ref"

	keyPattern   = "pattern"
	keyMinLength = "minLength"
	keyMaxLength = "maxLength"

	keyMinimum          = "minimum"
	keyMaximum          = "maximum"
	keyExclusiveMinimum = "exclusiveMinimum"
	keyExclusiveMaximum = "exclusiveMaximum"
	keyMultipleOf       = "multipleOf"

	keyItems       = "items"
	keyMinItems    = "minItems"
	keyMaxItems    = "maxItems"
	keyUniqueItems = "uniqueItems"

	keyProperties           = "properties"
	keyRequired             = "required"
	keyAdditionalProperties = "additionalProperties"

	keyFields               = "fields"
	keyUnderscoreRequired   = "_required"
	keyUnderscoreAdditional = "_additionalProperties"

	keyMapKeys   = "keys"
	keyMapValues = "values"

	keyEnum  = "enum"
	keyAnyOf = "anyOf"
	keyAllOf = "allOf"
	keyOneOf = "oneOf"
	keyNot   = "not"
)

// knownKeys is the full constraint vocabulary; strict mode rejects anything
// outside it. Unknown keys are ignored otherwise for forward compatibility.
var knownKeys = map[string]struct{}{
	keyDescription:          {},
	keyType:                 {},
	keyRef:                  {},
	keyPattern:              {},
	keyMinLength:            {},
	keyMaxLength:            {},
	keyMinimum:              {},
	keyMaximum:              {},
	keyExclusiveMinimum:     {},
	keyExclusiveMaximum:     {},
	keyMultipleOf:           {},
	keyItems:                {},
	keyMinItems:             {},
	keyMaxItems:             {},
	keyUniqueItems:          {},
	keyProperties:           {},
	keyRequired:             {},
	keyAdditionalProperties: {},
	keyFields:               {},
	keyUnderscoreRequired:   {},
	keyUnderscoreAdditional: {},
	keyMapKeys:              {},
	keyMapValues:            {},
	keyEnum:                 {},
	keyAnyOf:                {},
	keyAllOf:                {},
	keyOneOf:                {},
	keyNot:                  {},
}
