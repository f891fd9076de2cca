// Package loader converts a decoded schema document into the constraint
// model. All name resolution, bounds checking, and cycle detection happens
// here, so evaluation never encounters a malformed or unresolved node.
package loader

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/structly/structly/errors"
	"github.com/structly/structly/internal/constraint"
	"github.com/structly/structly/internal/graphcycle"
	"github.com/structly/structly/internal/registry"
	"github.com/structly/structly/internal/value"
)

// Options configures schema loading.
type Options struct {
	// Strict rejects unknown constraint keys instead of ignoring them.
	Strict bool
	// AllowTypeOverride permits a schema entry to shadow a built-in type name.
	AllowTypeOverride bool
}

// Definition is one named, fully resolved schema entry.
type Definition struct {
	Name        string
	Description string
	Root        constraint.Node
}

type pendingRef struct {
	ref    *constraint.Reference
	schema string
	path   string
}

type loadState struct {
	opts Options
	reg  *registry.Registry
	refs []pendingRef
	// edges records, per entry, the type names it references, for cycle
	// detection across entries.
	edges map[string][]string
	// entry currently being parsed.
	entry string
}

// Load builds definitions from a decoded schema document. The document maps
// entry names to constraint nodes; entries may reference each other by name
// in any order as long as the references are acyclic.
func Load(doc map[string]any, opts Options) (map[string]*Definition, error) {
	if doc == nil {
		return nil, &errors.SchemaDefinitionError{Err: fmt.Errorf("nil schema document")}
	}

	state := &loadState{
		opts:  opts,
		reg:   registry.New(opts.AllowTypeOverride),
		edges: make(map[string][]string, len(doc)),
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make(map[string]*Definition, len(doc))
	for _, name := range names {
		def, err := state.parseEntry(name, doc[name])
		if err != nil {
			return nil, err
		}
		if err := state.reg.Define(name, def.Root); err != nil {
			return nil, &errors.SchemaDefinitionError{Schema: name, Err: err}
		}
		defs[name] = def
	}

	if err := state.resolveReferences(); err != nil {
		return nil, err
	}
	if err := state.detectCycles(names); err != nil {
		return nil, err
	}
	return defs, nil
}

func (s *loadState) parseEntry(name string, raw any) (*Definition, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &errors.SchemaDefinitionError{
			Schema: name,
			Err:    fmt.Errorf("entry must be a mapping, got %s", value.KindOf(raw)),
		}
	}

	s.entry = name
	def := &Definition{Name: name}
	if desc, present := obj[keyDescription]; present {
		str, ok := desc.(string)
		if !ok {
			return nil, s.defErr("/"+keyDescription, fmt.Errorf("description must be a string"))
		}
		def.Description = str
	}

	root, err := s.parseNode(obj, "")
	if err != nil {
		return nil, err
	}
	def.Root = root
	return def, nil
}

// parseNode dispatches on the keys present. Composite keys take precedence
// over enum, which takes precedence over declared-field objects, which take
// precedence over $ref and a bare type.
func (s *loadState) parseNode(obj map[string]any, path string) (constraint.Node, error) {
	if s.opts.Strict {
		for _, key := range sortedKeys(obj) {
			if _, known := knownKeys[key]; !known {
				return nil, s.defErr(path, fmt.Errorf("unknown constraint key %q", key))
			}
		}
	}

	switch {
	case hasKey(obj, keyAnyOf):
		return s.parseComposite(obj[keyAnyOf], path+"/"+keyAnyOf, func(nodes []constraint.Node) (constraint.Node, error) {
			return constraint.NewAnyOf(nodes)
		})
	case hasKey(obj, keyAllOf):
		return s.parseComposite(obj[keyAllOf], path+"/"+keyAllOf, func(nodes []constraint.Node) (constraint.Node, error) {
			return constraint.NewAllOf(nodes)
		})
	case hasKey(obj, keyOneOf):
		return s.parseComposite(obj[keyOneOf], path+"/"+keyOneOf, func(nodes []constraint.Node) (constraint.Node, error) {
			return constraint.NewOneOf(nodes)
		})
	case hasKey(obj, keyNot):
		return s.parseNot(obj[keyNot], path+"/"+keyNot)
	case hasKey(obj, keyEnum):
		return s.parseEnum(obj[keyEnum], path+"/"+keyEnum)
	case hasKey(obj, keyProperties) || hasKey(obj, keyFields):
		return s.parseObject(obj, path)
	case hasKey(obj, keyRef):
		name, ok := obj[keyRef].(string)
		if !ok || name == "" {
			return nil, s.defErr(path+"/"+keyRef, fmt.Errorf("$ref must be a non-empty string"))
		}
		return s.newReference(name), nil
	case hasKey(obj, keyType):
		return s.parseTyped(obj, path)
	default:
		// No constraint keys: the node accepts any value.
		return &constraint.Any{}, nil
	}
}

func (s *loadState) parseTyped(obj map[string]any, path string) (constraint.Node, error) {
	typeName, ok := obj[keyType].(string)
	if !ok || typeName == "" {
		return nil, s.defErr(path+"/"+keyType, fmt.Errorf("type must be a non-empty string"))
	}

	if !s.reg.IsBuiltin(typeName) {
		return s.newReference(typeName), nil
	}

	builtin, err := s.reg.Resolve(typeName)
	if err != nil {
		return nil, s.defErr(path+"/"+keyType, err)
	}
	switch builtin.Kind() {
	case "string":
		return s.parseString(obj, path)
	case "number", "integer":
		return s.parseNumber(obj, path, builtin.Kind() == "integer")
	case "boolean":
		return &constraint.Boolean{}, nil
	case "array":
		return s.parseArray(obj, path)
	case "object":
		return s.parseObject(obj, path)
	case "map":
		return s.parseMap(obj, path)
	default:
		return &constraint.Any{}, nil
	}
}

func (s *loadState) parseString(obj map[string]any, path string) (constraint.Node, error) {
	minLength, err := s.intBound(obj, keyMinLength, path)
	if err != nil {
		return nil, err
	}
	maxLength, err := s.intBound(obj, keyMaxLength, path)
	if err != nil {
		return nil, err
	}

	pattern := ""
	hasPattern := false
	if raw, present := obj[keyPattern]; present {
		str, ok := raw.(string)
		if !ok {
			return nil, s.defErr(path+"/"+keyPattern, fmt.Errorf("pattern must be a string"))
		}
		pattern, hasPattern = str, true
	}

	node, err := constraint.NewString(pattern, hasPattern, minLength, maxLength)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseNumber(obj map[string]any, path string, requireInteger bool) (constraint.Node, error) {
	minimum, err := s.numBound(obj, keyMinimum, keyExclusiveMinimum, path)
	if err != nil {
		return nil, err
	}
	maximum, err := s.numBound(obj, keyMaximum, keyExclusiveMaximum, path)
	if err != nil {
		return nil, err
	}

	multipleOf := 0.0
	hasMultipleOf := false
	if raw, present := obj[keyMultipleOf]; present {
		multipleOf, hasMultipleOf = value.AsNumber(raw)
		if !hasMultipleOf {
			return nil, s.defErr(path+"/"+keyMultipleOf, fmt.Errorf("multipleOf must be a number"))
		}
	}

	node, err := constraint.NewNumber(minimum, maximum, multipleOf, hasMultipleOf, requireInteger)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseArray(obj map[string]any, path string) (constraint.Node, error) {
	minItems, err := s.intBound(obj, keyMinItems, path)
	if err != nil {
		return nil, err
	}
	maxItems, err := s.intBound(obj, keyMaxItems, path)
	if err != nil {
		return nil, err
	}
	uniqueItems, err := s.boolKey(obj, keyUniqueItems, false, path)
	if err != nil {
		return nil, err
	}

	var items constraint.Node
	var tuple []constraint.Node
	if raw, present := obj[keyItems]; present {
		itemsPath := path + "/" + keyItems
		switch spec := raw.(type) {
		case map[string]any:
			items, err = s.parseNode(spec, itemsPath)
			if err != nil {
				return nil, err
			}
		case []any:
			tuple = make([]constraint.Node, 0, len(spec))
			for i, element := range spec {
				elementObj, ok := element.(map[string]any)
				if !ok {
					return nil, s.defErr(fmt.Sprintf("%s/%d", itemsPath, i),
						fmt.Errorf("tuple item must be a mapping, got %s", value.KindOf(element)))
				}
				node, err := s.parseNode(elementObj, fmt.Sprintf("%s/%d", itemsPath, i))
				if err != nil {
					return nil, err
				}
				tuple = append(tuple, node)
			}
		default:
			return nil, s.defErr(itemsPath,
				fmt.Errorf("items must be a mapping or a sequence, got %s", value.KindOf(raw)))
		}
	}

	node, err := constraint.NewArray(minItems, maxItems, uniqueItems, items, tuple)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseObject(obj map[string]any, path string) (constraint.Node, error) {
	_, hasProperties := obj[keyProperties]
	_, hasFields := obj[keyFields]
	if hasProperties && hasFields {
		return nil, s.defErr(path,
			fmt.Errorf("%q and %q are alternate conventions and cannot be combined", keyProperties, keyFields))
	}

	fieldsKey := keyProperties
	requiredKey := keyRequired
	additionalKey := keyAdditionalProperties
	if hasFields {
		fieldsKey = keyFields
		requiredKey = keyUnderscoreRequired
		additionalKey = keyUnderscoreAdditional
	}

	var fieldNames []string
	fields := map[string]constraint.Node{}
	if raw, present := obj[fieldsKey]; present {
		declared, ok := raw.(map[string]any)
		if !ok {
			return nil, s.defErr(path+"/"+fieldsKey,
				fmt.Errorf("%s must be a mapping, got %s", fieldsKey, value.KindOf(raw)))
		}
		for _, name := range sortedKeys(declared) {
			fieldPath := path + "/" + fieldsKey + "/" + name
			fieldObj, ok := declared[name].(map[string]any)
			if !ok {
				return nil, s.defErr(fieldPath,
					fmt.Errorf("field constraint must be a mapping, got %s", value.KindOf(declared[name])))
			}
			node, err := s.parseNode(fieldObj, fieldPath)
			if err != nil {
				return nil, err
			}
			fieldNames = append(fieldNames, name)
			fields[name] = node
		}
	}

	var required []string
	if raw, present := obj[requiredKey]; present {
		list, err := stringList(raw)
		if err != nil {
			return nil, s.defErr(path+"/"+requiredKey, err)
		}
		required = list
	} else if hasFields {
		// Under the fields convention every declared field is required by
		// default; under properties the default is none.
		required = fieldNames
	}

	additional, err := s.boolKey(obj, additionalKey, true, path)
	if err != nil {
		return nil, err
	}

	node, err := constraint.NewObject(fieldNames, fields, required, additional)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseMap(obj map[string]any, path string) (constraint.Node, error) {
	minItems, err := s.intBound(obj, keyMinItems, path)
	if err != nil {
		return nil, err
	}
	maxItems, err := s.intBound(obj, keyMaxItems, path)
	if err != nil {
		return nil, err
	}

	var keys, values constraint.Node
	if raw, present := obj[keyMapKeys]; present {
		keyObj, ok := raw.(map[string]any)
		if !ok {
			return nil, s.defErr(path+"/"+keyMapKeys, fmt.Errorf("keys must be a mapping"))
		}
		keys, err = s.parseNode(keyObj, path+"/"+keyMapKeys)
		if err != nil {
			return nil, err
		}
	}
	if raw, present := obj[keyMapValues]; present {
		valueObj, ok := raw.(map[string]any)
		if !ok {
			return nil, s.defErr(path+"/"+keyMapValues, fmt.Errorf("values must be a mapping"))
		}
		values, err = s.parseNode(valueObj, path+"/"+keyMapValues)
		if err != nil {
			return nil, err
		}
	}

	node, err := constraint.NewMap(keys, values, minItems, maxItems)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseEnum(raw any, path string) (constraint.Node, error) {
	values, ok := raw.([]any)
	if !ok {
		return nil, s.defErr(path, fmt.Errorf("enum must be a sequence, got %s", value.KindOf(raw)))
	}
	node, err := constraint.NewEnum(values)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseComposite(raw any, path string, build func([]constraint.Node) (constraint.Node, error)) (constraint.Node, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, s.defErr(path, fmt.Errorf("expected a sequence of constraints, got %s", value.KindOf(raw)))
	}
	nodes := make([]constraint.Node, 0, len(list))
	for i, element := range list {
		elementObj, ok := element.(map[string]any)
		if !ok {
			return nil, s.defErr(fmt.Sprintf("%s/%d", path, i),
				fmt.Errorf("alternative must be a mapping, got %s", value.KindOf(element)))
		}
		node, err := s.parseNode(elementObj, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	node, err := build(nodes)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) parseNot(raw any, path string) (constraint.Node, error) {
	branchObj, ok := raw.(map[string]any)
	if !ok {
		return nil, s.defErr(path, fmt.Errorf("not must be a mapping, got %s", value.KindOf(raw)))
	}
	branch, err := s.parseNode(branchObj, path)
	if err != nil {
		return nil, err
	}
	node, err := constraint.NewNot(branch)
	if err != nil {
		return nil, s.defErr(path, err)
	}
	return node, nil
}

func (s *loadState) newReference(name string) *constraint.Reference {
	ref := &constraint.Reference{Name: name}
	s.refs = append(s.refs, pendingRef{ref: ref, schema: s.entry, path: ""})
	s.edges[s.entry] = append(s.edges[s.entry], name)
	return ref
}

// resolveReferences fixes every reference to its target node. Resolution is
// a single pass after all entries are registered, so forward references work
// and unknown names surface at load rather than at evaluation time.
func (s *loadState) resolveReferences() error {
	for _, pending := range s.refs {
		target, err := s.reg.Resolve(pending.ref.Name)
		if err != nil {
			return &errors.SchemaDefinitionError{Schema: pending.schema, Path: pending.path, Err: err}
		}
		pending.ref.Target = target
	}
	return nil
}

func (s *loadState) detectCycles(names []string) error {
	starts := make([]string, 0, len(names))
	for _, name := range names {
		if len(s.edges[name]) > 0 {
			starts = append(starts, name)
		}
	}
	err := graphcycle.Detect(starts, func(name string) []string { return s.edges[name] })
	if err == nil {
		return nil
	}
	var cycle graphcycle.CycleError[string]
	if stderrors.As(err, &cycle) {
		return &errors.SchemaDefinitionError{
			Schema: cycle.Key,
			Err:    &errors.SchemaRecursionError{Name: cycle.Key},
		}
	}
	return err
}

func (s *loadState) defErr(path string, err error) error {
	return &errors.SchemaDefinitionError{Schema: s.entry, Path: path, Err: err}
}

func (s *loadState) intBound(obj map[string]any, key, path string) (constraint.IntBound, error) {
	raw, present := obj[key]
	if !present {
		return constraint.IntBound{}, nil
	}
	num, ok := value.AsNumber(raw)
	if !ok || !value.IsIntegral(num) {
		return constraint.IntBound{}, s.defErr(path+"/"+key, fmt.Errorf("%s must be an integer", key))
	}
	return constraint.IntBound{Value: int(num), Set: true}, nil
}

func (s *loadState) numBound(obj map[string]any, key, exclusiveKey, path string) (constraint.NumBound, error) {
	raw, present := obj[key]
	if !present {
		if _, exclusivePresent := obj[exclusiveKey]; exclusivePresent {
			return constraint.NumBound{}, s.defErr(path+"/"+exclusiveKey,
				fmt.Errorf("%s requires %s", exclusiveKey, key))
		}
		return constraint.NumBound{}, nil
	}
	num, ok := value.AsNumber(raw)
	if !ok {
		return constraint.NumBound{}, s.defErr(path+"/"+key, fmt.Errorf("%s must be a number", key))
	}
	exclusive, err := s.boolKey(obj, exclusiveKey, false, path)
	if err != nil {
		return constraint.NumBound{}, err
	}
	return constraint.NumBound{Value: num, Set: true, Exclusive: exclusive}, nil
}

func (s *loadState) boolKey(obj map[string]any, key string, def bool, path string) (bool, error) {
	raw, present := obj[key]
	if !present {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return def, s.defErr(path+"/"+key, fmt.Errorf("%s must be a boolean", key))
	}
	return b, nil
}

func hasKey(obj map[string]any, key string) bool {
	_, present := obj[key]
	return present
}

func stringList(raw any) ([]string, error) {
	switch list := raw.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, len(list))
		for i, element := range list {
			str, ok := element.(string)
			if !ok {
				return nil, fmt.Errorf("expected a sequence of strings, got %s element", value.KindOf(element))
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a sequence of strings, got %s", value.KindOf(raw))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
