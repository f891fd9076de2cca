package structly

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/structly/structly/errors"
)

func userSchema(t *testing.T, opts ...Option) *SchemaSet {
	t.Helper()
	set, err := LoadSchemas(map[string]any{
		"UserName": map[string]any{
			"type":      "string",
			"minLength": 1,
			"maxLength": 16,
			"pattern":   "[a-z]+",
		},
		"User": map[string]any{
			"description": "a registered account",
			"properties": map[string]any{
				"name":   map[string]any{"$ref": "UserName"},
				"age":    map[string]any{"type": "integer", "minimum": 0, "maximum": 150},
				"email":  map[string]any{"type": "string", "pattern": `[^@]+@[^@]+`},
				"scores": map[string]any{"type": "array", "items": map[string]any{"type": "number"}, "uniqueItems": true},
			},
			"required":             []any{"name", "age"},
			"additionalProperties": false,
		},
	}, opts...)
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	return set
}

func TestValidateAccepts(t *testing.T) {
	set := userSchema(t)

	report, err := set.Validate("User", map[string]any{
		"name":   "alice",
		"age":    30,
		"email":  "alice@example.com",
		"scores": []any{1, 2.5},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid {
		t.Fatalf("report = %s, want valid", report)
	}
	if report.Failures != nil {
		t.Fatalf("failures = %v, want nil", report.Failures)
	}
}

func TestValidateReportsAllFailures(t *testing.T) {
	set := userSchema(t)

	report, err := set.Validate("User", map[string]any{
		"age":     200,
		"role":    "admin",
		"scores":  []any{1, 1},
		"email":   "not-an-email",
		"unknown": true,
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Valid {
		t.Fatal("report valid, want failures")
	}

	wantKinds := map[errors.FailureKind]bool{
		errors.KindRequired:           false, // /name missing
		errors.KindMaximum:            false, // /age above bound
		errors.KindPattern:            false, // /email
		errors.KindUniqueItems:        false, // /scores
		errors.KindAdditionalProperty: false, // /role, /unknown
	}
	for _, f := range report.Failures {
		if _, tracked := wantKinds[f.Kind]; tracked {
			wantKinds[f.Kind] = true
		}
	}
	for kind, seen := range wantKinds {
		if !seen {
			t.Errorf("missing %s failure in %v", kind, report.Failures)
		}
	}
}

func TestValidateDeterministicOrdering(t *testing.T) {
	set := userSchema(t)
	doc := map[string]any{"age": -1, "extra": 1, "zz": 2}

	first, err := set.Validate("User", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	second, err := set.Validate("User", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("reports differ:\n%s\n%s", first, second)
	}
	for i := 1; i < len(first.Failures); i++ {
		if first.Failures[i-1].Path > first.Failures[i].Path {
			t.Fatalf("failures not ordered by path: %v", first.Failures)
		}
	}
}

func TestValidateUnknownDefinition(t *testing.T) {
	set := userSchema(t)

	_, err := set.Validate("Missing", map[string]any{})
	var unknown *errors.UnknownTypeError
	if !stderrors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownTypeError", err)
	}
	if unknown.Name != "Missing" {
		t.Fatalf("unknown.Name = %q", unknown.Name)
	}
}

func TestValidateDepthLimit(t *testing.T) {
	node := map[string]any{"type": "string"}
	for i := 0; i < 10; i++ {
		node = map[string]any{"type": "array", "items": node}
	}
	set, err := LoadSchemas(map[string]any{"Tree": node}, WithMaxDepth(4))
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}

	deep := any("leaf")
	for i := 0; i < 10; i++ {
		deep = []any{deep}
	}
	_, err = set.Validate("Tree", deep)
	var rec *errors.SchemaRecursionError
	if !stderrors.As(err, &rec) {
		t.Fatalf("err = %v, want SchemaRecursionError", err)
	}
}

func TestValidateConcurrent(t *testing.T) {
	set := userSchema(t)
	valid := map[string]any{"name": "bob", "age": 1}
	invalid := map[string]any{"age": -5}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(even bool) {
			defer wg.Done()
			doc := valid
			if !even {
				doc = invalid
			}
			report, err := set.Validate("User", doc)
			if err != nil {
				t.Errorf("Validate: %v", err)
				return
			}
			if report.Valid != even {
				t.Errorf("report.Valid = %v, want %v", report.Valid, even)
			}
		}(i%2 == 0)
	}
	wg.Wait()
}

func TestLoadSchemasStrict(t *testing.T) {
	_, err := LoadSchemas(map[string]any{
		"User": map[string]any{"type": "string", "paterne": "x"},
	}, WithStrict(true))
	var defErr *errors.SchemaDefinitionError
	if !stderrors.As(err, &defErr) {
		t.Fatalf("err = %v, want SchemaDefinitionError", err)
	}
}

func TestDefinitionsAndDescription(t *testing.T) {
	set := userSchema(t)

	got := set.Definitions()
	want := []string{"User", "UserName"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Definitions = %v, want %v", got, want)
	}

	desc, ok := set.Description("User")
	if !ok || desc != "a registered account" {
		t.Fatalf("Description = %q, %v", desc, ok)
	}
	if _, ok := set.Description("Missing"); ok {
		t.Fatal("Description for missing definition returned ok")
	}
}

func TestReportErr(t *testing.T) {
	set := userSchema(t)

	valid, err := set.Validate("User", map[string]any{"name": "a", "age": 1})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if valid.Err() != nil {
		t.Fatalf("Err = %v, want nil", valid.Err())
	}

	invalid, err := set.Validate("User", map[string]any{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	failures, ok := errors.AsFailures(invalid.Err())
	if !ok || len(failures) == 0 {
		t.Fatalf("AsFailures = %v, %v", failures, ok)
	}
}
