package structly_test

import (
	"fmt"

	"github.com/structly/structly"
)

func ExampleLoadSchemas() {
	set, err := structly.LoadSchemas(map[string]any{
		"Person": map[string]any{
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "minLength": 1},
				"age":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []any{"name"},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	report, err := set.Validate("Person", map[string]any{
		"name": "",
		"age":  -3,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, f := range report.Failures {
		fmt.Println(f.Error())
	}
	// Output:
	// [minimum] value -3 must be >= 0 at /age (actual: -3)
	// [min-length] length 0 below minimum 1 at /name
}
