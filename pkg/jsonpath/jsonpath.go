// Package jsonpath evaluates simple JSONPath expressions against JSON
// documents using gjson.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Path is a JSONPath expression converted once into gjson syntax,
// so per-frame lookups skip the conversion.
type Path struct {
	expr  string
	gpath string
}

// Compile converts a JSONPath expression such as $.go.heap_mb or
// $.systems[0].ms into a reusable Path.
func Compile(expr string) (Path, error) {
	if strings.TrimSpace(expr) == "" {
		return Path{}, fmt.Errorf("empty JSONPath expression")
	}
	return Path{expr: expr, gpath: convertToGjsonPath(expr)}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) Path {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original expression.
func (p Path) String() string {
	return p.expr
}

// Lookup returns the raw gjson result at the path.
func (p Path) Lookup(doc []byte) (gjson.Result, bool) {
	if len(doc) == 0 || p.gpath == "" {
		return gjson.Result{}, false
	}
	result := gjson.GetBytes(doc, p.gpath)
	if !result.Exists() {
		return result, false
	}
	return result, true
}

// Float returns the numeric value at the path.
//
// Numbers are returned as-is, booleans map to 0/1 and numeric strings are
// parsed. Anything else, including a missing path, reports false.
func (p Path) Float(doc []byte) (float64, bool) {
	result, ok := p.Lookup(doc)
	if !ok {
		return 0, false
	}

	switch result.Type {
	case gjson.Number:
		return result.Num, true
	case gjson.True:
		return 1, true
	case gjson.False:
		return 0, true
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(result.Str), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}

	p, err := Compile(path)
	if err != nil {
		return "", err
	}

	result, ok := p.Lookup([]byte(json))
	if !ok {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// convertToGjsonPath converts a JSONPath expression to a gjson path format
func convertToGjsonPath(path string) string {
	// JSONPath: $.users[0].name
	// gjson:    users.0.name
	if path == "$" {
		return "@this"
	}

	path = strings.TrimPrefix(path, "$")
	if path == "" {
		return "@this"
	}
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	// Bracket notation with quotes: $['name'] or $["name"]
	path = strings.NewReplacer("['", ".", "']", "", "[\"", ".", "\"]", "").Replace(path)
	path = strings.TrimPrefix(path, ".")

	// Index notation: [n] -> .n
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")
	return strings.TrimPrefix(path, ".")
}
