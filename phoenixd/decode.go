package phoenixd

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

var requiredCache sync.Map // reflect.Type -> []string

// requiredFields lists the JSON names of the non-pointer fields of t.
func requiredFields(t reflect.Type) []string {
	if v, ok := requiredCache.Load(t); ok {
		return v.([]string)
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() == reflect.Pointer {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	requiredCache.Store(t, names)
	return names
}

// strictUnmarshal decodes a JSON object into v, a pointer to a struct,
// rejecting bodies where a required field is absent or null.
func strictUnmarshal(data []byte, v any) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("expected object, got %s", root.Type)
	}
	for _, name := range requiredFields(reflect.TypeOf(v).Elem()) {
		r := root.Get(name)
		if !r.Exists() || r.Type == gjson.Null {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return json.Unmarshal(data, v)
}

// errorMessage pulls a human readable message out of an error body, if
// the node sent one as JSON.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, key := range []string{"message", "error", "reason"} {
		if r := gjson.GetBytes(body, key); r.Type == gjson.String {
			return r.String()
		}
	}
	return string(body)
}
