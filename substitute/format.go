package substitute

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var argJSON = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// formatArg renders an argument for messages. Values are shown as compact JSON so that strings are
// quoted and structs show their fields; values JSON cannot represent fall back to their Go syntax.
func formatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "nil"
	case ArgMatcher:
		return v.String()
	case error:
		return fmt.Sprintf("error(%q)", v.Error())
	}

	switch reflect.TypeOf(arg).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return fmt.Sprintf("%#v", arg)
	default:
	}

	rendered, err := argJSON.MarshalToString(arg)
	if err != nil {
		return fmt.Sprintf("%#v", arg)
	}

	return rendered
}
