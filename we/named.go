package we

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	TypeName() string
}

// NameOf derives a "package:type" name in kebab case, e.g. blink.Counter becomes
// "blink:counter". Values implementing Named choose their own name.
func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.TypeName()
	}

	split := strings.Split(reflect.TypeOf(value).String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		s := strings.TrimLeft(segment, "*")
		segments[i] = strcase.ToKebab(s)
	}

	if len(segments) == 1 {
		return segments[0]
	}

	namespace := segments[0]
	name := strings.Join(segments[1:], "-")

	return namespace + ":" + name
}
