// builtin_core.go: host built-ins (print, println)
//
// Built-ins dispatch by name before user bindings are consulted, so they
// cannot be shadowed by declarations. Arguments are rendered space-joined.
// Escape sequences in string arguments (\n \t \r \\) are substituted here,
// at output time; the lexer keeps string literals raw.
package remylang

import (
	"fmt"
	"io"
	"strings"
)

// IsBuiltin reports whether name is a built-in function.
func IsBuiltin(name string) bool {
	switch name {
	case "print", "println":
		return true
	}
	return false
}

func callBuiltin(name string, args []Value, out io.Writer) (Value, *RuntimeError) {
	switch name {
	case "print":
		return builtinPrint(args, out)
	case "println":
		v, err := builtinPrint(args, out)
		if err != nil {
			return v, err
		}
		fmt.Fprintln(out)
		return Void, nil
	}
	return Value{}, errUndefinedFunction(name)
}

func builtinPrint(args []Value, out io.Writer) (Value, *RuntimeError) {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		if arg.Tag == VTString {
			fmt.Fprint(out, substituteEscapes(arg.Data.(string)))
		} else {
			fmt.Fprint(out, FormatValue(arg))
		}
	}
	return Void, nil
}

// substituteEscapes rewrites the textual escapes the language supports.
// The replaces run in sequence, so a backslash freed up by an earlier pass
// feeds into the later ones: "a\\nb" comes out as a backslash, a newline,
// then b.
func substituteEscapes(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
