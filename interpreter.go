// interpreter.go: runtime value model, environment, and fault types
//
// The interpreter executes the statement sequence against a scope stack of
// runtime values. It does not require the type checker to have run; untyped
// execution is legal at the library level and every operation re-validates
// its operands dynamically.
//
// Values are passed and stored by value: reads out of the environment and
// out of arrays hand back structural copies, so no aliasing is ever visible
// to the program.
package remylang

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// -----------------------------
// Values
// -----------------------------

// ValueTag discriminates runtime values.
type ValueTag int

const (
	VTNumber ValueTag = iota
	VTString
	VTChar
	VTBool
	VTArray
	VTFunction
	VTVoid
)

// Value is a tagged runtime value. Data holds int64, string, rune, bool,
// []Value, or *FunctionValue depending on Tag; it is nil for VTVoid.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// FunctionValue captures a declared function: its name, parameter names in
// order, and the body block. Declared types are a checker concern and not
// carried into the runtime.
type FunctionValue struct {
	Name   string
	Params []string
	Body   *BlockStmt
}

var Void = Value{Tag: VTVoid}

func Number(n int64) Value { return Value{Tag: VTNumber, Data: n} }
func Str(s string) Value   { return Value{Tag: VTString, Data: s} }
func Char(c rune) Value    { return Value{Tag: VTChar, Data: c} }
func Bool(b bool) Value    { return Value{Tag: VTBool, Data: b} }
func Arr(vs []Value) Value { return Value{Tag: VTArray, Data: vs} }

// TypeName is the user-facing type name used in fault messages.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTNumber:
		return "Int"
	case VTString:
		return "String"
	case VTChar:
		return "Char"
	case VTBool:
		return "Bool"
	case VTArray:
		return "Array"
	case VTFunction:
		return "Function"
	case VTVoid:
		return "Void"
	}
	return "?"
}

// IsTruthy: Bool is its own truth; a Number is truthy iff non-zero; String
// and Array are truthy iff non-empty; Void is always falsy; everything else
// (Char, Function) is truthy.
func (v Value) IsTruthy() bool {
	switch v.Tag {
	case VTBool:
		return v.Data.(bool)
	case VTNumber:
		return v.Data.(int64) != 0
	case VTString:
		return v.Data.(string) != ""
	case VTArray:
		return len(v.Data.([]Value)) != 0
	case VTVoid:
		return false
	}
	return true
}

// Equal is structural equality over any value pairing. Arrays compare
// element-wise; functions compare by identity of the underlying function
// object. Values of different tags are never equal.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTArray:
		a, b := v.Data.([]Value), o.Data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case VTFunction:
		return v.Data == o.Data
	case VTVoid:
		return true
	default:
		return v.Data == o.Data
	}
}

// copyValue makes a structural copy so array values never alias.
// Function values share the immutable body statement.
func copyValue(v Value) Value {
	if v.Tag != VTArray {
		return v
	}
	src := v.Data.([]Value)
	dst := make([]Value, len(src))
	for i, e := range src {
		dst[i] = copyValue(e)
	}
	return Arr(dst)
}

// FormatValue renders a value the way the language prints it: bare numbers
// and strings, True/False, "[1, 2, 3]", "<function name>", "void".
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNumber:
		return fmt.Sprintf("%d", v.Data.(int64))
	case VTString:
		return v.Data.(string)
	case VTChar:
		return string(v.Data.(rune))
	case VTBool:
		if v.Data.(bool) {
			return "True"
		}
		return "False"
	case VTArray:
		var b strings.Builder
		b.WriteString("[")
		for i, e := range v.Data.([]Value) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(e))
		}
		b.WriteString("]")
		return b.String()
	case VTFunction:
		return fmt.Sprintf("<function %s>", v.Data.(*FunctionValue).Name)
	case VTVoid:
		return "void"
	}
	return "?"
}

// -----------------------------
// Runtime faults
// -----------------------------

// RuntimeErrorKind classifies runtime faults.
type RuntimeErrorKind int

const (
	RTUndefinedVariable RuntimeErrorKind = iota
	RTUndefinedFunction
	RTTypeMismatch
	RTDivisionByZero
	RTModuloByZero
	RTIndexOutOfBounds
	RTNotIndexable
	RTNotCallable
	RTArgumentCountMismatch
	RTStackOverflow
	RTReturnOutsideFunction
	RTInvalidOperation
	RTAssignmentToUndefined
	RTCustom
)

// RuntimeError is a runtime fault; the first fault halts execution.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Msg  string

	// Index/Length are populated for RTIndexOutOfBounds.
	Index  int64
	Length int
}

func (e *RuntimeError) Error() string { return "Runtime error: " + e.Msg }

func rtErrf(kind RuntimeErrorKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func errUndefinedVariable(name string) *RuntimeError {
	return rtErrf(RTUndefinedVariable, "Undefined variable '%s'", name)
}

func errUndefinedFunction(name string) *RuntimeError {
	return rtErrf(RTUndefinedFunction, "Undefined function '%s'", name)
}

func errTypeMismatch(operation, expected, found string) *RuntimeError {
	return rtErrf(RTTypeMismatch, "Type error in %s: expected %s, found %s", operation, expected, found)
}

func errIndexOutOfBounds(index int64, length int) *RuntimeError {
	e := rtErrf(RTIndexOutOfBounds, "Index %d out of bounds for array of length %d", index, length)
	e.Index, e.Length = index, length
	return e
}

func errNotIndexable(valueType string) *RuntimeError {
	return rtErrf(RTNotIndexable, "Cannot index into value of type %s", valueType)
}

func errNotCallable(valueType string) *RuntimeError {
	return rtErrf(RTNotCallable, "Cannot call value of type %s", valueType)
}

func errArgumentCount(fnName string, expected, found int) *RuntimeError {
	return rtErrf(RTArgumentCountMismatch,
		"Function '%s' expects %d arguments, but %d were provided", fnName, expected, found)
}

func errStackOverflow() *RuntimeError {
	return rtErrf(RTStackOverflow, "Stack overflow (maximum call depth of %d exceeded)", maxCallDepth)
}

func errReturnOutsideFunction() *RuntimeError {
	return rtErrf(RTReturnOutsideFunction, "Return statement outside of function")
}

func errInvalidOperation(operation, leftType, rightType string) *RuntimeError {
	return rtErrf(RTInvalidOperation, "Invalid operation '%s' between %s and %s", operation, leftType, rightType)
}

func errAssignmentToUndefined(name string) *RuntimeError {
	return rtErrf(RTAssignmentToUndefined,
		"Assignment to undefined variable '%s'. Use 'Type %s = ...' to declare it first", name, name)
}

// -----------------------------
// Environment
// -----------------------------

// Environment is the dynamic scope stack. The global scope is created at
// construction and never popped.
type Environment struct {
	scopes []map[string]Value
}

func NewEnv() *Environment {
	return &Environment{scopes: []map[string]Value{{}}}
}

func (env *Environment) PushScope() {
	env.scopes = append(env.scopes, map[string]Value{})
}

// PopScope below the global scope is a no-op.
func (env *Environment) PopScope() {
	if len(env.scopes) > 1 {
		env.scopes = env.scopes[:len(env.scopes)-1]
	}
}

// Depth is the number of live scopes, global included.
func (env *Environment) Depth() int { return len(env.scopes) }

// Define creates (or overwrites) a binding in the current scope.
func (env *Environment) Define(name string, v Value) {
	env.scopes[len(env.scopes)-1][name] = copyValue(v)
}

// Get reads a binding, innermost scope first, returning a structural copy.
func (env *Environment) Get(name string) (Value, *RuntimeError) {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if v, ok := env.scopes[i][name]; ok {
			return copyValue(v), nil
		}
	}
	return Value{}, errUndefinedVariable(name)
}

// Set mutates an existing binding found through the scope chain; an
// undeclared name is a fault, never an implicit declaration.
func (env *Environment) Set(name string, v Value) *RuntimeError {
	for i := len(env.scopes) - 1; i >= 0; i-- {
		if _, ok := env.scopes[i][name]; ok {
			env.scopes[i][name] = copyValue(v)
			return nil
		}
	}
	return errAssignmentToUndefined(name)
}

// -----------------------------
// Interpreter
// -----------------------------

// maxCallDepth bounds recursion so runaway programs fault cleanly instead of
// exhausting the host stack.
const maxCallDepth = 2048

// Interpreter executes statement sequences. Out receives the output of the
// print built-ins (defaults to stdout).
type Interpreter struct {
	env        *Environment
	inFunction bool
	depth      int
	Out        io.Writer
}

func NewInterpreter() *Interpreter {
	return &Interpreter{env: NewEnv(), Out: os.Stdout}
}

// Env exposes the environment, mainly so callers can observe scope depth.
func (i *Interpreter) Env() *Environment { return i.env }

// Execute runs the program to completion or to its first fault. An early
// return unwinding all the way out of the statement list is itself a fault.
func (i *Interpreter) Execute(stmts []Stmt) error {
	for _, s := range stmts {
		res := i.execStmt(s)
		switch res.status {
		case execFault:
			return res.err
		case execReturn:
			return errReturnOutsideFunction()
		}
	}
	return nil
}
