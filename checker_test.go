// checker_test.go
package remylang

import (
	"strings"
	"testing"
)

func checkErrs(t *testing.T, src string) []*TypeError {
	t.Helper()
	stmts := parse(t, src)
	return NewChecker().Check(stmts)
}

func checkOK(t *testing.T, src string) {
	t.Helper()
	if errs := checkErrs(t, src); len(errs) != 0 {
		t.Fatalf("expected no type errors, got %d: %v", len(errs), errs)
	}
}

func wantOneErr(t *testing.T, src string, kind TypeErrorKind) *TypeError {
	t.Helper()
	errs := checkErrs(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one type error, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != kind {
		t.Fatalf("wrong error kind: got %d (%s)", errs[0].Kind, errs[0].Msg)
	}
	return errs[0]
}

func Test_Checker_AddMain_NoErrors(t *testing.T) {
	checkOK(t, `
func Add(Int a, Int b) -> Int { return a + b; }
func Main() -> Int { return Add(5, 10); }
`)
}

func Test_Checker_Declarations(t *testing.T) {
	checkOK(t, `
Int x = 42;
String s = "hi";
Char c = 'y';
Bool b = True;
Array<Int> a = [1, 2, 3];
x = x + 1;
`)
}

func Test_Checker_DeclarationTypeMismatch(t *testing.T) {
	te := wantOneErr(t, `Int x = "hi";`, ErrTypeMismatch)
	if !strings.Contains(te.Msg, "Int") || !strings.Contains(te.Msg, "String") {
		t.Fatalf("message should name both types: %s", te.Msg)
	}
}

func Test_Checker_UndefinedVariable(t *testing.T) {
	wantOneErr(t, "Int x = y;", ErrUndefinedVariable)
}

func Test_Checker_AssignmentToUndefined(t *testing.T) {
	wantOneErr(t, "x = 5;", ErrUndefinedVariable)
}

func Test_Checker_AssignmentToFunction(t *testing.T) {
	wantOneErr(t, `
func f() { return; }
f = 1;
`, ErrCannotAssignToFunction)
}

func Test_Checker_AssignmentTypeMismatch(t *testing.T) {
	wantOneErr(t, `
Int x = 1;
x = "no";
`, ErrTypeMismatch)
}

func Test_Checker_NoCoercion_MixedArithmetic(t *testing.T) {
	wantOneErr(t, `Int x = 1 + "one";`, ErrTypeMismatch)
}

func Test_Checker_ConditionMustBeBool(t *testing.T) {
	wantOneErr(t, "if (1) { 2; }", ErrTypeMismatch)
}

// A binary expression's checked type is its operand type for every operator,
// comparisons included. So `a == b` over Ints checks as Int, and using it as
// an if condition is a type error even though the runtime would produce a
// Bool. Longstanding behavior, kept as-is.
func Test_Checker_ComparisonTypesAsOperand(t *testing.T) {
	wantOneErr(t, `
Int a = 1;
Int b = 2;
if (a == b) { 1; }
`, ErrTypeMismatch)

	checkOK(t, `
Bool p = True;
Bool q = False;
if (p && q) { 1; }
`)
}

func Test_Checker_ReturnTypeMismatch(t *testing.T) {
	wantOneErr(t, `func f() -> Int { return "no"; }`, ErrReturnTypeMismatch)
}

func Test_Checker_ImplicitVoidReturn(t *testing.T) {
	checkOK(t, "func f() { return; }")
	wantOneErr(t, "func f() { return 1; }", ErrReturnTypeMismatch)
}

func Test_Checker_ReturnOutsideFunction(t *testing.T) {
	wantOneErr(t, "return 1;", ErrReturnOutsideFunction)
}

func Test_Checker_Recursion_SelfCall(t *testing.T) {
	checkOK(t, `
func fact(Int n, Bool stop) -> Int {
	if (stop) { return 1; }
	return n * fact(n - 1, stop);
}
`)
}

func Test_Checker_ArgumentCountMismatch(t *testing.T) {
	wantOneErr(t, `
func Add(Int a, Int b) -> Int { return a + b; }
Int x = Add(1);
`, ErrArgumentCountMismatch)
}

func Test_Checker_ArgumentTypeMismatch(t *testing.T) {
	te := wantOneErr(t, `
func Add(Int a, Int b) -> Int { return a + b; }
Int x = Add(1, "two");
`, ErrArgumentTypeMismatch)
	if !strings.Contains(te.Msg, "argument 2") {
		t.Fatalf("message should name the argument position: %s", te.Msg)
	}
}

func Test_Checker_NotCallable(t *testing.T) {
	wantOneErr(t, `
Int x = 1;
x(2);
`, ErrNotCallable)
}

func Test_Checker_FunctionAsValue(t *testing.T) {
	wantOneErr(t, `
func f() { return; }
Int x = f;
`, ErrInvalidOperand)
}

func Test_Checker_EmptyArrayLiteral(t *testing.T) {
	wantOneErr(t, "Array<Int> a = [];", ErrInvalidOperand)
}

func Test_Checker_HeterogeneousArrayLiteral(t *testing.T) {
	wantOneErr(t, `Array<Int> a = [1, "two"];`, ErrTypeMismatch)
}

func Test_Checker_ArrayElementTypesExact(t *testing.T) {
	wantOneErr(t, "Array<Bool> a = [1, 2];", ErrTypeMismatch)
	checkOK(t, "Array<Array<Int>> m = [[1], [2, 3]];")
}

func Test_Checker_IndexingRules(t *testing.T) {
	checkOK(t, `
Array<Int> a = [1, 2, 3];
Int x = a[0];
`)
	wantOneErr(t, `
Int x = 1;
Int y = x[0];
`, ErrInvalidOperand)
	wantOneErr(t, `
Array<Int> a = [1];
Int x = a[True];
`, ErrTypeMismatch)
}

func Test_Checker_Builtins_AreVariadicVoid(t *testing.T) {
	checkOK(t, `
println("hi", 1, True);
print(42);
`)
}

func Test_Checker_Shadowing(t *testing.T) {
	checkOK(t, `
Int x = 1;
{
	String x = "inner";
	String y = x + "!";
}
x = x + 1;
`)
}

func Test_Checker_BlockScopeDiscarded(t *testing.T) {
	wantOneErr(t, `
{
	Int inner = 1;
}
inner = 2;
`, ErrUndefinedVariable)
}

func Test_Checker_CollectsMultipleErrors(t *testing.T) {
	errs := checkErrs(t, `
Int a = "one";
Bool b = 2;
c = 3;
`)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func Test_Checker_NestedFunctionRestoresReturnType(t *testing.T) {
	checkOK(t, `
func outer() -> Int {
	func inner() -> String { return "s"; }
	return 1;
}
`)
}
