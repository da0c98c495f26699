// parser_test.go
package remylang

import (
	"reflect"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) []Stmt {
	t.Helper()
	stmts, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return stmts
}

func parseExprOf(t *testing.T, src string) Expr {
	t.Helper()
	stmts := parse(t, src)
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("want expression statement, got %T", stmts[0])
	}
	return es.Expr
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}

func Test_Parser_Precedence_MulBindsTighter(t *testing.T) {
	expr := parseExprOf(t, "1 + 2 * 3;")
	add, ok := expr.(*BinaryExpr)
	if !ok || add.Op != OpAdd {
		t.Fatalf("want addition at the root, got %#v", expr)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != OpMul {
		t.Fatalf("want multiplication as the right child, got %#v", add.Right)
	}
}

func Test_Parser_Pow_RightAssociative(t *testing.T) {
	expr := parseExprOf(t, "2 ** 3 ** 2;")
	outer, ok := expr.(*BinaryExpr)
	if !ok || outer.Op != OpPow {
		t.Fatalf("want ** at the root, got %#v", expr)
	}
	if _, ok := outer.Left.(*NumberLit); !ok {
		t.Fatalf("left of ** should be the literal 2, got %#v", outer.Left)
	}
	inner, ok := outer.Right.(*BinaryExpr)
	if !ok || inner.Op != OpPow {
		t.Fatalf("want nested ** on the right, got %#v", outer.Right)
	}
}

func Test_Parser_Sub_LeftAssociative(t *testing.T) {
	expr := parseExprOf(t, "1 - 2 - 3;")
	outer, ok := expr.(*BinaryExpr)
	if !ok || outer.Op != OpSub {
		t.Fatalf("want - at the root, got %#v", expr)
	}
	inner, ok := outer.Left.(*BinaryExpr)
	if !ok || inner.Op != OpSub {
		t.Fatalf("want (1-2) as the left child, got %#v", outer.Left)
	}
}

func Test_Parser_NestedUnary(t *testing.T) {
	expr := parseExprOf(t, "--1;")
	outer, ok := expr.(*UnaryExpr)
	if !ok || outer.Op != OpNeg {
		t.Fatalf("want unary minus, got %#v", expr)
	}
	if _, ok := outer.Right.(*UnaryExpr); !ok {
		t.Fatalf("double negation should nest, got %#v", outer.Right)
	}
}

func Test_Parser_SuffixChain(t *testing.T) {
	expr := parseExprOf(t, "f(x)[0](y);")
	call, ok := expr.(*CallExpr)
	if !ok {
		t.Fatalf("outermost should be a call, got %#v", expr)
	}
	idx, ok := call.Callee.(*IndexExpr)
	if !ok {
		t.Fatalf("callee should be an index, got %#v", call.Callee)
	}
	if _, ok := idx.Array.(*CallExpr); !ok {
		t.Fatalf("index base should be the inner call, got %#v", idx.Array)
	}
}

func Test_Parser_LetStatement(t *testing.T) {
	stmts := parse(t, "Int nb = 42;")
	let, ok := stmts[0].(*LetStmt)
	if !ok {
		t.Fatalf("want let, got %T", stmts[0])
	}
	if let.Name != "nb" || !let.DeclType.Equal(IntType) {
		t.Fatalf("unexpected let: %#v", let)
	}
	if let.Value.(*NumberLit).Value != 42 {
		t.Fatalf("unexpected initializer: %#v", let.Value)
	}
}

func Test_Parser_TypeTokensStartDeclarations(t *testing.T) {
	cases := []struct {
		src  string
		want Type
	}{
		{`Int a = 1;`, IntType},
		{`String a = "s";`, StringType},
		{`Char a = 'c';`, CharType},
		{`Bool a = True;`, BoolType},
		{`Array<Int> a = [1];`, ArrayType(IntType)},
	}
	for _, tc := range cases {
		stmts := parse(t, tc.src)
		let, ok := stmts[0].(*LetStmt)
		if !ok {
			t.Fatalf("%s: want let, got %T", tc.src, stmts[0])
		}
		if !let.DeclType.Equal(tc.want) {
			t.Fatalf("%s: got type %s", tc.src, let.DeclType)
		}
	}
}

func Test_Parser_ArrayType(t *testing.T) {
	stmts := parse(t, "Array<Int> a = [1, 2, 3];")
	let := stmts[0].(*LetStmt)
	if !let.DeclType.Equal(ArrayType(IntType)) {
		t.Fatalf("want Array<Int>, got %s", let.DeclType)
	}
	arr := let.Value.(*ArrayLit)
	if len(arr.Elems) != 3 {
		t.Fatalf("want 3 elements, got %d", len(arr.Elems))
	}
}

func Test_Parser_NestedArrayType(t *testing.T) {
	stmts := parse(t, "Array<Array<Int>> m = [[1], [2]];")
	let := stmts[0].(*LetStmt)
	if !let.DeclType.Equal(ArrayType(ArrayType(IntType))) {
		t.Fatalf("want Array<Array<Int>>, got %s", let.DeclType)
	}
}

func Test_Parser_EmptyArrayLiteral(t *testing.T) {
	expr := parseExprOf(t, "[];")
	if arr := expr.(*ArrayLit); len(arr.Elems) != 0 {
		t.Fatalf("want empty array literal, got %#v", arr)
	}
}

func Test_Parser_Assignment_VsExpression(t *testing.T) {
	stmts := parse(t, "x = 5; x;")
	if _, ok := stmts[0].(*AssignStmt); !ok {
		t.Fatalf("want assignment, got %T", stmts[0])
	}
	if _, ok := stmts[1].(*ExprStmt); !ok {
		t.Fatalf("want expression statement, got %T", stmts[1])
	}
}

func Test_Parser_IfElseIfChain(t *testing.T) {
	stmts := parse(t, `
if (True) { 1; } else if (False) { 2; } else { 3; }
`)
	top, ok := stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("want if, got %T", stmts[0])
	}
	nested, ok := top.Else.(*IfStmt)
	if !ok {
		t.Fatalf("else-if should nest a conditional, got %T", top.Else)
	}
	if _, ok := nested.Else.(*BlockStmt); !ok {
		t.Fatalf("final else should be a block, got %T", nested.Else)
	}
}

func Test_Parser_FunctionDeclaration(t *testing.T) {
	stmts := parse(t, "func Add(Int a, Int b) -> Int { return a + b; }")
	fn, ok := stmts[0].(*FuncDecl)
	if !ok {
		t.Fatalf("want function declaration, got %T", stmts[0])
	}
	wantParams := []Param{{Name: "a", Type: IntType}, {Name: "b", Type: IntType}}
	if !reflect.DeepEqual(fn.Params, wantParams) {
		t.Fatalf("unexpected params: %#v", fn.Params)
	}
	if fn.ReturnType == nil || !fn.ReturnType.Equal(IntType) {
		t.Fatalf("want -> Int, got %v", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(fn.Body.Stmts))
	}
}

func Test_Parser_FunctionDeclaration_NoReturnType(t *testing.T) {
	stmts := parse(t, "func Hello() { println(1); }")
	fn := stmts[0].(*FuncDecl)
	if fn.ReturnType != nil {
		t.Fatalf("want nil return type, got %v", fn.ReturnType)
	}
}

func Test_Parser_BareReturn(t *testing.T) {
	stmts := parse(t, "func f() { return; }")
	fn := stmts[0].(*FuncDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("bare return should carry no value, got %#v", ret.Value)
	}
}

func Test_Parser_MissingSemicolon_NamesEOF(t *testing.T) {
	pe := parseErr(t, "Int x = 5")
	if pe.Kind != ParseUnexpectedEOF {
		t.Fatalf("want unexpected-EOF kind, got %d", pe.Kind)
	}
	if !strings.Contains(pe.Msg, "';'") || !strings.Contains(pe.Msg, "end of file") {
		t.Fatalf("message should name ';' expected and end of file found: %s", pe.Msg)
	}
}

func Test_Parser_ExpectedExpression(t *testing.T) {
	pe := parseErr(t, "Int x = ;")
	if pe.Kind != ParseExpectedExpression {
		t.Fatalf("want expected-expression kind, got %d: %s", pe.Kind, pe.Msg)
	}
}

func Test_Parser_FirstErrorWins(t *testing.T) {
	// Both statements are broken; only the first is reported.
	pe := parseErr(t, "Int = 1; Bool = 2;")
	if pe.Line != 1 || !strings.Contains(pe.Msg, "variable name") {
		t.Fatalf("unexpected first error: %v", pe)
	}
}

func Test_Parser_ErrorPosition(t *testing.T) {
	pe := parseErr(t, "Int x = 5\nInt")
	// The declaration keyword on line 2 is the offending token.
	if pe.Line != 2 {
		t.Fatalf("want error on line 2, got %d (%s)", pe.Line, pe.Msg)
	}
}

func Test_Parser_IsIncomplete(t *testing.T) {
	_, err := ParseSource("func f() {")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsIncomplete(err) {
		t.Fatalf("a dangling block should look incomplete: %v", err)
	}
	_, err = ParseSource("Int = 1;")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("a mid-stream error is not incomplete: %v", err)
	}
}
