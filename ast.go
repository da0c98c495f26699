// ast.go: syntax tree and type model for RemyLang
//
// Expressions and statements are closed sum types: one struct per variant,
// sealed by an unexported marker method, dispatched with exhaustive type
// switches in the checker and interpreter. Nodes are immutable after parsing
// and exclusively owned by their parent.
package remylang

import "strings"

// -----------------------------
// Types
// -----------------------------

// TypeKind enumerates the static types of the language.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeString
	TypeChar
	TypeBool
	TypeArray
	TypeVoid
)

// Type is a static type. Elem is set only for Kind == TypeArray.
// Void is never a legal variable type; it only stands in for an absent
// return annotation.
type Type struct {
	Kind TypeKind
	Elem *Type
}

var (
	IntType    = Type{Kind: TypeInt}
	StringType = Type{Kind: TypeString}
	CharType   = Type{Kind: TypeChar}
	BoolType   = Type{Kind: TypeBool}
	VoidType   = Type{Kind: TypeVoid}
)

// ArrayType builds Array<elem>.
func ArrayType(elem Type) Type {
	e := elem
	return Type{Kind: TypeArray, Elem: &e}
}

// Equal reports structural type equality: array types are equal iff their
// element types are equal.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == TypeArray {
		return t.Elem.Equal(*o.Elem)
	}
	return true
}

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	case TypeChar:
		return "Char"
	case TypeBool:
		return "Bool"
	case TypeArray:
		var b strings.Builder
		b.WriteString("Array<")
		b.WriteString(t.Elem.String())
		b.WriteString(">")
		return b.String()
	case TypeVoid:
		return "Void"
	}
	return "?"
}

// -----------------------------
// Operators
// -----------------------------

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpAnd
	OpOr
)

// precedenceAndAssociativity returns the binding strength (higher binds
// tighter) and whether the operator is left-associative.
func (op BinaryOp) precedenceAndAssociativity() (prec int, leftAssoc bool) {
	switch op {
	case OpOr:
		return 1, true
	case OpAnd:
		return 2, true
	case OpEqual, OpNotEqual:
		return 3, true
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return 4, true
	case OpAdd, OpSub:
		return 5, true
	case OpMul, OpDiv, OpMod:
		return 6, true
	case OpPow:
		// 2**3**2 parses as 2**(3**2)
		return 7, false
	}
	return 0, true
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "**",
	OpEqual: "==", OpNotEqual: "!=",
	OpLess: "<", OpGreater: ">", OpLessEqual: "<=", OpGreaterEqual: ">=",
	OpAnd: "&&", OpOr: "||",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// opName is the operation word used in runtime fault messages.
func (op BinaryOp) opName() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	case OpDiv:
		return "division"
	case OpMod:
		return "modulo"
	case OpPow:
		return "exponentiation"
	case OpAnd:
		return "logical and"
	case OpOr:
		return "logical or"
	default:
		return "comparison"
	}
}

// UnaryOp enumerates unary (prefix) operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota // -
	OpNot                // !
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "!"
}

// -----------------------------
// Expressions
// -----------------------------

// Expr is a sealed expression node.
type Expr interface{ exprNode() }

type NumberLit struct{ Value int64 }

type StringLit struct{ Value string }

type CharLit struct{ Value rune }

type BoolLit struct{ Value bool }

// VarRef is a reference to a named binding.
type VarRef struct{ Name string }

type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

type UnaryExpr struct {
	Op    UnaryOp
	Right Expr
}

// CallExpr applies arguments to a callee expression. The language only
// supports calling by name, but the suffix grammar allows any callee; the
// runtime rejects non-name callees.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

// IndexExpr is array[index].
type IndexExpr struct {
	Array Expr
	Index Expr
}

type ArrayLit struct{ Elems []Expr }

func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*CharLit) exprNode()    {}
func (*BoolLit) exprNode()    {}
func (*VarRef) exprNode()     {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*ArrayLit) exprNode()   {}

// -----------------------------
// Statements
// -----------------------------

// Stmt is a sealed statement node.
type Stmt interface{ stmtNode() }

type ExprStmt struct{ Expr Expr }

// LetStmt declares a new binding in the current scope. DeclType is nil when
// the declaration carries no annotation (not producible by the grammar today,
// but the model allows it).
type LetStmt struct {
	Name     string
	DeclType *Type
	Value    Expr
}

// AssignStmt mutates an existing binding reachable through the scope chain.
type AssignStmt struct {
	Name  string
	Value Expr
}

// BlockStmt introduces a nested scope.
type BlockStmt struct{ Stmts []Stmt }

// IfStmt: Else is nil, a *BlockStmt, or a nested *IfStmt (else-if chain).
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// ReturnStmt: Value is nil for a bare `return;`.
type ReturnStmt struct{ Value Expr }

// Param is a function parameter with its declared type.
type Param struct {
	Name string
	Type Type
}

// FuncDecl: ReturnType nil means Void.
type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType *Type
	Body       *BlockStmt
}

func (*ExprStmt) stmtNode()   {}
func (*LetStmt) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*BlockStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode() {}
func (*FuncDecl) stmtNode()   {}
