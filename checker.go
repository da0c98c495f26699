// checker.go: scope-aware static type checker
//
// The checker walks the statement sequence against a symbol-table scope
// stack. Unlike the parser it does not stop at the first problem: each
// top-level statement is checked even when an earlier sibling failed, and
// the whole batch of errors comes back at once.
//
// Typing is exact equality, no coercion: Int never widens, Array<Int> and
// Array<Bool> are distinct. A binary expression's type is its operand type
// for every operator, including comparisons and logic; comparisons do not
// force Bool. That matches the executed behavior the language has always
// had, surprising as it reads.
package remylang

import "fmt"

// TypeErrorKind classifies type errors.
type TypeErrorKind int

const (
	ErrUndefinedVariable TypeErrorKind = iota
	ErrTypeMismatch
	ErrInvalidOperand
	ErrReturnTypeMismatch
	ErrReturnOutsideFunction
	ErrCannotAssignToFunction
	ErrArgumentCountMismatch
	ErrArgumentTypeMismatch
	ErrNotCallable
	ErrInvalidCallTarget
)

// TypeError is one diagnostic from the checker.
type TypeError struct {
	Kind TypeErrorKind
	Msg  string
}

func (e *TypeError) Error() string { return "Type error: " + e.Msg }

func typeErrf(kind TypeErrorKind, format string, args ...interface{}) *TypeError {
	return &TypeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// -----------------------------
// Symbol table
// -----------------------------

type symbolKind int

const (
	symVariable symbolKind = iota
	symFunction
)

type symbol struct {
	kind   symbolKind
	typ    Type   // variable type
	params []Type // function parameter types
	ret    Type   // function return type
}

// symbolTable is a stack of scopes; lookup walks innermost to outermost.
// Shadowing across scopes is permitted; redefining within one scope
// overwrites.
type symbolTable struct {
	scopes []map[string]symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{scopes: []map[string]symbol{{}}}
}

func (st *symbolTable) pushScope() {
	st.scopes = append(st.scopes, map[string]symbol{})
}

// popScope never removes the global scope.
func (st *symbolTable) popScope() {
	if len(st.scopes) > 1 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

func (st *symbolTable) define(name string, sym symbol) {
	st.scopes[len(st.scopes)-1][name] = sym
}

func (st *symbolTable) lookup(name string) (symbol, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i][name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}

// -----------------------------
// Checker
// -----------------------------

// Checker validates a statement sequence. A single Checker may be reused
// across calls (the REPL does); declarations accumulate in its global scope
// while the error list resets per Check call.
type Checker struct {
	symbols *symbolTable
	retType *Type // nil while outside any function body
	errors  []*TypeError
}

func NewChecker() *Checker {
	return &Checker{symbols: newSymbolTable()}
}

// Check walks the program and returns every type error found, or nil when
// the program is well typed. Checking continues past a failing top-level
// statement; within one statement the first error wins.
func (c *Checker) Check(stmts []Stmt) []*TypeError {
	c.errors = nil
	for _, s := range stmts {
		if err := c.checkStmt(s); err != nil {
			c.errors = append(c.errors, err)
		}
	}
	return c.errors
}

func (c *Checker) checkStmt(stmt Stmt) *TypeError {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := c.inferExpr(s.Expr)
		return err

	case *LetStmt:
		valueType, err := c.inferExpr(s.Value)
		if err != nil {
			return err
		}
		if s.DeclType != nil && !s.DeclType.Equal(valueType) {
			return typeErrf(ErrTypeMismatch, "mismatched types: expected %s, found %s", s.DeclType, valueType)
		}
		c.symbols.define(s.Name, symbol{kind: symVariable, typ: valueType})
		return nil

	case *AssignStmt:
		sym, ok := c.symbols.lookup(s.Name)
		if !ok {
			return typeErrf(ErrUndefinedVariable, "undefined variable '%s'", s.Name)
		}
		if sym.kind == symFunction {
			return typeErrf(ErrCannotAssignToFunction, "cannot assign to function '%s'", s.Name)
		}
		valueType, err := c.inferExpr(s.Value)
		if err != nil {
			return err
		}
		if !sym.typ.Equal(valueType) {
			return typeErrf(ErrTypeMismatch, "mismatched types: expected %s, found %s", sym.typ, valueType)
		}
		return nil

	case *BlockStmt:
		c.symbols.pushScope()
		defer c.symbols.popScope()
		for _, inner := range s.Stmts {
			if err := c.checkStmt(inner); err != nil {
				return err
			}
		}
		return nil

	case *IfStmt:
		condType, err := c.inferExpr(s.Cond)
		if err != nil {
			return err
		}
		if !condType.Equal(BoolType) {
			return typeErrf(ErrTypeMismatch, "mismatched types: expected Bool, found %s", condType)
		}
		if err := c.checkStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return c.checkStmt(s.Else)
		}
		return nil

	case *ReturnStmt:
		retType := VoidType
		if s.Value != nil {
			t, err := c.inferExpr(s.Value)
			if err != nil {
				return err
			}
			retType = t
		}
		if c.retType == nil {
			return typeErrf(ErrReturnOutsideFunction, "return statement outside of function")
		}
		if !c.retType.Equal(retType) {
			return typeErrf(ErrReturnTypeMismatch, "return type mismatch: expected %s, found %s", c.retType, retType)
		}
		return nil

	case *FuncDecl:
		// Register the signature in the enclosing scope before checking
		// the body so the function can call itself.
		paramTypes := make([]Type, 0, len(s.Params))
		for _, p := range s.Params {
			paramTypes = append(paramTypes, p.Type)
		}
		ret := VoidType
		if s.ReturnType != nil {
			ret = *s.ReturnType
		}
		c.symbols.define(s.Name, symbol{kind: symFunction, params: paramTypes, ret: ret})

		c.symbols.pushScope()
		saved := c.retType
		c.retType = &ret
		defer func() {
			c.retType = saved
			c.symbols.popScope()
		}()

		for _, p := range s.Params {
			c.symbols.define(p.Name, symbol{kind: symVariable, typ: p.Type})
		}
		return c.checkStmt(s.Body)
	}
	return nil
}

// -----------------------------
// Expression inference
// -----------------------------

func (c *Checker) inferExpr(expr Expr) (Type, *TypeError) {
	switch e := expr.(type) {
	case *NumberLit:
		return IntType, nil
	case *StringLit:
		return StringType, nil
	case *CharLit:
		return CharType, nil
	case *BoolLit:
		return BoolType, nil

	case *VarRef:
		sym, ok := c.symbols.lookup(e.Name)
		if !ok {
			return Type{}, typeErrf(ErrUndefinedVariable, "undefined variable '%s'", e.Name)
		}
		if sym.kind == symFunction {
			return Type{}, typeErrf(ErrInvalidOperand, "cannot use function '%s' as a value", e.Name)
		}
		return sym.typ, nil

	case *BinaryExpr:
		leftType, err := c.inferExpr(e.Left)
		if err != nil {
			return Type{}, err
		}
		rightType, err := c.inferExpr(e.Right)
		if err != nil {
			return Type{}, err
		}
		if !leftType.Equal(rightType) {
			return Type{}, typeErrf(ErrTypeMismatch, "mismatched types: expected %s, found %s", leftType, rightType)
		}
		return leftType, nil

	case *UnaryExpr:
		operand, err := c.inferExpr(e.Right)
		if err != nil {
			return Type{}, err
		}
		if e.Op == OpNeg {
			if !operand.Equal(IntType) {
				return Type{}, typeErrf(ErrInvalidOperand, "unary '-' requires Int, found %s", operand)
			}
			return IntType, nil
		}
		// '!' accepts any value via truthiness and yields Bool.
		return BoolType, nil

	case *IndexExpr:
		baseType, err := c.inferExpr(e.Array)
		if err != nil {
			return Type{}, err
		}
		if baseType.Kind != TypeArray {
			return Type{}, typeErrf(ErrInvalidOperand, "cannot index into value of type %s", baseType)
		}
		indexType, err := c.inferExpr(e.Index)
		if err != nil {
			return Type{}, err
		}
		if !indexType.Equal(IntType) {
			return Type{}, typeErrf(ErrTypeMismatch, "mismatched types: expected Int, found %s", indexType)
		}
		return *baseType.Elem, nil

	case *ArrayLit:
		if len(e.Elems) == 0 {
			return Type{}, typeErrf(ErrInvalidOperand, "cannot infer the type of an empty array literal")
		}
		elemType, err := c.inferExpr(e.Elems[0])
		if err != nil {
			return Type{}, err
		}
		for _, elem := range e.Elems[1:] {
			t, err := c.inferExpr(elem)
			if err != nil {
				return Type{}, err
			}
			if !elemType.Equal(t) {
				return Type{}, typeErrf(ErrTypeMismatch, "mismatched types: expected %s, found %s", elemType, t)
			}
		}
		return ArrayType(elemType), nil

	case *CallExpr:
		return c.inferCall(e)
	}
	return Type{}, typeErrf(ErrInvalidOperand, "unsupported expression")
}

func (c *Checker) inferCall(call *CallExpr) (Type, *TypeError) {
	name, ok := call.Callee.(*VarRef)
	if !ok {
		return Type{}, typeErrf(ErrInvalidCallTarget, "functions can only be called by name")
	}

	// Built-ins are variadic over any argument types and produce Void.
	if IsBuiltin(name.Name) {
		for _, arg := range call.Args {
			if _, err := c.inferExpr(arg); err != nil {
				return Type{}, err
			}
		}
		return VoidType, nil
	}

	sym, found := c.symbols.lookup(name.Name)
	if !found {
		return Type{}, typeErrf(ErrUndefinedVariable, "undefined variable '%s'", name.Name)
	}
	if sym.kind != symFunction {
		return Type{}, typeErrf(ErrNotCallable, "'%s' is not a function", name.Name)
	}
	if len(sym.params) != len(call.Args) {
		return Type{}, typeErrf(ErrArgumentCountMismatch,
			"function '%s' expects %d arguments, but %d were provided", name.Name, len(sym.params), len(call.Args))
	}
	for i, arg := range call.Args {
		argType, err := c.inferExpr(arg)
		if err != nil {
			return Type{}, err
		}
		if !argType.Equal(sym.params[i]) {
			return Type{}, typeErrf(ErrArgumentTypeMismatch,
				"argument %d to '%s': expected %s, found %s", i+1, name.Name, sym.params[i], argType)
		}
	}
	return sym.ret, nil
}
