// parser.go: recursive-descent statement parser with Pratt expression parsing
//
// The parser consumes the materialized token list produced by lexer.Scan and
// builds the statement sequence. Syntax errors are fail-fast: the first error
// halts parsing and is returned; there is no recovery and no partial AST.
//
// Expression parsing is precedence climbing: parse a prefix term, then keep
// consuming binary operators whose precedence is at least the current
// minimum, recursing into the right operand with minimum = prec+1 for
// left-associative operators and minimum = prec for the right-associative
// `**`. Call and index suffixes chain after any primary term.
package remylang

import "fmt"

// ParseErrorKind classifies syntax errors.
type ParseErrorKind int

const (
	ParseUnexpectedToken ParseErrorKind = iota
	ParseUnexpectedEOF
	ParseExpectedExpression
	ParseInvalidSyntax
)

// ParseError is the first syntax error encountered. Line is 1-based and Col
// is 0-based, matching Token coordinates.
type ParseError struct {
	Kind ParseErrorKind
	Line int
	Col  int
	Msg  string

	// atEOF marks errors raised at the end-of-file token; the REPL uses it
	// to keep reading continuation lines.
	atEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a syntax error caused by the input
// ending too early, so that more input could still make it parse.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.atEOF
}

// Parser turns a token list into a statement sequence.
type Parser struct {
	tokens []Token
	cur    int
}

// NewParser creates a parser over a token list ending in EOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource lexes and parses src in one step.
func ParseSource(src string) ([]Stmt, error) {
	tokens, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse is the entry point: statements until EOF, or the first syntax error.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// -----------------------------
// Cursor helpers
// -----------------------------

func (p *Parser) peek() Token { return p.tokens[p.cur] }

func (p *Parser) peekNext() Token {
	if p.cur+1 < len(p.tokens) {
		return p.tokens[p.cur+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == EOF }

func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.cur++
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

// match consumes the current token iff it has the given type.
func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails with an
// unexpected-token error describing what was wanted.
func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errUnexpected(what)
}

func (p *Parser) errUnexpected(expected string) *ParseError {
	found := p.peek()
	kind := ParseUnexpectedToken
	if found.Type == EOF {
		kind = ParseUnexpectedEOF
	}
	return &ParseError{
		Kind:  kind,
		Line:  found.Line,
		Col:   found.Col,
		Msg:   fmt.Sprintf("expected %s, found %s", expected, found),
		atEOF: found.Type == EOF,
	}
}

func (p *Parser) errExpectedExpression() *ParseError {
	found := p.peek()
	return &ParseError{
		Kind:  ParseExpectedExpression,
		Line:  found.Line,
		Col:   found.Col,
		Msg:   fmt.Sprintf("expected expression, found %s", found),
		atEOF: found.Type == EOF,
	}
}

// -----------------------------
// Statements
// -----------------------------

func (p *Parser) parseStatement() (Stmt, error) {
	if IsTypeToken(p.peek().Type) {
		return p.parseLetStatement()
	}
	switch p.peek().Type {
	case IF:
		return p.parseIfStatement()
	case RETURN:
		return p.parseReturnStatement()
	case LCURLY:
		return p.parseBlockStatement()
	case FUNC:
		return p.parseFunctionDeclaration()
	case ID:
		if p.peekNext().Type == ASSIGN {
			return p.parseAssignment()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `Type name = expr;`.
func (p *Parser) parseLetStatement() (Stmt, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ID, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'=' after variable name"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &LetStmt{Name: name.Lexeme, DeclType: &typ, Value: value}, nil
}

// parseAssignment parses `name = expr;`.
func (p *Parser) parseAssignment() (Stmt, error) {
	name, err := p.expect(ID, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &AssignStmt{Name: name.Lexeme, Value: value}, nil
}

func (p *Parser) parseExpressionStatement() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

// parseIfStatement parses `if (cond) block (else (block | if-stmt))?`.
// An else-if chain nests a full conditional as the else branch.
func (p *Parser) parseIfStatement() (Stmt, error) {
	if _, err := p.expect(IF, "'if'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LROUND, "'(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RROUND, "')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(ELSE) {
		if p.check(IF) {
			elseBranch, err = p.parseIfStatement()
		} else {
			elseBranch, err = p.parseBlockStatement()
		}
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: elseBranch}, nil
}

// parseReturnStatement parses `return expr? ;`.
func (p *Parser) parseReturnStatement() (Stmt, error) {
	if _, err := p.expect(RETURN, "'return'"); err != nil {
		return nil, err
	}
	var value Expr
	if !p.check(SEMICOLON) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON, "';' after return"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value}, nil
}

// parseBlockStatement parses `{ stmt* }`.
func (p *Parser) parseBlockStatement() (Stmt, error) {
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.check(RCURLY) && !p.isAtEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(RCURLY, "'}' after block"); err != nil {
		return nil, err
	}
	return &BlockStmt{Stmts: stmts}, nil
}

// parseFunctionDeclaration parses `func name(type name, ...) (-> type)? block`.
func (p *Parser) parseFunctionDeclaration() (Stmt, error) {
	if _, err := p.expect(FUNC, "'func'"); err != nil {
		return nil, err
	}
	name, err := p.expect(ID, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LROUND, "'(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RROUND, "')' after parameters"); err != nil {
		return nil, err
	}
	var retType *Type
	if p.match(ARROW) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		retType = &t
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Name:       name.Lexeme,
		Params:     params,
		ReturnType: retType,
		Body:       body.(*BlockStmt),
	}, nil
}

func (p *Parser) parseParameterList() ([]Param, error) {
	var params []Param
	if p.check(RROUND) {
		return params, nil
	}
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(ID, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: name.Lexeme, Type: typ})
		if !p.match(COMMA) {
			break
		}
	}
	return params, nil
}

// parseType parses a type annotation; Array element types use angle
// brackets, `Array<Int>`.
func (p *Parser) parseType() (Type, error) {
	switch p.peek().Type {
	case INT_TYPE:
		p.advance()
		return IntType, nil
	case STRING_TYPE:
		p.advance()
		return StringType, nil
	case CHAR_TYPE:
		p.advance()
		return CharType, nil
	case BOOL_TYPE:
		p.advance()
		return BoolType, nil
	case ARRAY_TYPE:
		p.advance()
		if _, err := p.expect(LESS, "'<' after 'Array'"); err != nil {
			return Type{}, err
		}
		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		if _, err := p.expect(GREATER, "'>' after array element type"); err != nil {
			return Type{}, err
		}
		return ArrayType(elem), nil
	default:
		return Type{}, p.errUnexpected("type (Int, String, Bool, Char, Array)")
	}
}

// -----------------------------
// Expressions
// -----------------------------

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseExpressionWithPrecedence(0)
}

func (p *Parser) parseExpressionWithPrecedence(minPrec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOpFor(p.peek().Type)
		if !ok {
			break
		}
		prec, leftAssoc := op.precedenceAndAssociativity()
		if prec < minPrec {
			break
		}
		p.advance()

		nextMin := prec
		if leftAssoc {
			nextMin = prec + 1
		}
		right, err := p.parseExpressionWithPrecedence(nextMin)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parsePrefix handles unary operators; `--x` and `!!x` are legal and build
// nested unary nodes.
func (p *Parser) parsePrefix() (Expr, error) {
	switch p.peek().Type {
	case MINUS:
		p.advance()
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: OpNeg, Right: right}, nil
	case BANG:
		p.advance()
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: OpNot, Right: right}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	var expr Expr
	switch tok := p.peek(); tok.Type {
	case INTEGER:
		p.advance()
		expr = &NumberLit{Value: tok.Literal.(int64)}
	case STRING:
		p.advance()
		expr = &StringLit{Value: tok.Literal.(string)}
	case CHARACTER:
		p.advance()
		expr = &CharLit{Value: tok.Literal.(rune)}
	case TRUE:
		p.advance()
		expr = &BoolLit{Value: true}
	case FALSE:
		p.advance()
		expr = &BoolLit{Value: false}
	case ID:
		p.advance()
		expr = &VarRef{Name: tok.Lexeme}
	case LSQUARE:
		arr, err := p.parseArrayLiteral()
		if err != nil {
			return nil, err
		}
		return p.parseSuffix(arr)
	case LROUND:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RROUND, "')' after expression"); err != nil {
			return nil, err
		}
		expr = inner
	default:
		return nil, p.errExpectedExpression()
	}
	return p.parseSuffix(expr)
}

// parseSuffix applies call and index suffixes left to right; they chain, so
// f(x)[0](y) is legal.
func (p *Parser) parseSuffix(expr Expr) (Expr, error) {
	for {
		switch p.peek().Type {
		case LROUND:
			p.advance()
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RROUND, "')' after arguments"); err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args}
		case LSQUARE:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RSQUARE, "']' after array index"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Array: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArrayLiteral() (Expr, error) {
	if _, err := p.expect(LSQUARE, "'['"); err != nil {
		return nil, err
	}
	var elems []Expr
	if !p.check(RSQUARE) {
		for {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RSQUARE, "']' after array elements"); err != nil {
		return nil, err
	}
	return &ArrayLit{Elems: elems}, nil
}

func (p *Parser) parseArgumentList() ([]Expr, error) {
	var args []Expr
	if p.check(RROUND) {
		return args, nil
	}
	for {
		a, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.match(COMMA) {
			break
		}
	}
	return args, nil
}

// binaryOpFor maps an operator token to its BinaryOp, if any.
func binaryOpFor(tt TokenType) (BinaryOp, bool) {
	switch tt {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSub, true
	case MULT:
		return OpMul, true
	case POW:
		return OpPow, true
	case DIV:
		return OpDiv, true
	case MOD:
		return OpMod, true
	case EQ:
		return OpEqual, true
	case NEQ:
		return OpNotEqual, true
	case LESS:
		return OpLess, true
	case GREATER:
		return OpGreater, true
	case LESS_EQ:
		return OpLessEqual, true
	case GREATER_EQ:
		return OpGreaterEqual, true
	case AND:
		return OpAnd, true
	case OR:
		return OpOr, true
	}
	return 0, false
}
