// lexer.go — tokenizer for RemyLang.
//
// The lexer walks the source bytes once and produces a finite token stream
// terminated by a single EOF token. It tracks a 1-based line and a 0-based
// column for diagnostics. Comments (// and /* */) are skipped between tokens
// and never produce output.
//
// Malformed input does not stop the scan: an unexpected character, a bare '&'
// or '|', or a broken character literal all become an ILLEGAL token carrying
// the offending character, and the parser decides what to do with it. The two
// exceptions are integer literals that overflow int64 and unterminated string
// literals, both of which abort scanning with a *LexError.
package remylang

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals & identifiers
	ID
	INTEGER
	STRING
	CHARACTER

	// Type keywords
	INT_TYPE
	STRING_TYPE
	CHAR_TYPE
	BOOL_TYPE
	ARRAY_TYPE

	// Keywords
	TRUE
	FALSE
	FUNC
	RETURN
	IF
	ELSE

	// Operators — arithmetic
	PLUS
	MINUS
	MULT
	POW
	DIV
	MOD

	// Operators — comparison
	EQ
	NEQ
	LESS
	GREATER
	LESS_EQ
	GREATER_EQ

	// Operators — logical
	AND
	OR
	BANG

	// Operators — assignment
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	MULT_ASSIGN
	DIV_ASSIGN
	MOD_ASSIGN

	// Delimiters
	LROUND
	RROUND
	LCURLY
	RCURLY
	LSQUARE
	RSQUARE

	// Punctuation
	SEMICOLON
	COMMA
	ARROW
)

var tokenNames = map[TokenType]string{
	EOF:          "end of file",
	ILLEGAL:      "invalid token",
	ID:           "identifier",
	INTEGER:      "number",
	STRING:       "string literal",
	CHARACTER:    "character literal",
	INT_TYPE:     "'Int'",
	STRING_TYPE:  "'String'",
	CHAR_TYPE:    "'Char'",
	BOOL_TYPE:    "'Bool'",
	ARRAY_TYPE:   "'Array'",
	TRUE:         "'True'",
	FALSE:        "'False'",
	FUNC:         "'func'",
	RETURN:       "'return'",
	IF:           "'if'",
	ELSE:         "'else'",
	PLUS:         "'+'",
	MINUS:        "'-'",
	MULT:         "'*'",
	POW:          "'**'",
	DIV:          "'/'",
	MOD:          "'%'",
	EQ:           "'=='",
	NEQ:          "'!='",
	LESS:         "'<'",
	GREATER:      "'>'",
	LESS_EQ:      "'<='",
	GREATER_EQ:   "'>='",
	AND:          "'&&'",
	OR:           "'||'",
	BANG:         "'!'",
	ASSIGN:       "'='",
	PLUS_ASSIGN:  "'+='",
	MINUS_ASSIGN: "'-='",
	MULT_ASSIGN:  "'*='",
	DIV_ASSIGN:   "'/='",
	MOD_ASSIGN:   "'%='",
	LROUND:       "'('",
	RROUND:       "')'",
	LCURLY:       "'{'",
	RCURLY:       "'}'",
	LSQUARE:      "'['",
	RSQUARE:      "']'",
	SEMICOLON:    "';'",
	COMMA:        "','",
	ARROW:        "'->'",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(tt))
}

// Token is a lexical token with optional literal value and source position.
// Line is 1-based; Col is 0-based and points at the token's first character.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INTEGER, string for STRING, rune for CHARACTER/ILLEGAL
	Line    int
	Col     int
}

// String renders the token for diagnostics ("number 42", "';'", ...).
func (t Token) String() string {
	switch t.Type {
	case INTEGER:
		return fmt.Sprintf("number %v", t.Literal)
	case STRING:
		return fmt.Sprintf("string %q", t.Literal)
	case CHARACTER:
		return fmt.Sprintf("character '%c'", t.Literal)
	case ID:
		return fmt.Sprintf("identifier '%s'", t.Lexeme)
	case ILLEGAL:
		return fmt.Sprintf("invalid token '%c'", t.Literal)
	default:
		return t.Type.String()
	}
}

var keywords = map[string]TokenType{
	"Int":    INT_TYPE,
	"String": STRING_TYPE,
	"Char":   CHAR_TYPE,
	"Bool":   BOOL_TYPE,
	"Array":  ARRAY_TYPE,
	"True":   TRUE,
	"False":  FALSE,
	"func":   FUNC,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
}

// IsTypeToken reports whether the token can start a type annotation.
func IsTypeToken(tt TokenType) bool {
	switch tt {
	case INT_TYPE, STRING_TYPE, CHAR_TYPE, BOOL_TYPE, ARRAY_TYPE:
		return true
	}
	return false
}

// LexError aborts scanning; only integer overflow and unterminated strings
// produce one. Everything else degrades to an ILLEGAL token.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans RemyLang source into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// position of the current token's first character
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 0}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// match consumes the next character iff it equals want.
func (l *Lexer) match(want byte) bool {
	if b, ok := l.peek(); ok && b == want {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) makeToken(tt TokenType, lit interface{}) Token {
	return Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// skipBlockComment eats until the matching '*/'. Comments do not nest; an
// unterminated comment simply runs to end of input.
func (l *Lexer) skipBlockComment() {
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '*' {
			if l.match('/') {
				return
			}
		}
	}
}

// scanNumber parses a maximal digit run as a 64-bit signed integer.
// Overflow is a lex-time failure, not a silent wraparound.
func (l *Lexer) scanNumber() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	v, convErr := strconv.ParseInt(lex, 10, 64)
	if convErr != nil {
		return Token{}, l.err(fmt.Sprintf("integer literal out of range: %s", lex))
	}
	return l.makeToken(INTEGER, v), nil
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]* and resolves keywords.
func (l *Lexer) scanIdentifier() Token {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if tt, ok := keywords[lex]; ok {
		return l.makeToken(tt, nil)
	}
	return l.makeToken(ID, lex)
}

// scanString reads a '"'-delimited literal. No escape processing happens
// here: the raw characters up to the closing quote are the payload, and the
// print built-ins substitute \n \t \r \\ at output time.
func (l *Lexer) scanString() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok {
			return Token{}, l.err("string literal was not terminated")
		}
		if b == '"' {
			l.advance()
			lit := l.src[l.start+1 : l.cur-1]
			return l.makeToken(STRING, lit), nil
		}
		l.advance()
	}
}

// scanCharacter reads 'x' with exactly one character between the quotes.
// An empty literal or a missing closing quote yields ILLEGAL carrying '\''.
func (l *Lexer) scanCharacter() Token {
	b, ok := l.peek()
	if !ok || b == '\'' {
		return l.makeToken(ILLEGAL, '\'')
	}
	l.advance()
	if !l.match('\'') {
		return l.makeToken(ILLEGAL, '\'')
	}
	return l.makeToken(CHARACTER, rune(b))
}

// NextToken retrieves the next token from the input. At end of input it
// returns the EOF token; callers must not request tokens past that point.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.makeToken(EOF, nil), nil
	}

	ch, _ := l.advance()

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch):
		return l.scanIdentifier(), nil
	}

	switch ch {
	case '"':
		return l.scanString()
	case '\'':
		return l.scanCharacter(), nil

	case '+':
		if l.match('=') {
			return l.makeToken(PLUS_ASSIGN, nil), nil
		}
		if l.match('+') {
			return l.makeToken(ILLEGAL, '+'), nil
		}
		return l.makeToken(PLUS, nil), nil
	case '-':
		if l.match('>') {
			return l.makeToken(ARROW, nil), nil
		}
		if l.match('=') {
			return l.makeToken(MINUS_ASSIGN, nil), nil
		}
		return l.makeToken(MINUS, nil), nil
	case '*':
		if l.match('*') {
			return l.makeToken(POW, nil), nil
		}
		if l.match('=') {
			return l.makeToken(MULT_ASSIGN, nil), nil
		}
		return l.makeToken(MULT, nil), nil
	case '/':
		if l.match('/') {
			l.skipLineComment()
			return l.NextToken()
		}
		if l.match('*') {
			l.skipBlockComment()
			return l.NextToken()
		}
		if l.match('=') {
			return l.makeToken(DIV_ASSIGN, nil), nil
		}
		return l.makeToken(DIV, nil), nil
	case '%':
		if l.match('=') {
			return l.makeToken(MOD_ASSIGN, nil), nil
		}
		return l.makeToken(MOD, nil), nil

	case '=':
		if l.match('=') {
			return l.makeToken(EQ, nil), nil
		}
		return l.makeToken(ASSIGN, nil), nil
	case '!':
		if l.match('=') {
			return l.makeToken(NEQ, nil), nil
		}
		return l.makeToken(BANG, nil), nil
	case '<':
		if l.match('=') {
			return l.makeToken(LESS_EQ, nil), nil
		}
		return l.makeToken(LESS, nil), nil
	case '>':
		if l.match('=') {
			return l.makeToken(GREATER_EQ, nil), nil
		}
		return l.makeToken(GREATER, nil), nil

	case '&':
		if l.match('&') {
			return l.makeToken(AND, nil), nil
		}
		return l.makeToken(ILLEGAL, '&'), nil
	case '|':
		if l.match('|') {
			return l.makeToken(OR, nil), nil
		}
		return l.makeToken(ILLEGAL, '|'), nil

	case '(':
		return l.makeToken(LROUND, nil), nil
	case ')':
		return l.makeToken(RROUND, nil), nil
	case '{':
		return l.makeToken(LCURLY, nil), nil
	case '}':
		return l.makeToken(RCURLY, nil), nil
	case '[':
		return l.makeToken(LSQUARE, nil), nil
	case ']':
		return l.makeToken(RSQUARE, nil), nil
	case ';':
		return l.makeToken(SEMICOLON, nil), nil
	case ',':
		return l.makeToken(COMMA, nil), nil
	}

	return l.makeToken(ILLEGAL, rune(ch)), nil
}

// Scan tokenizes the entire source and returns the materialized token list,
// terminated by exactly one EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
