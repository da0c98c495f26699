// errors_test.go
package remylang

import (
	"errors"
	"strings"
	"testing"
)

func Test_Errors_ParseError_CaretSnippet(t *testing.T) {
	src := "Int x = 5"
	_, perr := ParseSource(src)
	if perr == nil {
		t.Fatalf("expected parse error")
	}
	wrapped := WrapErrorWithSource(perr, src)
	msg := wrapped.Error()

	if !strings.HasPrefix(msg, "PARSE ERROR at 1:") {
		t.Fatalf("missing header: %q", msg)
	}
	if !strings.Contains(msg, "   1 | Int x = 5") {
		t.Fatalf("missing numbered source line: %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret: %q", msg)
	}
}

func Test_Errors_CaretColumn(t *testing.T) {
	// The missing semicolon is reported at the EOF token, 0-based column 9;
	// the caret renders under 1-based column 10.
	src := "Int x = 5"
	_, perr := ParseSource(src)
	if perr == nil {
		t.Fatalf("expected parse error")
	}
	msg := WrapErrorWithSource(perr, src).Error()
	wantCaret := "     | " + strings.Repeat(" ", 9) + "^"
	if !strings.Contains(msg, wantCaret) {
		t.Fatalf("caret misplaced:\n%s", msg)
	}
}

func Test_Errors_LexError_Rendered(t *testing.T) {
	src := `Int s = "oops`
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatalf("expected lex error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(msg, "LEXICAL ERROR at 1:") {
		t.Fatalf("missing header: %q", msg)
	}
	if !strings.Contains(msg, "not terminated") {
		t.Fatalf("missing message: %q", msg)
	}
}

func Test_Errors_WithName(t *testing.T) {
	src := "Int x = 5"
	_, perr := ParseSource(src)
	msg := WrapErrorWithName(perr, "demo.remy", src).Error()
	if !strings.Contains(msg, "PARSE ERROR in demo.remy at ") {
		t.Fatalf("missing source label: %q", msg)
	}
}

func Test_Errors_PassThrough(t *testing.T) {
	plain := errors.New("unrelated")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("non-phase errors must pass through unchanged, got %v", got)
	}
}

func Test_Errors_Clamping(t *testing.T) {
	// Out-of-range coordinates must not panic the renderer.
	e := &ParseError{Line: 99, Col: 99, Msg: "synthetic"}
	msg := WrapErrorWithSource(e, "one line").Error()
	if !strings.Contains(msg, "synthetic") {
		t.Fatalf("message lost in clamping: %q", msg)
	}
}
