package lexer

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/seglang/segc/internal/compiler/token"
)

func firstToken(input string) token.Token {
	return NewLexer(input).NextToken()
}

func TestSingleCharTokens(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
	}{
		{"(", token.TokenLParen},
		{")", token.TokenRParen},
		{"{", token.TokenLBrace},
		{"}", token.TokenRBrace},
		{";", token.TokenSemicolon},
		{"=", token.TokenAssign},
		{"+", token.TokenPlus},
		{"-", token.TokenMinus},
		{"*", token.TokenAsterisk},
		{"/", token.TokenSlash},
		{"^", token.TokenXor},
		{"!", token.TokenNot},
		{"<", token.TokenLt},
		{">", token.TokenGt},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestTwoCharOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
	}{
		{"&&", token.TokenAnd},
		{"||", token.TokenOr},
		{"==", token.TokenEq},
		{"!=", token.TokenNeq},
		{"<=", token.TokenLeq},
		{">=", token.TokenGeq},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
	}{
		{"int", token.TokenIntType},
		{"float", token.TokenFloatType},
		{"bool", token.TokenBoolType},
		{"char", token.TokenCharType},
		{"string", token.TokenStringType},
		{"if", token.TokenIf},
		{"else", token.TokenElse},
		{"true", token.TokenBoolLiteral},
		{"false", token.TokenBoolLiteral},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestIdentifier(t *testing.T) {
	tok := firstToken("foo_bar2")
	be.Equal(t, tok.Type, token.TokenIdent)
	be.Equal(t, tok.Literal, "foo_bar2")
}

func TestNumbers(t *testing.T) {
	tok := firstToken("12345")
	be.Equal(t, tok.Type, token.TokenNumber)
	be.Equal(t, tok.Literal, "12345")

	tok = firstToken("3.14")
	be.Equal(t, tok.Type, token.TokenNumber)
	be.Equal(t, tok.Literal, "3.14")
}

func TestCharLiteral(t *testing.T) {
	tok := firstToken("'a'")
	be.Equal(t, tok.Type, token.TokenCharLiteral)
	be.Equal(t, tok.Literal, "a")
}

func TestMalformedCharLiteral(t *testing.T) {
	// Missing closing quote
	tok := firstToken("'ab'")
	be.Equal(t, tok.Type, token.TokenIllegal)

	// Empty
	tok = firstToken("''")
	be.Equal(t, tok.Type, token.TokenIllegal)
}

func TestStringLiteral(t *testing.T) {
	tok := firstToken(`"hello world"`)
	be.Equal(t, tok.Type, token.TokenStringLiteral)
	be.Equal(t, tok.Literal, "hello world")
}

func TestUnterminatedString(t *testing.T) {
	tok := firstToken(`"hello`)
	be.Equal(t, tok.Type, token.TokenIllegal)
}

func TestLineComments(t *testing.T) {
	l := NewLexer("// a comment\nint")
	tok := l.NextToken()
	be.Equal(t, tok.Type, token.TokenIntType)
	be.Equal(t, tok.Line, 2)
}

func TestDeclarationTokenStream(t *testing.T) {
	input := `int x = 5 + 3;`

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.TokenIntType, "int"},
		{token.TokenIdent, "x"},
		{token.TokenAssign, "="},
		{token.TokenNumber, "5"},
		{token.TokenPlus, "+"},
		{token.TokenNumber, "3"},
		{token.TokenSemicolon, ";"},
		{token.TokenEOF, ""},
	}

	l := NewLexer(input)
	for _, want := range expected {
		tok := l.NextToken()
		be.Equal(t, tok.Type, want.typ)
		be.Equal(t, tok.Literal, want.literal)
	}
}

func TestLineTracking(t *testing.T) {
	input := "int x = 1;\nint y = 2;\n\nif (x > y) {}"

	l := NewLexer(input)
	var lines []int
	for {
		tok := l.NextToken()
		if tok.Type == token.TokenEOF {
			break
		}
		lines = append(lines, tok.Line)
	}

	// Tokens on line 1: int x = 1 ;  line 2: int y = 2 ;  line 4: if ( x > y ) { }
	want := []int{1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 4, 4, 4, 4, 4, 4, 4, 4}
	be.Equal(t, lines, want)
}

func TestIllegalCharacter(t *testing.T) {
	tok := firstToken("@")
	be.Equal(t, tok.Type, token.TokenIllegal)
}

func TestLoneAmpersandAndPipe(t *testing.T) {
	be.Equal(t, firstToken("&").Type, token.TokenIllegal)
	be.Equal(t, firstToken("|").Type, token.TokenIllegal)
}
