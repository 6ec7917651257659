package token

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenAssign    TokenType = "ASSIGN"    // =
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // /
	TokenXor       TokenType = "XOR"       // ^ (logical xor)
	TokenNot       TokenType = "NOT"       // !

	// Two character operators
	TokenAnd TokenType = "AND" // &&
	TokenOr  TokenType = "OR"  // ||
	TokenEq  TokenType = "EQ"  // ==
	TokenNeq TokenType = "NEQ" // !=
	TokenLeq TokenType = "LEQ" // <=
	TokenGeq TokenType = "GEQ" // >=

	TokenLt TokenType = "LT" // <
	TokenGt TokenType = "GT" // >

	// Type keywords
	TokenIntType    TokenType = "INT"
	TokenFloatType  TokenType = "FLOAT"
	TokenBoolType   TokenType = "BOOL"
	TokenCharType   TokenType = "CHAR"
	TokenStringType TokenType = "STRING"

	// Control flow keywords
	TokenIf   TokenType = "IF"
	TokenElse TokenType = "ELSE"

	// Literals & identifiers
	TokenNumber        TokenType = "NUMBER"         // 42, 3.14
	TokenBoolLiteral   TokenType = "BOOL_LITERAL"   // true, false
	TokenCharLiteral   TokenType = "CHAR_LITERAL"   // 'a'
	TokenStringLiteral TokenType = "STRING_LITERAL" // "..."
	TokenIdent         TokenType = "IDENT"

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

// IsTypeKeyword reports whether the token starts a variable declaration.
func (t Token) IsTypeKeyword() bool {
	switch t.Type {
	case TokenIntType, TokenFloatType, TokenBoolType, TokenCharType, TokenStringType:
		return true
	}
	return false
}
