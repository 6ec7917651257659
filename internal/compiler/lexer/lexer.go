package lexer

import "github.com/seglang/segc/internal/compiler/token"

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line int // current line number (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character.
// It handles EOF and tracks the line number for diagnostics.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line

	switch l.ch {
	case '/':
		if l.peekChar() == '/' {
			l.readComment()
			return l.NextToken()
		}
		return l.makeToken(token.TokenSlash, startLine)
	case '=':
		if l.peekChar() == '=' {
			return l.makeTwoCharToken(token.TokenEq, startLine)
		}
		return l.makeToken(token.TokenAssign, startLine)
	case '!':
		if l.peekChar() == '=' {
			return l.makeTwoCharToken(token.TokenNeq, startLine)
		}
		return l.makeToken(token.TokenNot, startLine)
	case '<':
		if l.peekChar() == '=' {
			return l.makeTwoCharToken(token.TokenLeq, startLine)
		}
		return l.makeToken(token.TokenLt, startLine)
	case '>':
		if l.peekChar() == '=' {
			return l.makeTwoCharToken(token.TokenGeq, startLine)
		}
		return l.makeToken(token.TokenGt, startLine)
	case '&':
		if l.peekChar() == '&' {
			return l.makeTwoCharToken(token.TokenAnd, startLine)
		}
		return l.makeToken(token.TokenIllegal, startLine)
	case '|':
		if l.peekChar() == '|' {
			return l.makeTwoCharToken(token.TokenOr, startLine)
		}
		return l.makeToken(token.TokenIllegal, startLine)
	case '^':
		return l.makeToken(token.TokenXor, startLine)
	case '+':
		return l.makeToken(token.TokenPlus, startLine)
	case '-':
		return l.makeToken(token.TokenMinus, startLine)
	case '*':
		return l.makeToken(token.TokenAsterisk, startLine)
	case ';':
		return l.makeToken(token.TokenSemicolon, startLine)
	case '(':
		return l.makeToken(token.TokenLParen, startLine)
	case ')':
		return l.makeToken(token.TokenRParen, startLine)
	case '{':
		return l.makeToken(token.TokenLBrace, startLine)
	case '}':
		return l.makeToken(token.TokenRBrace, startLine)
	case '\'':
		return l.readCharLiteral(startLine)
	case '"':
		return l.readString(startLine)
	case 0:
		return token.Token{Type: token.TokenEOF, Literal: "", Line: startLine}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return token.Token{Type: lookupIdent(ident), Literal: ident, Line: startLine}
		} else if isDigit(l.ch) {
			return l.readNumber(startLine)
		}
		return l.makeToken(token.TokenIllegal, startLine)
	}
}

// makeToken builds a single character token and consumes the character.
func (l *Lexer) makeToken(tokenType token.TokenType, line int) token.Token {
	tok := token.Token{Type: tokenType, Literal: string(l.ch), Line: line}
	l.readChar()
	return tok
}

// makeTwoCharToken builds a token from the current character and the next one.
func (l *Lexer) makeTwoCharToken(tokenType token.TokenType, line int) token.Token {
	ch := l.ch
	l.readChar()
	literal := string(ch) + string(l.ch)
	l.readChar()
	return token.Token{Type: tokenType, Literal: literal, Line: line}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans an integer or floating point literal. Whether the literal
// is int or float is decided later by the parser from the presence of a '.'.
func (l *Lexer) readNumber(startLine int) token.Token {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return token.Token{Type: token.TokenNumber, Literal: l.input[start:l.position], Line: startLine}
}

// readCharLiteral scans 'c'. A malformed literal (missing closing quote or
// more than one character) yields an ILLEGAL token for the parser to reject.
func (l *Lexer) readCharLiteral(startLine int) token.Token {
	l.readChar() // Consume opening '
	if l.ch == 0 || l.ch == '\'' {
		return l.makeToken(token.TokenIllegal, startLine)
	}
	ch := l.ch
	l.readChar()
	if l.ch != '\'' {
		return l.makeToken(token.TokenIllegal, startLine)
	}
	l.readChar() // Consume closing '
	return token.Token{Type: token.TokenCharLiteral, Literal: string(ch), Line: startLine}
}

// readString scans "...". An unterminated string yields an ILLEGAL token.
func (l *Lexer) readString(startLine int) token.Token {
	start := l.position + 1 // Skip opening "
	l.readChar()            // Consume opening "

	for l.ch != '"' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	if l.ch != '"' {
		return token.Token{Type: token.TokenIllegal, Literal: l.input[start:l.position], Line: startLine}
	}

	lit := l.input[start:l.position]
	l.readChar() // Consume closing "
	return token.Token{Type: token.TokenStringLiteral, Literal: lit, Line: startLine}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]token.TokenType{
	"int":    token.TokenIntType,
	"float":  token.TokenFloatType,
	"bool":   token.TokenBoolType,
	"char":   token.TokenCharType,
	"string": token.TokenStringType,
	"if":     token.TokenIf,
	"else":   token.TokenElse,
	"true":   token.TokenBoolLiteral,
	"false":  token.TokenBoolLiteral,
}

// lookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or token.TokenIdent if it's not a keyword.
func lookupIdent(ident string) token.TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
