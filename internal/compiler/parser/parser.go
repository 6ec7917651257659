package parser

import (
	"fmt"
	"strings"

	"github.com/seglang/segc/internal/compiler/ast"
	"github.com/seglang/segc/internal/compiler/lexer"
	"github.com/seglang/segc/internal/compiler/token"
	"github.com/seglang/segc/internal/compiler/types"
)

// Parser consumes the lexer's token stream and builds a typed AST. There is
// no error recovery: the first syntax error aborts the parse and no partial
// AST is returned.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token

	errors   []string
	warnings []string
}

// bailout unwinds the parser on the first fatal error. Recovered in
// ParseProgram; the diagnostic itself lives in p.errors.
type bailout struct{}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	// Populate curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// --- Token handling ---

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

// expect aborts the parse when the current token is not of the wanted type.
func (p *Parser) expect(expected token.TokenType) {
	if p.curTok.Type != expected {
		p.fatalf(p.curTok, "expected %s, got %s", expected, p.curTok.Type)
	}
}

// --- Error/warning handling ---

func (p *Parser) fatalf(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", tok.Line, msg))
	panic(bailout{})
}

func (p *Parser) addWarning(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, fmt.Sprintf("line %d: warning: %s", tok.Line, msg))
}

// Errors returns fatal errors (at most one, since parsing stops there).
func (p *Parser) Errors() []string {
	return p.errors
}

// Warnings returns non-fatal type mismatch and promotion warnings.
func (p *Parser) Warnings() []string {
	return p.warnings
}

// --- Program ---

// ParseProgram parses statements until EOF. On a fatal error it returns nil
// and the diagnostic is available via Errors().
func (p *Parser) ParseProgram() (prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog = nil
		}
	}()

	prog = &ast.Program{}
	for p.curTok.Type != token.TokenEOF {
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curTok.IsTypeKeyword():
		return p.parseVarDecl()
	case p.curTok.Type == token.TokenIf:
		return p.parseIfStatement()
	default:
		p.fatalf(p.curTok, "expected declaration or if statement, got %s", p.curTok.Type)
		return nil
	}
}

// parseVarDecl parses: type_keyword IDENT '=' expression ';'
func (p *Parser) parseVarDecl() ast.Statement {
	declTok := p.curTok
	declType := typeFromKeyword(declTok.Type)
	p.nextToken()

	p.expect(token.TokenIdent)
	name := p.curTok.Literal
	p.nextToken()

	p.expect(token.TokenAssign)
	p.nextToken()

	value := p.parseExpression()

	// Declaration typing: a bool declaration forces a boolean initializer;
	// a boolean initializer assigned to a numeric declaration collapses to
	// int. Anything still mismatched warns and proceeds without inserting
	// conversion code.
	switch {
	case declType == types.Bool:
		value.SetResultType(types.Bool)
	case (declType == types.Int || declType == types.Float) && value.ResultType() == types.Bool:
		value.SetResultType(types.Int)
	}
	if value.ResultType() != declType {
		p.addWarning(p.curTok,
			"type mismatch in declaration of '%s': declared %s, assigned %s; implicit conversion applied",
			name, declType, value.ResultType())
	}

	p.expect(token.TokenSemicolon)
	p.nextToken()

	return &ast.VarDeclStatement{Token: declTok, DeclType: declType, Name: name, Value: value}
}

// parseIfStatement parses: 'if' '(' expression ')' block ('else' (if|block))?
func (p *Parser) parseIfStatement() *ast.IfStatement {
	ifTok := p.curTok
	p.nextToken()

	p.expect(token.TokenLParen)
	p.nextToken()

	cond := p.parseExpression()

	p.expect(token.TokenRParen)
	p.nextToken()

	then := p.parseBlock()

	var elseBlock *ast.BlockStatement
	if p.curTok.Type == token.TokenElse {
		elseTok := p.curTok
		p.nextToken()

		if p.curTok.Type == token.TokenIf {
			// else-if chains nest as an else block holding one if statement
			nested := p.parseIfStatement()
			elseBlock = &ast.BlockStatement{Token: elseTok, Statements: []ast.Statement{nested}}
		} else {
			elseBlock = p.parseBlock()
		}
	}

	return &ast.IfStatement{Token: ifTok, Condition: cond, Then: then, Else: elseBlock}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	p.expect(token.TokenLBrace)
	block := &ast.BlockStatement{Token: p.curTok}
	p.nextToken()

	for p.curTok.Type != token.TokenRBrace {
		if p.curTok.Type == token.TokenEOF {
			p.fatalf(p.curTok, "expected %s, got %s", token.TokenRBrace, token.TokenEOF)
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.nextToken() // Consume }

	return block
}

// --- Expressions ---
//
// Each binary level is left-associative and parsed iteratively. The logical,
// equality, and relational levels always produce boolean results; the
// arithmetic level promotes mismatched operand types to float in place.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expression {
	node := p.parseLogicalXor()
	for p.curTok.Type == token.TokenOr {
		op := p.curTok
		p.nextToken()
		right := p.parseLogicalXor()
		node = &ast.BinaryExpression{Token: op, Operator: op.Literal, Left: node, Right: right, Type: types.Bool}
	}
	return node
}

func (p *Parser) parseLogicalXor() ast.Expression {
	node := p.parseLogicalAnd()
	for p.curTok.Type == token.TokenXor {
		op := p.curTok
		p.nextToken()
		right := p.parseLogicalAnd()
		node = &ast.BinaryExpression{Token: op, Operator: op.Literal, Left: node, Right: right, Type: types.Bool}
	}
	return node
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	node := p.parseEquality()
	for p.curTok.Type == token.TokenAnd {
		op := p.curTok
		p.nextToken()
		right := p.parseEquality()
		node = &ast.BinaryExpression{Token: op, Operator: op.Literal, Left: node, Right: right, Type: types.Bool}
	}
	return node
}

func (p *Parser) parseEquality() ast.Expression {
	node := p.parseComparison()
	for p.curTok.Type == token.TokenEq || p.curTok.Type == token.TokenNeq {
		op := p.curTok
		p.nextToken()
		right := p.parseComparison()
		node = &ast.BinaryExpression{Token: op, Operator: op.Literal, Left: node, Right: right, Type: types.Bool}
	}
	return node
}

func (p *Parser) parseComparison() ast.Expression {
	node := p.parseTerm()
	for p.curTok.Type == token.TokenLt || p.curTok.Type == token.TokenGt ||
		p.curTok.Type == token.TokenLeq || p.curTok.Type == token.TokenGeq {
		op := p.curTok
		p.nextToken()
		right := p.parseTerm()
		node = &ast.BinaryExpression{Token: op, Operator: op.Literal, Left: node, Right: right, Type: types.Bool}
	}
	return node
}

func (p *Parser) parseTerm() ast.Expression {
	node := p.parseUnary()
	for p.curTok.Type == token.TokenPlus || p.curTok.Type == token.TokenMinus ||
		p.curTok.Type == token.TokenAsterisk || p.curTok.Type == token.TokenSlash {
		op := p.curTok
		p.nextToken()
		right := p.parseUnary()

		// Type promotion: mismatched operands are both coerced to float,
		// mutating the already-parsed subtrees.
		if node.ResultType() != right.ResultType() {
			p.addWarning(op, "mixing %s and %s in expression; promoting to float",
				node.ResultType(), right.ResultType())
			node.SetResultType(types.Float)
			right.SetResultType(types.Float)
		}

		node = &ast.BinaryExpression{
			Token: op, Operator: op.Literal,
			Left: node, Right: right,
			Type: right.ResultType(),
		}
	}
	return node
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curTok.Type == token.TokenNot {
		op := p.curTok
		p.nextToken()
		operand := p.parseUnary()
		// Logical not always yields bool; the operand's type is left alone.
		return &ast.UnaryExpression{Token: op, Operator: op.Literal, Operand: operand, Type: types.Bool}
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() ast.Expression {
	switch p.curTok.Type {
	case token.TokenNumber:
		tok := p.curTok
		typ := types.Int
		if strings.Contains(tok.Literal, ".") {
			typ = types.Float
		}
		p.nextToken()
		return &ast.Literal{Token: tok, Value: tok.Literal, Type: typ}

	case token.TokenBoolLiteral:
		tok := p.curTok
		p.nextToken()
		return &ast.Literal{Token: tok, Value: tok.Literal, Type: types.Bool}

	case token.TokenCharLiteral:
		tok := p.curTok
		p.nextToken()
		return &ast.Literal{Token: tok, Value: tok.Literal, Type: types.Char}

	case token.TokenStringLiteral:
		tok := p.curTok
		p.nextToken()
		return &ast.Literal{Token: tok, Value: tok.Literal, Type: types.String}

	case token.TokenIdent:
		tok := p.curTok
		p.nextToken()
		// The declared type is resolved at code generation via the symbol
		// table; int is the parse-time placeholder.
		return &ast.Identifier{Token: tok, Name: tok.Literal, Type: types.Int}

	case token.TokenLParen:
		p.nextToken()
		node := p.parseExpression()
		p.expect(token.TokenRParen)
		p.nextToken()
		return node

	default:
		p.fatalf(p.curTok, "unexpected token %s", p.curTok.Type)
		return nil
	}
}

func typeFromKeyword(tt token.TokenType) types.Type {
	switch tt {
	case token.TokenIntType:
		return types.Int
	case token.TokenFloatType:
		return types.Float
	case token.TokenBoolType:
		return types.Bool
	case token.TokenCharType:
		return types.Char
	case token.TokenStringType:
		return types.String
	default:
		return types.Unknown
	}
}
