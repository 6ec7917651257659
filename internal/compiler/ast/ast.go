package ast

import (
	"bytes"
	"fmt"

	"github.com/seglang/segc/internal/compiler/token"
	"github.com/seglang/segc/internal/compiler/types"
)

// --- Interfaces ---

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

// Expression nodes carry a resolved result type. SetResultType exists because
// promotion is retroactive: parsing `1 + 2.0` mutates the already-built `1`
// subtree to float.
type Expression interface {
	Node
	expressionNode()
	ResultType() types.Type
	SetResultType(types.Type)
	GetToken() token.Token
}

// --- Program ---

// Program is the root of every parsed file. Statement order is significant:
// storage and execution order follow declaration order.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statements ---

// VarDeclStatement -> int x = 5 + 3;
type VarDeclStatement struct {
	Token    token.Token // the type keyword
	DeclType types.Type
	Name     string
	Value    Expression
}

func (vd *VarDeclStatement) statementNode()       {}
func (vd *VarDeclStatement) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclStatement) String() string {
	value := ""
	if vd.Value != nil {
		value = vd.Value.String()
	}
	return fmt.Sprintf("VarDecl: type=%s name=%s value=%s", vd.DeclType, vd.Name, value)
}

// IfStatement -> if (cond) { ... } else { ... }
// An `else if` chain is represented as an else block holding a single nested
// IfStatement.
type IfStatement struct {
	Token     token.Token // if
	Condition Expression
	Then      *BlockStatement
	Else      *BlockStatement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("IfStatement: condition=")
	if is.Condition != nil {
		out.WriteString(is.Condition.String())
	}
	out.WriteString("\nThen:\n")
	if is.Then != nil {
		out.WriteString(is.Then.String())
	}
	if is.Else != nil {
		out.WriteString("Else:\n")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// BlockStatement -> { statement* }
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Expressions ---

// Literal -> 5, 3.14, true, 'a', "hello". Value holds the literal's canonical
// text; Type is resolved at creation and may be promoted afterwards.
type Literal struct {
	Token token.Token
	Value string
	Type  types.Type
}

func (l *Literal) expressionNode()            {}
func (l *Literal) TokenLiteral() string       { return l.Token.Literal }
func (l *Literal) String() string             { return l.Value }
func (l *Literal) ResultType() types.Type     { return l.Type }
func (l *Literal) SetResultType(t types.Type) { l.Type = t }
func (l *Literal) GetToken() token.Token      { return l.Token }

// Identifier -> x. The parser stamps identifiers int as a placeholder; the
// true declared type is resolved by the code generator's symbol lookup.
type Identifier struct {
	Token token.Token
	Name  string
	Type  types.Type
}

func (i *Identifier) expressionNode()            {}
func (i *Identifier) TokenLiteral() string       { return i.Token.Literal }
func (i *Identifier) String() string             { return i.Name }
func (i *Identifier) ResultType() types.Type     { return i.Type }
func (i *Identifier) SetResultType(t types.Type) { i.Type = t }
func (i *Identifier) GetToken() token.Token      { return i.Token }

// BinaryExpression -> left op right
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
	Type     types.Type
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Operator, be.Right.String())
}
func (be *BinaryExpression) ResultType() types.Type     { return be.Type }
func (be *BinaryExpression) SetResultType(t types.Type) { be.Type = t }
func (be *BinaryExpression) GetToken() token.Token      { return be.Token }

// UnaryExpression -> !operand
type UnaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Operand  Expression
	Type     types.Type
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) String() string {
	return fmt.Sprintf("(%s%s)", ue.Operator, ue.Operand.String())
}
func (ue *UnaryExpression) ResultType() types.Type     { return ue.Type }
func (ue *UnaryExpression) SetResultType(t types.Type) { ue.Type = t }
func (ue *UnaryExpression) GetToken() token.Token      { return ue.Token }
