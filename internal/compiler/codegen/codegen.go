package codegen

import (
	"fmt"
	"strings"

	"github.com/seglang/segc/internal/compiler/ast"
	"github.com/seglang/segc/internal/compiler/symbols"
	"github.com/seglang/segc/internal/compiler/token"
	"github.com/seglang/segc/internal/compiler/types"
)

// literalEntry is one pooled read-only literal. Integer literals are never
// pooled; they are emitted as immediate operands.
type literalEntry struct {
	label string
	value string
	typ   types.Type
}

type litKey struct {
	value string
	typ   types.Type
}

// Generator lowers a typed statement sequence into x86-64 assembly text.
// A Generator is a single-compilation session: the literal pool, the symbol
// table, and the label counters live here and are discarded with it.
type Generator struct {
	builder strings.Builder
	errors  []string

	literals   []literalEntry
	litLabels  map[litKey]string
	litCounter int
	ifCounter  int

	table     *symbols.Table
	declSlots map[*ast.VarDeclStatement]string
	lastDecl  *ast.VarDeclStatement
}

// bailout unwinds the generator on a fatal error (undefined variable or an
// internal literal-pool miss). Recovered in Generate.
type bailout struct{}

func NewGenerator() *Generator {
	return &Generator{
		litLabels: make(map[litKey]string),
		table:     symbols.NewTable(),
		declSlots: make(map[*ast.VarDeclStatement]string),
	}
}

func (g *Generator) fatalf(format string, args ...any) {
	g.errors = append(g.errors, fmt.Sprintf(format, args...))
	panic(bailout{})
}

func (g *Generator) Errors() []string {
	return g.errors
}

func (g *Generator) emit(line string) {
	g.builder.WriteString(line)
	g.builder.WriteString("\n")
}

// Generate emits the complete assembly unit: a read-only literal section, a
// zero-initialized data slot per declared variable, and the instruction
// stream under a single public entry symbol. On a fatal error it returns ""
// and the diagnostic is available via Errors().
func (g *Generator) Generate(prog *ast.Program) (out string) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			out = ""
		}
	}()

	g.collectLiterals(prog.Statements)

	g.emit("    .intel_syntax noprefix")
	g.emit("    .section .rodata")
	g.genLiteralsSection()

	g.emit("    .data")
	g.genDataSection(prog.Statements)

	g.emit("    .text")
	g.emit("    .global main")
	g.emit("main:")

	for _, stmt := range prog.Statements {
		g.genStatement(stmt)
		if vd, ok := stmt.(*ast.VarDeclStatement); ok {
			g.lastDecl = vd
		}
	}

	g.genEpilogue()

	return g.builder.String()
}

// --- Literal pool ---

// collectLiterals walks the statement sequence once and registers every
// float, bool, char, and string literal into the pool.
func (g *Generator) collectLiterals(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDeclStatement:
			g.collectExprLiterals(s.Value)
		case *ast.IfStatement:
			g.collectExprLiterals(s.Condition)
			g.collectLiterals(s.Then.Statements)
			if s.Else != nil {
				g.collectLiterals(s.Else.Statements)
			}
		}
	}
}

func (g *Generator) collectExprLiterals(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.ResultType() {
		case types.Float, types.Bool, types.Char, types.String:
			g.addLiteral(e.Value, e.ResultType())
		}
	case *ast.BinaryExpression:
		g.collectExprLiterals(e.Left)
		g.collectExprLiterals(e.Right)
	case *ast.UnaryExpression:
		g.collectExprLiterals(e.Operand)
	}
}

// addLiteral pools a literal, deduplicated by exact text and type.
func (g *Generator) addLiteral(value string, typ types.Type) {
	key := litKey{value: value, typ: typ}
	if _, exists := g.litLabels[key]; exists {
		return
	}

	label := fmt.Sprintf("L_literal_%d", g.litCounter)
	g.litCounter++
	g.litLabels[key] = label
	g.literals = append(g.literals, literalEntry{label: label, value: value, typ: typ})
}

// litLabel resolves a pooled literal's label. A miss means the collection
// pre-pass and the lowering pass disagree, which is an internal invariant
// violation, not a user error.
func (g *Generator) litLabel(value string, typ types.Type) string {
	label, ok := g.litLabels[litKey{value: value, typ: typ}]
	if !ok {
		g.fatalf("internal error: literal '%s' (%s) not found in pool", value, typ)
	}
	return label
}

func (g *Generator) genLiteralsSection() {
	for _, lit := range g.literals {
		switch lit.typ {
		case types.Float:
			g.emit(fmt.Sprintf("%s: .double %s", lit.label, lit.value))
		case types.Bool:
			if lit.value == "true" {
				g.emit(fmt.Sprintf("%s: .quad 1", lit.label))
			} else {
				g.emit(fmt.Sprintf("%s: .quad 0", lit.label))
			}
		case types.Char:
			g.emit(fmt.Sprintf("%s: .byte '%s'", lit.label, lit.value))
		case types.String:
			g.emit(fmt.Sprintf("%s: .string \"%s\"", lit.label, lit.value))
		}
	}
}

// --- Data section ---

// genDataSection emits one zero-initialized slot per declared variable, in
// declaration order, recursing into if branches. Symbols are registered here,
// so emission order fixes shadowing order. Re-declarations of a name get a
// uniquified slot label.
func (g *Generator) genDataSection(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDeclStatement:
			label := s.Name
			if n := g.table.Count(s.Name); n > 0 {
				label = fmt.Sprintf("%s.%d", s.Name, n)
			}
			g.table.Define(s.Name, s.DeclType, label)
			g.declSlots[s] = label

			if s.DeclType == types.Float {
				g.emit(fmt.Sprintf("%s: .double 0.0", label))
			} else {
				g.emit(fmt.Sprintf("%s: .quad 0", label))
			}
		case *ast.IfStatement:
			g.genDataSection(s.Then.Statements)
			if s.Else != nil {
				g.genDataSection(s.Else.Statements)
			}
		}
	}
}

// --- Statements ---

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		g.genExpression(s.Value)

		label := g.declSlots[s]
		if s.DeclType == types.Float {
			g.emit(fmt.Sprintf("    movsd [rip + %s], xmm0", label))
		} else {
			g.emit(fmt.Sprintf("    mov [rip + %s], rax", label))
		}

	case *ast.IfStatement:
		id := g.ifCounter
		g.ifCounter++
		elseLabel := fmt.Sprintf("L_else_%d", id)
		endLabel := fmt.Sprintf("L_end_%d", id)

		g.genExpression(s.Condition)
		g.emit("    cmp rax, 0")
		if s.Else != nil {
			g.emit(fmt.Sprintf("    je %s", elseLabel))
		} else {
			g.emit(fmt.Sprintf("    je %s", endLabel))
		}

		for _, inner := range s.Then.Statements {
			g.genStatement(inner)
		}
		g.emit(fmt.Sprintf("    jmp %s", endLabel))

		if s.Else != nil {
			g.emit(elseLabel + ":")
			for _, inner := range s.Else.Statements {
				g.genStatement(inner)
			}
		}
		g.emit(endLabel + ":")
	}
}

func (g *Generator) genEpilogue() {
	if g.lastDecl != nil {
		label := g.declSlots[g.lastDecl]
		if g.lastDecl.DeclType == types.Float {
			g.emit(fmt.Sprintf("    movsd xmm0, [rip + %s]", label))
			g.emit("    movq rax, xmm0")
		} else {
			g.emit(fmt.Sprintf("    mov rax, [rip + %s]", label))
		}
	} else {
		g.emit("    mov rax, 0")
	}
	g.emit("    ret")
}

// --- Expressions ---

func (g *Generator) genExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.ResultType() {
		case types.Float:
			g.emit(fmt.Sprintf("    movsd xmm0, [rip + %s]", g.litLabel(e.Value, types.Float)))
		case types.Bool, types.Char:
			g.emit(fmt.Sprintf("    mov rax, [rip + %s]", g.litLabel(e.Value, e.ResultType())))
		case types.String:
			g.emit(fmt.Sprintf("    lea rax, [rip + %s]", g.litLabel(e.Value, types.String)))
		default:
			g.emit(fmt.Sprintf("    mov rax, %s", e.Value))
		}

	case *ast.Identifier:
		sym, ok := g.table.Lookup(e.Name)
		if !ok {
			g.fatalf("undefined variable: %s", e.Name)
		}
		if sym.Type == types.Float {
			g.emit(fmt.Sprintf("    movsd xmm0, [rip + %s]", sym.Label))
		} else {
			g.emit(fmt.Sprintf("    mov rax, [rip + %s]", sym.Label))
		}

	case *ast.BinaryExpression:
		if e.ResultType() == types.Float {
			g.genFloatBinary(e)
		} else {
			g.genIntBinary(e)
		}

	case *ast.UnaryExpression:
		g.genExpression(e.Operand)
		// Logical not: 0 becomes 1, anything else becomes 0
		g.emit("    cmp rax, 0")
		g.emit("    sete al")
		g.emit("    movzx rax, al")
	}
}

// genIntBinary evaluates the right operand first and saves it on the stack,
// so the left value ends up in rax and the right in rbx.
func (g *Generator) genIntBinary(e *ast.BinaryExpression) {
	g.genExpression(e.Right)
	g.emit("    push rax")
	g.genExpression(e.Left)
	g.emit("    pop rbx")

	switch e.Token.Type {
	case token.TokenPlus:
		g.emit("    add rax, rbx")
	case token.TokenMinus:
		g.emit("    sub rax, rbx")
	case token.TokenAsterisk:
		g.emit("    imul rax, rbx")
	case token.TokenSlash:
		// Signed division: sign-extend rax into rdx:rax first
		g.emit("    cqo")
		g.emit("    idiv rbx")
	case token.TokenAnd:
		g.emit("    and rax, rbx")
	case token.TokenOr:
		g.emit("    or rax, rbx")
	case token.TokenXor:
		g.emit("    xor rax, rbx")
	case token.TokenEq:
		g.genCompare("sete")
	case token.TokenNeq:
		g.genCompare("setne")
	case token.TokenLt:
		g.genCompare("setl")
	case token.TokenLeq:
		g.genCompare("setle")
	case token.TokenGt:
		g.genCompare("setg")
	case token.TokenGeq:
		g.genCompare("setge")
	}
}

// genCompare emits the compare / set-flag / zero-extend sequence producing
// 0 or 1 in rax.
func (g *Generator) genCompare(setInstr string) {
	g.emit("    cmp rax, rbx")
	g.emit(fmt.Sprintf("    %s al", setInstr))
	g.emit("    movzx rax, al")
}

// genFloatBinary is the floating counterpart of genIntBinary: the saved right
// operand travels through the stack since push/pop don't take xmm registers.
func (g *Generator) genFloatBinary(e *ast.BinaryExpression) {
	g.genExpression(e.Right)
	g.emit("    sub rsp, 8")
	g.emit("    movsd [rsp], xmm0")
	g.genExpression(e.Left)
	g.emit("    movsd xmm1, [rsp]")
	g.emit("    add rsp, 8")

	switch e.Token.Type {
	case token.TokenPlus:
		g.emit("    addsd xmm0, xmm1")
	case token.TokenMinus:
		g.emit("    subsd xmm0, xmm1")
	case token.TokenAsterisk:
		g.emit("    mulsd xmm0, xmm1")
	case token.TokenSlash:
		g.emit("    divsd xmm0, xmm1")
	}
}
