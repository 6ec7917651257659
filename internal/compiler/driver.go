package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seglang/segc/internal/compiler/ast"
	"github.com/seglang/segc/internal/compiler/codegen"
	"github.com/seglang/segc/internal/compiler/lexer"
	"github.com/seglang/segc/internal/compiler/parser"
)

// Result holds the artifacts of one successful compilation.
type Result struct {
	Program  *ast.Program
	Assembly string
	Warnings []string
}

// Compile runs the full pipeline over SEG source text: lex, parse/type,
// generate. The pipeline halts at the first fatal error.
func Compile(src string) (*Result, error) {
	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %s", strings.Join(errs, "; "))
	}

	gen := codegen.NewGenerator()
	asm := gen.Generate(prog)
	if errs := gen.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("codegen error: %s", strings.Join(errs, "; "))
	}

	return &Result{Program: prog, Assembly: asm, Warnings: p.Warnings()}, nil
}

// CompileAndWrite compiles a .seg source file and writes the assembly to
// outPath. Warnings go to stderr; the parsed AST is dumped to stdout on
// success.
func CompileAndWrite(srcPath, outPath string) error {
	if err := validateExtension(srcPath); err != nil {
		return err
	}

	content, err := readSource(srcPath)
	if err != nil {
		return err
	}

	res, err := Compile(content)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, w)
	}

	fmt.Println("=== Parsed AST ===")
	fmt.Print(res.Program.String())

	return os.WriteFile(outPath, []byte(res.Assembly), 0o644)
}

func validateExtension(path string) error {
	if filepath.Ext(path) != ".seg" {
		return fmt.Errorf("source must have .seg extension")
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}
