// Package doctest extracts compiler test cases from Markdown documents.
//
// A test case is a heading of the form "Test: <name>" followed by typed code
// fences: a `seg` fence holding the source input, any number of `asm` fences
// whose lines must appear in the generated assembly, an optional `ast` fence
// holding the expected AST dump, and an optional `error` fence holding a
// fragment of the expected diagnostic.
package doctest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Case is a single test case extracted from a Markdown document.
type Case struct {
	Name      string
	Input     string   // SEG source from the seg fence
	WantAsm   []string // lines that must appear in the generated assembly
	WantAST   string   // expected AST dump (exact match after trimming)
	WantError string   // expected diagnostic fragment; non-empty means compilation must fail
}

// ExtractCases parses a Markdown document and returns all test cases in
// document order.
func ExtractCases(source []byte) ([]Case, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	err := gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *gast.Heading:
			heading := headingText(n, source)
			if strings.HasPrefix(heading, "Test: ") {
				if current != nil {
					if err := validate(current); err != nil {
						return gast.WalkStop, err
					}
					cases = append(cases, *current)
				}
				current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}
			}

		case *gast.FencedCodeBlock:
			if current == nil {
				return gast.WalkContinue, nil
			}
			content := fenceContent(n, source)
			switch string(n.Language(source)) {
			case "seg":
				current.Input = content
			case "asm":
				for _, line := range strings.Split(content, "\n") {
					if strings.TrimSpace(line) != "" {
						current.WantAsm = append(current.WantAsm, line)
					}
				}
			case "ast":
				current.WantAST = content
			case "error":
				current.WantError = strings.TrimSpace(content)
			}
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}

	return cases, nil
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test case %q has no seg input fence", c.Name)
	}
	if len(c.WantAsm) == 0 && c.WantAST == "" && c.WantError == "" {
		return fmt.Errorf("test case %q has no assertions", c.Name)
	}
	return nil
}

func headingText(heading *gast.Heading, source []byte) string {
	var buf bytes.Buffer
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

func fenceContent(fence *gast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
