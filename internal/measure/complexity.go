package measure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

// ErrUnsupportedLanguage indicates no grammar is wired for the file's
// extension.
var ErrUnsupportedLanguage = errors.New("no grammar for extension")

// errNoRootNode indicates the parser produced no syntax tree root.
var errNoRootNode = errors.New("parse produced no root node")

// branchKinds is the set of tree-sitter node types counted as branching
// constructs. It spans the wired grammars: statement/expression forms of
// conditionals and loops, case arms, exception handlers, ternaries, and
// short-circuit operator tokens.
var branchKinds = map[string]struct{}{
	"&&":                     {},
	"||":                     {},
	"and":                    {},
	"case_clause":            {},
	"catch_clause":           {},
	"conditional_expression": {},
	"do_statement":           {},
	"elif_clause":            {},
	"else_if_clause":         {},
	"except_clause":          {},
	"for_in_statement":       {},
	"for_statement":          {},
	"foreach_statement":      {},
	"guard_statement":        {},
	"if_expression":          {},
	"if_statement":           {},
	"match_arm":              {},
	"or":                     {},
	"rescue":                 {},
	"switch_case":            {},
	"ternary_expression":     {},
	"when":                   {},
	"when_entry":             {},
	"while_expression":       {},
	"while_statement":        {},
}

// Complexity computes a scalar approximation of cyclomatic complexity:
// one plus the number of branching constructs in the file. The result is
// always non-negative; an unparsable file or an extension without a
// grammar is a measurement failure.
type Complexity struct {
	// Root is the filesystem directory file paths are resolved against.
	Root string
}

// NewComplexity creates a complexity measurer reading files under root.
func NewComplexity(root string) *Complexity {
	return &Complexity{Root: root}
}

// Measure parses the file with its language's tree-sitter grammar and
// counts branching nodes.
func (c *Complexity) Measure(ctx context.Context, file pipeline.FileRef) (float64, error) {
	langName := languageForExt(file.Ext)
	if langName == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, file.Ext)
	}

	lang := getLanguage(langName)
	if lang == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, file.Ext)
	}

	content, readErr := os.ReadFile(filepath.Join(c.Root, filepath.FromSlash(file.Path)))
	if readErr != nil {
		return 0, fmt.Errorf("read file: %w", readErr)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, parseErr := parser.ParseString(ctx, nil, content)
	if parseErr != nil {
		return 0, fmt.Errorf("parse %s: %w", langName, parseErr)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return 0, errNoRootNode
	}

	return 1 + float64(countBranches(root)), nil
}

// countBranches walks all nodes, named and anonymous, so operator tokens
// like "&&" are visited too.
func countBranches(n sitter.Node) int {
	count := 0

	if _, ok := branchKinds[n.Type()]; ok {
		count++
	}

	for i := range n.ChildCount() {
		count += countBranches(n.Child(i))
	}

	return count
}
