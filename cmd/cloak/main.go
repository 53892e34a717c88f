// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

// Command cloak inspects and applies hidden-integer transforms.
//
//	cloak dump     print the transform tree a site and secret produce
//	cloak rewrite  rewrite //cloak:N directive lines to hidden literals
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/ast/astutil"

	"mvdan.cc/cloak"
	"mvdan.cc/cloak/internal/bijection"
)

var flagSet = flag.NewFlagSet("cloak", flag.ContinueOnError)

func init() { flagSet.Usage = usage }

func usage() {
	fmt.Fprint(os.Stderr, `
Usage of cloak:

	cloak dump -secret=<base64|random> [-width=64] [-level=0] [-ctx=literal] [-file=f] [-line=n]
	cloak rewrite [-w] [-config=cloakConfig] files...
`[1:])
	flagSet.PrintDefaults()
	os.Exit(2)
}

func main() { os.Exit(main1()) }

func main1() int {
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return 2
	}
	args := flagSet.Args()
	if len(args) < 1 {
		flagSet.Usage()
	}
	var err error
	switch cmd := args[0]; cmd {
	case "dump":
		err = dump(args[1:])
	case "rewrite":
		err = rewrite(args[1:])
	default:
		err = fmt.Errorf("unknown command: %q", cmd)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func dump(args []string) error {
	fs := flag.NewFlagSet("cloak dump", flag.ExitOnError)
	secretStr := fs.String("secret", "", "build secret, base64 or \"random\"")
	width := fs.Int("width", 64, "domain width in bits: 8, 16, 32 or 64")
	level := fs.Int("level", 0, "strength level")
	ctx := fs.String("ctx", "literal", "transform context: literal or var")
	file := fs.String("file", "main.go", "site file")
	line := fs.Int("line", 1, "site line")
	index := fs.Int("index", 0, "site index within the line")
	fs.Parse(args)

	if *secretStr == "" {
		return fmt.Errorf("dump needs -secret")
	}
	secret, err := cloak.ParseSecret(*secretStr)
	if err != nil {
		return err
	}
	var literal bool
	switch *ctx {
	case "literal":
		literal = true
	case "var":
	default:
		return fmt.Errorf("unknown context: %q", *ctx)
	}
	switch *width {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("unsupported width: %d", *width)
	}

	tree := bijection.Build(bijection.Params{
		Width:   *width,
		Seed:    bijection.SeedFromSite(secret, *file, *line, *index),
		Cycles:  bijection.ExpCycles(*level),
		Consts:  bijection.BuildConsts(secret),
		Literal: literal,
	})
	tree.Dump(os.Stdout)
	return nil
}

// directiveRx matches the magic comment marking a line for rewriting. The
// digit is the strength level to use for every integer literal on the line.
var directiveRx = regexp.MustCompile(`^//cloak:([0-6])$`)

func rewrite(args []string) error {
	fs := flag.NewFlagSet("cloak rewrite", flag.ExitOnError)
	write := fs.Bool("w", false, "write result back to the source file")
	config := fs.String("config", "cloakConfig", "name of the package-level *cloak.Config to use")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("rewrite needs at least one Go file")
	}
	for _, path := range fs.Args() {
		if err := rewriteFile(path, *config, *write); err != nil {
			return fmt.Errorf("%s: %v", path, err)
		}
	}
	return nil
}

func rewriteFile(path, config string, write bool) error {
	relPath, err := moduleRelPath(path)
	if err != nil {
		return err
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return err
	}

	// Each directive marks its own line; every integer literal on a marked
	// line is replaced with a hidden literal at the directive's level.
	levels := make(map[int]int)
	for _, group := range f.Comments {
		for _, comment := range group.List {
			m := directiveRx.FindStringSubmatch(comment.Text)
			if m == nil {
				continue
			}
			levels[fset.Position(comment.Pos()).Line] = int(m[1][0] - '0')
		}
	}

	count := 0
	indexes := make(map[int]int)
	astutil.Apply(f, func(cur *astutil.Cursor) bool {
		// Skip anything already under a cloak call, so rewriting a file
		// twice changes nothing.
		if call, ok := cur.Node().(*ast.CallExpr); ok && isCloakCall(call) {
			return false
		}
		lit, ok := cur.Node().(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return true
		}
		line := fset.Position(lit.Pos()).Line
		level, ok := levels[line]
		if !ok {
			return true
		}
		cur.Replace(hiddenLiteral(config, relPath, line, indexes[line], level, lit.Value))
		indexes[line]++
		count++
		return false
	}, nil)
	if count > 0 {
		astutil.AddImport(fset, f, "mvdan.cc/cloak")
	}

	if !write {
		return format.Node(os.Stdout, fset, f)
	}
	var sb strings.Builder
	if err := format.Node(&sb, fset, f); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0o666)
}

// hiddenLiteral builds the replacement expression
//
//	cloak.NewLiteral(config, cloak.At(file, line).WithIndex(index), level, value).Value()
//
// with no positions, so a second rewrite pass leaves it alone.
func hiddenLiteral(config, file string, line, index, level int, value string) ast.Expr {
	site := ast.Expr(&ast.CallExpr{
		Fun: &ast.SelectorExpr{X: ast.NewIdent("cloak"), Sel: ast.NewIdent("At")},
		Args: []ast.Expr{
			&ast.BasicLit{Kind: token.STRING, Value: fmt.Sprintf("%q", file)},
			&ast.BasicLit{Kind: token.INT, Value: fmt.Sprint(line)},
		},
	})
	if index > 0 {
		site = &ast.CallExpr{
			Fun:  &ast.SelectorExpr{X: site, Sel: ast.NewIdent("WithIndex")},
			Args: []ast.Expr{&ast.BasicLit{Kind: token.INT, Value: fmt.Sprint(index)}},
		}
	}
	return &ast.CallExpr{
		Fun: &ast.SelectorExpr{
			X: &ast.CallExpr{
				Fun: &ast.SelectorExpr{X: ast.NewIdent("cloak"), Sel: ast.NewIdent("NewLiteral")},
				Args: []ast.Expr{
					ast.NewIdent(config),
					site,
					&ast.BasicLit{Kind: token.INT, Value: fmt.Sprint(level)},
					&ast.BasicLit{Kind: token.INT, Value: value},
				},
			},
			Sel: ast.NewIdent("Value"),
		},
	}
}

// isCloakCall reports whether the call's function chain bottoms out at the
// package identifier "cloak".
func isCloakCall(call *ast.CallExpr) bool {
	expr := ast.Expr(call)
	for {
		switch x := expr.(type) {
		case *ast.CallExpr:
			expr = x.Fun
		case *ast.SelectorExpr:
			expr = x.X
		case *ast.Ident:
			return x.Name == "cloak"
		default:
			return false
		}
	}
}

// moduleRelPath names a file relative to its module root, so the rewritten
// sites stay stable across checkouts. Files outside any module keep their
// given path.
func moduleRelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			if modfile.ModulePath(data) == "" {
				return "", fmt.Errorf("%s/go.mod has no module path", dir)
			}
			rel, err := filepath.Rel(dir, abs)
			if err != nil {
				return "", err
			}
			return filepath.ToSlash(rel), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.ToSlash(path), nil
		}
		dir = parent
	}
}
