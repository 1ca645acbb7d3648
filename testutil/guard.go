// Package testutil holds test helpers that enforce the layering between
// fibernet packages.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ModulePath is the import prefix of every fibernet package.
const ModulePath = "fibernet"

// ImportPredicate reports whether an import path breaks a layering rule.
type ImportPredicate func(importPath string) bool

// AssertNoDirectImports parses the non-test .go files in dir and fails t when
// an import matches forbidden. Build tags are not evaluated.
func AssertNoDirectImports(t testing.TB, dir string, forbidden ImportPredicate, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	reportViolations(t, reason, viols)
}

// Under matches imports of the named module packages or anything below them.
// Packages are given relative to the module root, e.g. "internal/api".
func Under(pkgs ...string) ImportPredicate {
	return func(path string) bool {
		for _, p := range pkgs {
			full := ModulePath + "/" + p
			if path == full || strings.HasPrefix(path, full+"/") {
				return true
			}
		}
		return false
	}
}

// InternalImport matches any fibernet internal package.
func InternalImport(path string) bool {
	return Under("internal")(path)
}

// HTTPFrameworkImport matches the HTTP router and its middleware modules.
func HTTPFrameworkImport(path string) bool {
	return strings.HasPrefix(path, "github.com/gin-gonic/") || strings.HasPrefix(path, "github.com/gin-contrib/")
}

// Any combines predicates.
func Any(preds ...ImportPredicate) ImportPredicate {
	return func(path string) bool {
		return slices.ContainsFunc(preds, func(p ImportPredicate) bool { return p(path) })
	}
}

func directImportViolations(dir string, forbidden ImportPredicate) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if forbidden(path) {
				viols = append(viols, path+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

type fatalf interface {
	Fatalf(format string, args ...any)
}

func reportViolations(t fatalf, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden imports (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}
