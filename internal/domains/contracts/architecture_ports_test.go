package contracts

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestArchitecture_ContractsPortsImportStdlibOnly(t *testing.T) {
	file := loadContractsPortsFile(t)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		if strings.Contains(path, ".") {
			t.Fatalf("contracts/ports must only depend on the standard library, found %q", path)
		}
	}
}

func TestArchitecture_WalletProviderShape(t *testing.T) {
	file := loadContractsPortsFile(t)
	provider := mustFindInterface(t, file, "WalletProvider")
	assertInterfaceMethods(t, provider, []string{
		"Connect",
		"Disconnect",
		"Network",
		"PublicKey",
		"SetAccountChangeHandler",
		"SignMessage",
		"SignTransaction",
	})

	host := mustFindInterface(t, file, "ProviderHost")
	assertInterfaceMethods(t, host, []string{"Lookup"})
}

func TestArchitecture_WalletProviderBlockingCallsTakeContext(t *testing.T) {
	file := loadContractsPortsFile(t)
	provider := mustFindInterface(t, file, "WalletProvider")
	nonBlocking := map[string]struct{}{"PublicKey": {}, "SetAccountChangeHandler": {}}
	for _, field := range provider.Methods.List {
		if len(field.Names) == 0 {
			continue
		}
		name := field.Names[0].Name
		if _, ok := nonBlocking[name]; ok {
			continue
		}
		fn, ok := field.Type.(*ast.FuncType)
		if !ok || fn.Params == nil || len(fn.Params.List) == 0 {
			t.Fatalf("%s must take a context", name)
		}
		sel, ok := fn.Params.List[0].Type.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Context" {
			t.Fatalf("%s must take context.Context as first parameter", name)
		}
	}
}

func loadContractsPortsFile(t *testing.T) *ast.File {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to resolve current file path")
	}
	portsFile := filepath.Join(filepath.Dir(currentFile), "ports", "contracts.go")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, portsFile, nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse ports/contracts.go: %v", err)
	}
	return file
}

func mustFindInterface(t *testing.T, file *ast.File, name string) *ast.InterfaceType {
	t.Helper()
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != name {
				continue
			}
			iface, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				t.Fatalf("type %q exists but is not an interface", name)
			}
			return iface
		}
	}
	t.Fatalf("interface %q not found", name)
	return nil
}

func assertInterfaceMethods(t *testing.T, iface *ast.InterfaceType, expectedMethods []string) {
	t.Helper()
	methods := make([]string, 0)
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			t.Fatalf("interface must not embed other interfaces")
		}
		for _, name := range field.Names {
			methods = append(methods, name.Name)
		}
	}
	slices.Sort(methods)
	exp := append([]string(nil), expectedMethods...)
	slices.Sort(exp)
	if !slices.Equal(methods, exp) {
		t.Fatalf("unexpected declared methods: got=%v want=%v", methods, exp)
	}
}
