package introspect

import (
	"go/parser"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// moduleRoots are the directories whose children are treated as modules,
// with the component type reported for them.
var moduleRoots = []struct {
	dir  string
	kind string
}{
	{"cmd", "command"},
	{"internal", "internal package"},
	{"pkg", "package"},
	{"src", "module"},
	{"lib", "library"},
	{"app", "application module"},
	{"packages", "workspace package"},
}

// designPatternByDir maps directory names to the pattern they suggest.
var designPatternByDir = []struct {
	dirs    []string
	pattern string
}{
	{[]string{"controllers", "controller"}, "MVC"},
	{[]string{"handlers", "handler"}, "Request handlers"},
	{[]string{"middleware", "middlewares"}, "Middleware chain"},
	{[]string{"repository", "repositories", "repo"}, "Repository"},
	{[]string{"services", "service", "usecase", "usecases"}, "Service layer"},
	{[]string{"adapters", "adapter", "ports"}, "Ports and adapters"},
	{[]string{"factory", "factories"}, "Factory"},
	{[]string{"plugins", "plugin", "extensions"}, "Plugin architecture"},
	{[]string{"hooks"}, "Hooks"},
	{[]string{"store", "stores"}, "Centralized store"},
	{[]string{"components"}, "Component-based UI"},
	{[]string{"routes", "router"}, "Routing layer"},
	{[]string{"cmd"}, "Command entry points"},
}

// Architecture reports modules, design patterns, entry points, components and
// (for Go modules) the import relationships between components.
func Architecture(root string) (metadata.Architecture, error) {
	t, err := scanTree(root)
	if err != nil {
		return metadata.Architecture{}, err
	}

	a := metadata.Architecture{
		DesignPatterns: designPatterns(t),
		EntryPoints:    t.mainFiles(),
	}
	for _, mr := range moduleRoots {
		for _, d := range t.childDirs(mr.dir) {
			a.Modules = append(a.Modules, d)
			a.Components = append(a.Components, metadata.Component{
				Name: path.Base(d),
				Type: mr.kind,
				Path: d,
			})
		}
	}
	a.Relationships = goRelationships(t, a.Modules)
	a.Normalize()
	return a, nil
}

func designPatterns(t *tree) []string {
	present := map[string]bool{}
	for _, d := range t.dirs {
		present[path.Base(d)] = true
	}

	out := []string{}
	for _, dp := range designPatternByDir {
		for _, dir := range dp.dirs {
			if present[dir] {
				out = append(out, dp.pattern)
				break
			}
		}
	}
	return out
}

// goRelationships finds imports between modules of the project's own Go
// module. Edges are reported once, sorted by source then target.
func goRelationships(t *tree, modules []string) []metadata.Relationship {
	data, err := t.readFile(GoModName)
	if err != nil {
		return nil
	}
	modPath := parseGoMod(data).Module
	if modPath == "" || len(modules) == 0 {
		return nil
	}

	seen := map[[2]string]bool{}
	var rels []metadata.Relationship
	for _, f := range t.files {
		if !strings.HasSuffix(f, ".go") || strings.HasSuffix(f, "_test.go") {
			continue
		}
		from := owningModule(path.Dir(f), modules)
		if from == "" {
			continue
		}
		src, err := t.readFile(f)
		if err != nil {
			continue
		}
		for _, imp := range goImports(f, src) {
			if !strings.HasPrefix(imp, modPath+"/") {
				continue
			}
			to := owningModule(strings.TrimPrefix(imp, modPath+"/"), modules)
			if to == "" || to == from || seen[[2]string{from, to}] {
				continue
			}
			seen[[2]string{from, to}] = true
			rels = append(rels, metadata.Relationship{From: from, To: to, Type: "imports"})
		}
	}

	sort.Slice(rels, func(i, j int) bool {
		if rels[i].From != rels[j].From {
			return rels[i].From < rels[j].From
		}
		return rels[i].To < rels[j].To
	})
	return rels
}

// goImports returns the import paths of a Go source file. Files that do not
// parse contribute nothing.
func goImports(name string, src []byte) []string {
	f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ImportsOnly)
	if err != nil {
		return nil
	}
	imports := make([]string, 0, len(f.Imports))
	for _, spec := range f.Imports {
		if p, err := strconv.Unquote(spec.Path.Value); err == nil {
			imports = append(imports, p)
		}
	}
	return imports
}

// owningModule returns the module that contains dir, preferring the longest match.
func owningModule(dir string, modules []string) string {
	best := ""
	for _, m := range modules {
		if (dir == m || strings.HasPrefix(dir, m+"/")) && len(m) > len(best) {
			best = m
		}
	}
	return best
}
