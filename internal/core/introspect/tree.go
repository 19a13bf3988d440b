// Package introspect implements briefli's built-in analysis procedures. Each
// procedure inspects a project directory on disk and produces one slice of
// metadata.ProjectMetadata; the hidden "introspect" command prints it as JSON.
package introspect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// maxWalkDepth bounds how deep the project tree is scanned.
	maxWalkDepth = 8
	// maxWalkFiles bounds how many files are recorded.
	maxWalkFiles = 10000
)

// skipDirs are never descended into. Hidden directories are skipped as well.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"out":          true,
	"coverage":     true,
	"__pycache__":  true,
	"venv":         true,
	"bin":          true,
	"obj":          true,
}

// tree is a flattened, lexically ordered listing of a project.
type tree struct {
	root  string
	dirs  []string // slash-separated, relative to root
	files []string // slash-separated, relative to root
}

// scanTree walks root and records directories and files.
func scanTree(root string) (*tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	t := &tree{root: root}
	errLimit := errors.New("file limit reached")

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] || depth(rel) > maxWalkDepth {
				return fs.SkipDir
			}
			t.dirs = append(t.dirs, rel)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if len(t.files) >= maxWalkFiles {
			return errLimit
		}
		t.files = append(t.files, rel)
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, err
	}
	return t, nil
}

// depth returns the number of path elements in a relative slash path.
func depth(rel string) int {
	return strings.Count(rel, "/") + 1
}

func (t *tree) hasFile(rel string) bool {
	_, err := os.Stat(filepath.Join(t.root, filepath.FromSlash(rel)))
	return err == nil
}

func (t *tree) hasDir(rel string) bool {
	info, err := os.Stat(filepath.Join(t.root, filepath.FromSlash(rel)))
	return err == nil && info.IsDir()
}

func (t *tree) readFile(rel string) ([]byte, error) {
	return os.ReadFile(filepath.Join(t.root, filepath.FromSlash(rel)))
}

// childDirs returns the direct subdirectories of parent, in lexical order.
func (t *tree) childDirs(parent string) []string {
	var out []string
	for _, d := range t.dirs {
		if path.Dir(d) == parent {
			out = append(out, d)
		}
	}
	return out
}

// mainFilePatterns match well-known entry files, relative to the project root.
var mainFilePatterns = []string{
	"main.go",
	"cmd/*/main.go",
	"index.js",
	"index.ts",
	"app.js",
	"server.js",
	"src/index.js",
	"src/index.ts",
	"src/index.tsx",
	"src/main.js",
	"src/main.ts",
	"src/app.js",
	"src/app.ts",
	"src/main.rs",
	"src/lib.rs",
	"main.py",
	"app.py",
	"manage.py",
	"*/__main__.py",
	"src/main/java/*/Main.java",
	"init.lua",
	"src/main.lua",
}

// mainFiles returns the files matching mainFilePatterns, in tree order.
func (t *tree) mainFiles() []string {
	out := []string{}
	for _, f := range t.files {
		for _, pattern := range mainFilePatterns {
			if ok, _ := path.Match(pattern, f); ok {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
