package introspect

import (
	"fmt"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// manifestReaders are tried in order; the first manifest present wins.
var manifestReaders = []struct {
	name string
	read func([]byte) (*metadata.Package, error)
}{
	{PackageJSONName, readPackageJSON},
	{ProjectTomlName, readProjectToml},
	{CargoTomlName, readCargoToml},
	{PyprojectTomlName, readPyprojectToml},
}

// Package reads the project's manifest. It returns nil without error when the
// project has no recognised manifest.
func Package(root string) (*metadata.Package, error) {
	t, err := scanTree(root)
	if err != nil {
		return nil, err
	}

	for _, reader := range manifestReaders {
		if !t.hasFile(reader.name) {
			continue
		}
		data, err := t.readFile(reader.name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", reader.name, err)
		}
		pkg, err := reader.read(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", reader.name, err)
		}
		if pkg == nil {
			continue
		}
		if pkg.Main == "" {
			pkg.Main = firstOf(t.mainFiles())
		}
		return pkg, nil
	}

	if t.hasFile(GoModName) {
		data, err := t.readFile(GoModName)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", GoModName, err)
		}
		mod := parseGoMod(data)
		if mod.Module == "" {
			return nil, nil
		}
		return &metadata.Package{
			Name:         mod.Module,
			Main:         firstOf(t.mainFiles()),
			Dependencies: mod.Requires,
		}, nil
	}

	return nil, nil
}

func firstOf(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
