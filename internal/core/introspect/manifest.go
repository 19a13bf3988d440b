package introspect

import (
	"encoding/json"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"golang.org/x/mod/modfile"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// Manifest file names, in lookup order.
const (
	PackageJSONName   = "package.json"
	ProjectTomlName   = "project.toml"
	CargoTomlName     = "Cargo.toml"
	PyprojectTomlName = "pyproject.toml"
	GoModName         = "go.mod"
)

// projectToml is the layout of a project.toml manifest with [package] and
// [dependencies] tables.
type projectToml struct {
	Package *struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		License     string `toml:"license,omitempty"`
		Description string `toml:"description,omitempty"`
	} `toml:"package"`
	Scripts      map[string]string            `toml:"scripts,omitempty"`
	Dependencies map[string]projectDependency `toml:"dependencies,omitempty"`
}

// projectDependency is a single entry of project.toml's [dependencies] table.
type projectDependency struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
}

// cargoToml holds the parts of Cargo.toml briefli reads.
type cargoToml struct {
	Package *struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
	} `toml:"package"`
}

// pyprojectToml holds the parts of pyproject.toml briefli reads, for both PEP
// 621 [project] tables and Poetry's [tool.poetry].
type pyprojectToml struct {
	Project *struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Description  string   `toml:"description"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry *struct {
			Name        string `toml:"name"`
			Version     string `toml:"version"`
			Description string `toml:"description"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// readPackageJSON decodes package.json. NameList keeps the key order of
// "scripts" and "dependencies".
func readPackageJSON(data []byte) (*metadata.Package, error) {
	var pkg metadata.Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	pkg.Version = normalizeVersion(pkg.Version)
	return &pkg, nil
}

// readProjectToml decodes project.toml.
func readProjectToml(data []byte) (*metadata.Package, error) {
	var proj projectToml
	md, err := toml.Decode(string(data), &proj)
	if err != nil {
		return nil, err
	}

	pkg := &metadata.Package{
		Scripts:      tableKeys(md, "scripts"),
		Dependencies: tableKeys(md, "dependencies"),
	}
	if proj.Package != nil {
		pkg.Name = proj.Package.Name
		pkg.Version = normalizeVersion(proj.Package.Version)
		pkg.Description = proj.Package.Description
	}
	return pkg, nil
}

// readCargoToml decodes a Cargo.toml. Main is filled in by the caller, which
// can see the file tree.
func readCargoToml(data []byte) (*metadata.Package, error) {
	var cargo cargoToml
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, err
	}

	pkg := &metadata.Package{
		Dependencies:    tableKeys(md, "dependencies"),
		DevDependencies: tableKeys(md, "dev-dependencies"),
	}
	if cargo.Package != nil {
		pkg.Name = cargo.Package.Name
		pkg.Version = normalizeVersion(cargo.Package.Version)
		pkg.Description = cargo.Package.Description
	}
	return pkg, nil
}

// pep508Name captures the distribution name at the start of a PEP 508 requirement.
var pep508Name = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)`)

// readPyprojectToml decodes a pyproject.toml.
func readPyprojectToml(data []byte) (*metadata.Package, error) {
	var py pyprojectToml
	md, err := toml.Decode(string(data), &py)
	if err != nil {
		return nil, err
	}

	pkg := &metadata.Package{}
	switch {
	case py.Project != nil:
		pkg.Name = py.Project.Name
		pkg.Version = normalizeVersion(py.Project.Version)
		pkg.Description = py.Project.Description
		pkg.Scripts = tableKeys(md, "project", "scripts")
		for _, req := range py.Project.Dependencies {
			if m := pep508Name.FindStringSubmatch(req); m != nil {
				pkg.Dependencies = append(pkg.Dependencies, m[1])
			}
		}
	case py.Tool.Poetry != nil:
		pkg.Name = py.Tool.Poetry.Name
		pkg.Version = normalizeVersion(py.Tool.Poetry.Version)
		pkg.Description = py.Tool.Poetry.Description
		pkg.Scripts = tableKeys(md, "tool", "poetry", "scripts")
		for _, dep := range tableKeys(md, "tool", "poetry", "dependencies") {
			if dep != "python" {
				pkg.Dependencies = append(pkg.Dependencies, dep)
			}
		}
	default:
		return nil, nil
	}
	return pkg, nil
}

// tableKeys returns the keys directly under the TOML table at prefix, in
// document order.
func tableKeys(md toml.MetaData, prefix ...string) metadata.NameList {
	var keys metadata.NameList
	for _, key := range md.Keys() {
		if len(key) != len(prefix)+1 {
			continue
		}
		match := true
		for i, p := range prefix {
			if key[i] != p {
				match = false
				break
			}
		}
		if match {
			keys = append(keys, key[len(prefix)])
		}
	}
	return keys
}

// goMod is the subset of go.mod briefli reads.
type goMod struct {
	Module   string
	Requires []string // direct requirements only
}

// parseGoMod reads the module path and direct requirements from go.mod.
// Syntax errors yield whatever the lax parser recovered.
func parseGoMod(data []byte) goMod {
	var mod goMod
	f, err := modfile.ParseLax(GoModName, data, nil)
	if err != nil {
		return mod
	}
	if f.Module != nil {
		mod.Module = f.Module.Mod.Path
	}
	for _, r := range f.Require {
		if !r.Indirect {
			mod.Requires = append(mod.Requires, r.Mod.Path)
		}
	}
	return mod
}

// normalizeVersion returns the canonical semver form of v when it parses,
// and v unchanged otherwise.
func normalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return parsed.String()
}
