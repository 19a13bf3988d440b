package introspect

import (
	"bufio"
	"bytes"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// maxAPISignatures caps the signatures collected from source files.
const maxAPISignatures = 20

var languageByExt = map[string]string{
	".go":    "Go",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".cjs":   "JavaScript",
	".py":    "Python",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".rb":    "Ruby",
	".php":   "PHP",
	".cs":    "C#",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".swift": "Swift",
	".lua":   "Lua",
	".sh":    "Shell",
	".scala": "Scala",
	".dart":  "Dart",
	".ex":    "Elixir",
	".exs":   "Elixir",
}

// frameworkByDependency maps dependency names (or Go module path prefixes) to
// the framework they indicate.
var frameworkByDependency = []struct {
	dep       string
	framework string
}{
	{"react", "React"},
	{"next", "Next.js"},
	{"vue", "Vue"},
	{"svelte", "Svelte"},
	{"@angular/core", "Angular"},
	{"express", "Express"},
	{"fastify", "Fastify"},
	{"@nestjs/core", "NestJS"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"actix-web", "Actix Web"},
	{"axum", "Axum"},
	{"rocket", "Rocket"},
	{"tokio", "Tokio"},
	{"clap", "clap"},
	{"github.com/gin-gonic/gin", "Gin"},
	{"github.com/labstack/echo", "Echo"},
	{"github.com/gofiber/fiber", "Fiber"},
	{"github.com/go-chi/chi", "chi"},
	{"github.com/spf13/cobra", "Cobra"},
	{"github.com/urfave/cli", "urfave/cli"},
	{"google.golang.org/grpc", "gRPC"},
	{"connectrpc.com/connect", "Connect RPC"},
	{"entgo.io/ent", "ent"},
}

// signaturePatterns match exported declarations per source extension.
var signaturePatterns = map[string]*regexp.Regexp{
	".go":  regexp.MustCompile(`^func (\([^)]*\) )?[A-Z]\w*\(.*`),
	".ts":  regexp.MustCompile(`^export (default )?(async )?(function|class|interface) \w+.*`),
	".tsx": regexp.MustCompile(`^export (default )?(async )?(function|class|interface) \w+.*`),
	".js":  regexp.MustCompile(`^export (default )?(async )?(function|class) \w+.*`),
	".mjs": regexp.MustCompile(`^export (default )?(async )?(function|class) \w+.*`),
	".py":  regexp.MustCompile(`^(async )?def [a-zA-Z]\w*\(.*`),
	".rs":  regexp.MustCompile(`^pub (async )?fn \w+.*`),
}

// Codebase reports languages, frameworks, repository patterns and a sample of
// exported API signatures.
func Codebase(root string) (metadata.Codebase, error) {
	t, err := scanTree(root)
	if err != nil {
		return metadata.Codebase{}, err
	}

	c := metadata.Codebase{
		Languages:     languages(t),
		Frameworks:    frameworks(t),
		Patterns:      patterns(t),
		APISignatures: apiSignatures(t),
	}
	c.Normalize()
	return c, nil
}

// languages orders detected languages by file count, then by name.
func languages(t *tree) []string {
	counts := map[string]int{}
	for _, f := range t.files {
		if lang, ok := languageByExt[strings.ToLower(path.Ext(f))]; ok {
			counts[lang]++
		}
	}

	out := make([]string, 0, len(counts))
	for lang := range counts {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// dependencyNames collects dependency names from every manifest present.
func dependencyNames(t *tree) []string {
	var deps []string
	for _, reader := range manifestReaders {
		if !t.hasFile(reader.name) {
			continue
		}
		data, err := t.readFile(reader.name)
		if err != nil {
			continue
		}
		pkg, err := reader.read(data)
		if err != nil || pkg == nil {
			continue
		}
		deps = append(deps, pkg.Dependencies...)
		deps = append(deps, pkg.DevDependencies...)
	}
	if data, err := t.readFile(GoModName); err == nil {
		deps = append(deps, parseGoMod(data).Requires...)
	}
	if data, err := t.readFile("requirements.txt"); err == nil {
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if m := pep508Name.FindStringSubmatch(sc.Text()); m != nil {
				deps = append(deps, m[1])
			}
		}
	}
	return deps
}

// frameworks returns the frameworks implied by dependencies, in dependency order.
func frameworks(t *tree) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, dep := range dependencyNames(t) {
		lower := strings.ToLower(dep)
		for _, fw := range frameworkByDependency {
			if lower == fw.dep || strings.HasPrefix(lower, fw.dep+"/") {
				if !seen[fw.framework] {
					seen[fw.framework] = true
					out = append(out, fw.framework)
				}
				break
			}
		}
	}
	return out
}

// patterns reports repository conventions.
func patterns(t *tree) []string {
	out := []string{}
	if hasTests(t) {
		out = append(out, "Automated tests")
	}
	if t.hasFile("Dockerfile") || t.hasFile("docker-compose.yml") || t.hasFile("compose.yaml") {
		out = append(out, "Containerized (Docker)")
	}
	if t.hasDir(".github/workflows") {
		out = append(out, "CI (GitHub Actions)")
	}
	if t.hasFile("Makefile") {
		out = append(out, "Makefile build")
	}
	if t.hasFile("go.work") || t.hasFile("pnpm-workspace.yaml") || t.hasFile("lerna.json") {
		out = append(out, "Monorepo workspace")
	}
	if t.hasDir("cmd") {
		out = append(out, "Command binaries under cmd/")
	}
	if t.hasDir("internal") {
		out = append(out, "Internal packages")
	}
	return out
}

func hasTests(t *tree) bool {
	for _, d := range t.dirs {
		switch path.Base(d) {
		case "test", "tests", "__tests__", "spec":
			return true
		}
	}
	for _, f := range t.files {
		base := path.Base(f)
		if strings.HasSuffix(base, "_test.go") ||
			strings.Contains(base, ".test.") ||
			strings.Contains(base, ".spec.") ||
			(strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py")) {
			return true
		}
	}
	return false
}

// apiSignatures collects up to maxAPISignatures exported declarations from
// non-test source files, in tree order.
func apiSignatures(t *tree) []string {
	out := []string{}
	for _, f := range t.files {
		re, ok := signaturePatterns[strings.ToLower(path.Ext(f))]
		if !ok || isTestFile(f) {
			continue
		}
		data, err := t.readFile(f)
		if err != nil {
			continue
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimRight(sc.Text(), " \t")
			if !re.MatchString(line) {
				continue
			}
			line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(line, "{"), ":"))
			out = append(out, line)
			if len(out) >= maxAPISignatures {
				return out
			}
		}
	}
	return out
}

func isTestFile(f string) bool {
	base := path.Base(f)
	return strings.HasSuffix(base, "_test.go") ||
		strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.HasPrefix(base, "test_")
}
