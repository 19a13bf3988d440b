package introspect

import (
	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

const (
	// structureDepth is the deepest level reported in the structure listing.
	structureDepth = 3
	// structureMaxFiles caps the number of files reported.
	structureMaxFiles = 200
)

// Structure lists the project's directories and files down to structureDepth,
// plus the detected entry files.
func Structure(root string) (metadata.Structure, error) {
	t, err := scanTree(root)
	if err != nil {
		return metadata.Structure{}, err
	}

	s := metadata.Structure{
		Directories: []string{},
		Files:       []string{},
		MainFiles:   t.mainFiles(),
	}
	for _, d := range t.dirs {
		if depth(d) <= structureDepth {
			s.Directories = append(s.Directories, d)
		}
	}
	for _, f := range t.files {
		if len(s.Files) >= structureMaxFiles {
			break
		}
		if depth(f) <= structureDepth {
			s.Files = append(s.Files, f)
		}
	}
	return s, nil
}
