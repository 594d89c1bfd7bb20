package qa

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// PackLoader reads and parses one offline pack. Loaders are invoked lazily,
// at most once per process for a cached key.
type PackLoader func() (*Pack, error)

// Registry maps a pack key ("{classFolder}/subjects/{subjectID}.json") to its loader.
type Registry map[string]PackLoader

// classFolderMap translates the numeric class ids used by onboarding into the
// folder labels the packs tree is organised by.
var classFolderMap = map[string]string{
	"5":  "5th",
	"6":  "6th",
	"7":  "7th",
	"8":  "8th",
	"9":  "9th",
	"10": "10th",
	"11": "11th",
	"12": "12th",
}

const fallbackClassFolder = "8th"

// ClassFolder maps a class id to its folder label. Ids outside the known set
// keep an existing "th" suffix or gain one.
func ClassFolder(classID string) string {
	trimmed := strings.TrimSpace(classID)
	if folder, ok := classFolderMap[trimmed]; ok {
		return folder
	}
	if strings.HasSuffix(trimmed, "th") {
		return trimmed
	}
	return trimmed + "th"
}

func PackKey(classFolder, subjectID string) string {
	return fmt.Sprintf("%s/subjects/%s.json", classFolder, subjectID)
}

// ResolveKey picks the pack key for a class/subject pair: the preferred key if
// registered, otherwise the class-8 fallback if registered, otherwise the
// preferred name so the caller can report what is missing. No subject means no
// key at all.
func (r Registry) ResolveKey(classID, subjectID string) string {
	if subjectID == "" {
		return ""
	}

	fallback := PackKey(fallbackClassFolder, subjectID)
	preferred := ""
	if strings.TrimSpace(classID) != "" {
		preferred = PackKey(ClassFolder(classID), subjectID)
	}

	if preferred != "" {
		if _, ok := r[preferred]; ok {
			return preferred
		}
	}
	if _, ok := r[fallback]; ok {
		return fallback
	}
	if preferred != "" {
		return preferred
	}
	return fallback
}

// BuildRegistry walks the packs root and registers a lazy file loader for
// every {classFolder}/subjects/{subject}.json it finds. The files themselves
// are not read until a matcher first asks for them.
func BuildRegistry(packsDir string) (Registry, error) {
	registry := make(Registry)

	err := filepath.WalkDir(packsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		rel, err := filepath.Rel(packsDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if filepath.Base(filepath.Dir(key)) != "subjects" {
			return nil
		}

		registry[key] = fileLoader(path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[QA] registered %d offline packs from %s", len(registry), packsDir)
	return registry, nil
}

func fileLoader(path string) PackLoader {
	return func() (*Pack, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParsePack(data)
	}
}
