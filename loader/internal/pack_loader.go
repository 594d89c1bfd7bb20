package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sahayak/qa"
	"sahayak/types"
)

// PackLoader ingests dropped knowledge-pack JSON files: it validates them,
// installs them into the packs tree the API serves from, and reports each one
// as a download item. Source files are named "<classFolder>__<subjectID>.json".
type PackLoader struct {
	cfg types.Config

	FileMutex       sync.Mutex
	FileFirstSeen   map[string]time.Time
	FilesProcessing map[string]bool
}

func NewPackLoader(cfg types.Config) *PackLoader {
	createDirectories(cfg.SourceDir, cfg.PacksDir, cfg.ArchiveDir, cfg.BadDir)
	return &PackLoader{
		cfg:             cfg,
		FileFirstSeen:   make(map[string]time.Time),
		FilesProcessing: make(map[string]bool),
	}
}

func createDirectories(dirs ...string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("error to create directory %s: %s\n", dir, err)
		}
	}
}

// WatchFile polls the source directory and hands over files that have not
// changed for the configured settle time. A file already in processing is
// skipped until it leaves the directory.
func (l *PackLoader) WatchFile(ctx context.Context, fileChan chan<- string) {
	fmt.Printf("Start monitoring folder: %s\n", l.cfg.SourceDir)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer fmt.Println("Pack watcher stopped and cleaned up")

	for {
		if ctx.Err() != nil {
			fmt.Println("Stopping pack watcher (pre-check)...")
			return
		}

		select {
		case <-ctx.Done():
			fmt.Println("Stopping pack watcher (context cancelled)...")
			return
		case <-ticker.C:
			files, err := os.ReadDir(l.cfg.SourceDir)
			if err != nil {
				fmt.Printf("error while reading source directory: %s\n", err)
				continue
			}

			currentFiles := make(map[string]bool)

			for _, file := range files {
				if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
					continue
				}

				filePath := filepath.Join(l.cfg.SourceDir, file.Name())
				currentFiles[filePath] = true

				l.FileMutex.Lock()
				if l.FilesProcessing[filePath] {
					l.FileMutex.Unlock()
					continue
				}

				if _, exists := l.FileFirstSeen[filePath]; !exists {
					l.FileFirstSeen[filePath] = time.Now()
					fmt.Printf("New pack detected: %s\n", filePath)
					l.FileMutex.Unlock()
					continue
				}

				firstSeen := l.FileFirstSeen[filePath]
				l.FileMutex.Unlock()

				if time.Since(firstSeen) > l.cfg.MonitoringTime {
					fmt.Printf("The pack %s has settled for %v. Start processing...\n", filePath, l.cfg.MonitoringTime)

					l.FileMutex.Lock()
					l.FilesProcessing[filePath] = true
					l.FileMutex.Unlock()

					select {
					case fileChan <- filePath:
					case <-ctx.Done():
						return
					}
				}
			}

			// Forget files removed from the directory so a re-drop is seen as new.
			l.FileMutex.Lock()
			for path := range l.FileFirstSeen {
				if !currentFiles[path] {
					delete(l.FileFirstSeen, path)
					delete(l.FilesProcessing, path)
				}
			}
			l.FileMutex.Unlock()
		}
	}
}

// ProcessFile validates and installs each incoming pack, emitting one
// download item per file. Bad packs go to the bad directory with a failed item.
func (l *PackLoader) ProcessFile(ctx context.Context, fileChan <-chan string, itemChan chan<- *types.DownloadItem) {
	defer close(itemChan)

	for {
		select {
		case <-ctx.Done():
			return
		case filePath, ok := <-fileChan:
			if !ok {
				return
			}

			item, err := l.installPack(filePath)
			if err != nil {
				fmt.Printf("[LOADER] bad pack %s: %s\n", filePath, err)
				l.MoveToArchive(filePath, 1)
			} else {
				l.MoveToArchive(filePath, 0)
			}

			select {
			case itemChan <- item:
			case <-ctx.Done():
				return
			}
		}
	}
}

// installPack parses the pack and copies it into the packs tree under
// {classFolder}/subjects/{subjectID}.json. It always returns an item; on
// failure the item carries the failed status.
func (l *PackLoader) installPack(filePath string) (*types.DownloadItem, error) {
	name := strings.TrimSuffix(filepath.Base(filePath), ".json")
	classFolder, subjectID, ok := strings.Cut(name, "__")

	item := &types.DownloadItem{
		ID:     name,
		Title:  name,
		Status: types.DownloadFailed,
	}

	if !ok || classFolder == "" || subjectID == "" {
		return item, fmt.Errorf("file name %q is not <classFolder>__<subjectID>.json", filepath.Base(filePath))
	}
	item.ID = qa.PackKey(classFolder, subjectID)
	item.Title = fmt.Sprintf("%s (%s)", subjectID, classFolder)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return item, err
	}
	item.SizeLabel = sizeLabel(len(data))

	pack, err := qa.ParsePack(data)
	if err != nil {
		return item, err
	}

	concepts := pack.Flatten()
	if len(concepts) == 0 {
		return item, fmt.Errorf("pack has no concepts")
	}

	target := filepath.Join(l.cfg.PacksDir, classFolder, "subjects", subjectID+".json")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return item, err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return item, err
	}

	fmt.Printf("[LOADER] installed %s: %d chapters, %d concepts, %s\n",
		item.ID, len(pack.Chapters), len(concepts), item.SizeLabel)

	item.Status = types.DownloadDone
	item.Progress = 1
	return item, nil
}

// MoveToArchive moves a processed source file away; code 0 means archive,
// anything else the bad directory.
func (l *PackLoader) MoveToArchive(filePath string, code int) {
	targetDir := l.cfg.ArchiveDir
	if code != 0 {
		targetDir = l.cfg.BadDir
	}

	target := filepath.Join(targetDir, filepath.Base(filePath))
	if err := os.Rename(filePath, target); err != nil {
		fmt.Printf("error to move %s to %s: %s\n", filePath, targetDir, err)
		return
	}

	l.FileMutex.Lock()
	delete(l.FileFirstSeen, filePath)
	delete(l.FilesProcessing, filePath)
	l.FileMutex.Unlock()
}

func sizeLabel(bytes int) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.0f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.0f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
