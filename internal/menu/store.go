package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound distinguishes a restaurant that was never saved from a
// storage read that actually failed.
var ErrNotFound = errors.New("menu not found")

// Store defines all persistence operations for menus.
type Store interface {
	Save(name string, record *Record) error
	Load(name string) (*Record, error)
	ListNames() ([]string, error)
	SearchItems(name, query string) ([]Item, error)
	SearchAll(query string) ([]TaggedItem, error)
	Delete(name string) error
	ClearAll() error
}

// FileStore keeps one JSON file per restaurant under extractedDir and
// the uploaded PDF under menusDir. Filename = sanitized restaurant name.
// A single RWMutex serializes whole-file reads and writes; last writer
// wins across processes.
type FileStore struct {
	extractedDir string
	menusDir     string
	mu           sync.RWMutex
	log          *zap.Logger
}

func NewFileStore(extractedDir, menusDir string, log *zap.Logger) *FileStore {
	return &FileStore{
		extractedDir: extractedDir,
		menusDir:     menusDir,
		log:          log,
	}
}

// sanitizeName keeps restaurant names filesystem-safe. Path separators
// and parent references would otherwise escape the data directory.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", "\x00", "")
	return replacer.Replace(name)
}

func (s *FileStore) jsonPath(name string) string {
	return filepath.Join(s.extractedDir, sanitizeName(name)+".json")
}

// PDFPath returns where the uploaded PDF for a restaurant lives.
func (s *FileStore) PDFPath(name string) string {
	return filepath.Join(s.menusDir, sanitizeName(name)+".pdf")
}

func (s *FileStore) Save(name string, record *Record) error {
	if record == nil {
		return errors.New("nil record")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal menu: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.jsonPath(name), data, 0o644); err != nil {
		return fmt.Errorf("write menu: %w", err)
	}

	s.log.Debug("menu saved",
		zap.String("restaurant", name),
		zap.Int("items", len(record.Items)))
	return nil
}

func (s *FileStore) Load(name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.jsonPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read menu: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return &record, nil
}

func (s *FileStore) ListNames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.extractedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list menus: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

// SearchItems matches query as a case-insensitive substring over item
// name and description. An empty query returns all items. A missing
// restaurant yields an empty result, not an error.
func (s *FileStore) SearchItems(name, query string) ([]Item, error) {
	record, err := s.Load(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Item{}, nil
		}
		return nil, err
	}

	q := strings.ToLower(query)
	results := []Item{}
	for _, item := range record.Items {
		if q == "" ||
			strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			results = append(results, item)
		}
	}
	return results, nil
}

// SearchAll fans SearchItems out over every known restaurant and tags
// each hit with the restaurant it came from.
func (s *FileStore) SearchAll(query string) ([]TaggedItem, error) {
	names, err := s.ListNames()
	if err != nil {
		return nil, err
	}

	all := []TaggedItem{}
	for _, name := range names {
		items, err := s.SearchItems(name, query)
		if err != nil {
			s.log.Warn("search skipped restaurant",
				zap.String("restaurant", name), zap.Error(err))
			continue
		}
		for _, item := range items {
			all = append(all, TaggedItem{Item: item, Restaurant: name})
		}
	}
	return all, nil
}

// Delete removes both the extracted JSON and the uploaded PDF.
func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.jsonPath(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete menu: %w", err)
	}

	// The PDF may legitimately be absent (text-only imports).
	if err := os.Remove(s.PDFPath(name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("delete pdf failed", zap.String("restaurant", name), zap.Error(err))
	}
	return nil
}

// ClearAll removes every extracted JSON file and every uploaded PDF.
func (s *FileStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := removeByExt(s.extractedDir, ".json"); err != nil {
		return err
	}
	return removeByExt(s.menusDir, ".pdf")
}

func removeByExt(dir, ext string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// DataSize totals the bytes stored under both data directories.
// Used by the system stats endpoint; failures are reported as zero.
func (s *FileStore) DataSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, dir := range []string{s.extractedDir, s.menusDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if info, err := entry.Info(); err == nil && !info.IsDir() {
				total += info.Size()
			}
		}
	}
	return total
}
