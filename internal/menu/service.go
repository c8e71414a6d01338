package menu

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Extractor turns menu source material into a structured Record.
// The LLM client implements it; failures are contained there, so a
// returned Record may carry an Error field and zero items.
type Extractor interface {
	ExtractFromPDF(ctx context.Context, pdfData []byte, restaurantName string) (*Record, error)
	ExtractFromText(ctx context.Context, text, restaurantName string) (*Record, error)
}

// TextReader extracts plain text from PDF bytes for the text-based
// fallback path.
type TextReader interface {
	Text(pdfData []byte) (string, error)
}

// Archive persists the raw uploaded PDF. The local disk archive is
// always present; an S3-compatible mirror is added when configured.
type Archive interface {
	Store(ctx context.Context, restaurantName string, data []byte) (string, error)
}

type Service struct {
	store     Store
	extractor Extractor
	reader    TextReader
	archives  []Archive
	log       *zap.Logger
}

func NewService(store Store, extractor Extractor, reader TextReader, archives []Archive, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		reader:    reader,
		archives:  archives,
		log:       log,
	}
}

// Upload runs the whole ingestion pipeline: validate, archive the PDF,
// extract items with Gemini (direct PDF first, text fallback second)
// and overwrite the restaurant's record. Re-uploading the same name
// replaces the previous record entirely.
func (s *Service) Upload(ctx context.Context, restaurantName, filename string, data []byte) (*Record, error) {
	if restaurantName == "" {
		return nil, errors.New("restaurant_name is required")
	}
	if err := ValidateFileExtension(filename); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}

	for _, archive := range s.archives {
		location, err := archive.Store(ctx, restaurantName, data)
		if err != nil {
			// Archiving is best-effort for mirrors; extraction still runs.
			s.log.Warn("pdf archive failed",
				zap.String("restaurant", restaurantName), zap.Error(err))
			continue
		}
		s.log.Debug("pdf archived",
			zap.String("restaurant", restaurantName),
			zap.String("location", location))
	}

	record := s.extract(ctx, restaurantName, data)

	if err := s.store.Save(restaurantName, record); err != nil {
		return nil, fmt.Errorf("save menu: %w", err)
	}

	s.log.Info("menu uploaded",
		zap.String("restaurant", restaurantName),
		zap.Int("items", record.TotalItems),
		zap.String("method", record.ExtractionMethod))
	return record, nil
}

// extract tries the direct-PDF path and falls back to local text
// extraction plus the text path. It never fails: the worst case is a
// record with zero items and an error string.
func (s *Service) extract(ctx context.Context, restaurantName string, data []byte) *Record {
	record, err := s.extractor.ExtractFromPDF(ctx, data, restaurantName)
	if err == nil && record.TotalItems > 0 {
		return record
	}
	if err != nil {
		s.log.Warn("direct pdf extraction failed",
			zap.String("restaurant", restaurantName), zap.Error(err))
	}

	text, terr := s.reader.Text(data)
	if terr != nil || text == "" {
		s.log.Warn("pdf text extraction failed",
			zap.String("restaurant", restaurantName), zap.Error(terr))
		if record != nil {
			return record
		}
		return &Record{
			RestaurantName: restaurantName,
			Items:          []Item{},
			TotalItems:     0,
			Error:          errString(err, terr),
		}
	}

	textRecord, err := s.extractor.ExtractFromText(ctx, text, restaurantName)
	if err != nil {
		s.log.Warn("text extraction failed",
			zap.String("restaurant", restaurantName), zap.Error(err))
		if record != nil {
			return record
		}
		return &Record{
			RestaurantName: restaurantName,
			Items:          []Item{},
			TotalItems:     0,
			Error:          err.Error(),
		}
	}

	// Prefer whichever pass found items.
	if textRecord.TotalItems == 0 && record != nil && record.TotalItems > 0 {
		return record
	}
	return textRecord
}

// Summary is the listing shape returned by GET /menus.
type Summary struct {
	RestaurantName string `json:"restaurant_name"`
	Items          []Item `json:"items"`
	TotalItems     int    `json:"total_items"`
}

// ListMenus loads every stored record. Unreadable files are skipped,
// matching the behavior of a listing that should never hard-fail.
func (s *Service) ListMenus() ([]Summary, error) {
	names, err := s.store.ListNames()
	if err != nil {
		return nil, err
	}

	menus := []Summary{}
	for _, name := range names {
		record, err := s.store.Load(name)
		if err != nil {
			s.log.Warn("skipping unreadable menu",
				zap.String("restaurant", name), zap.Error(err))
			continue
		}
		menus = append(menus, Summary{
			RestaurantName: name,
			Items:          record.Items,
			TotalItems:     record.TotalItems,
		})
	}
	return menus, nil
}

func errString(errs ...error) string {
	for _, err := range errs {
		if err != nil {
			return err.Error()
		}
	}
	return "extraction produced no items"
}
