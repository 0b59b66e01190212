package collector

import (
	"context"

	"xfollow/pkg/document"
	"xfollow/pkg/extractor"
	"xfollow/pkg/logger"
)

// ScanResult summarizes one pass over the page
type ScanResult struct {
	Cells      int
	Parsed     int
	New        int
	BufferSize int
}

// Scanner reads all visible rows and adds unseen handles to the scan buffer
type Scanner struct {
	state  *State
	source document.Source
	marker string
	logger logger.Logger
}

// NewScanner creates a scanner over source writing into state's buffer
func NewScanner(state *State, source document.Source, marker string, log logger.Logger) *Scanner {
	if log == nil {
		log = state.logger
	}
	if marker == "" {
		marker = extractor.DefaultRowMarker
	}
	return &Scanner{
		state:  state,
		source: source,
		marker: marker,
		logger: log.WithField("source", source.Name()),
	}
}

// Scan performs one tick. It is safe to call on an unchanged page; the second
// call simply finds nothing new. A page that cannot be read counts as empty.
func (s *Scanner) Scan(ctx context.Context) ScanResult {
	doc, err := s.source.Snapshot(ctx)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Warn("page snapshot unavailable, skipping tick")
		return ScanResult{BufferSize: s.state.buffer.Len()}
	}

	cells := extractor.FindCells(doc, s.marker)
	result := ScanResult{Cells: len(cells)}

	for _, cell := range cells {
		rec := extractor.ParseUserCell(cell)
		if rec == nil {
			continue
		}
		result.Parsed++
		if s.state.buffer.PutIfAbsent(*rec) {
			result.New++
		}
	}
	result.BufferSize = s.state.buffer.Len()

	if result.New > 0 {
		s.logger.InfoWithFields("new records collected", map[string]interface{}{
			"new":    result.New,
			"buffer": result.BufferSize,
		})
	}

	return result
}
