package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	xerrors "xfollow/pkg/errors"
	"xfollow/pkg/logger"
	"xfollow/pkg/models"
	"xfollow/pkg/storage"
	"xfollow/pkg/store"
)

// DefaultFileName is the name of the recovery artifact
const DefaultFileName = "following_recovery.json"

// Exporter reconciles the collected sets and writes the recovery file
type Exporter struct {
	storage        *storage.Manager
	fileName       string
	profileBaseURL string
	now            func() time.Time
	logger         logger.Logger
}

// Option configures an Exporter
type Option func(*Exporter)

// WithClock overrides the time source used for record timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithFileName overrides the artifact name
func WithFileName(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.fileName = name
		}
	}
}

// NewExporter creates an exporter writing into storageMgr
func NewExporter(storageMgr *storage.Manager, profileBaseURL string, log logger.Logger, opts ...Option) *Exporter {
	if log == nil {
		log = logger.GetLogger()
	}
	e := &Exporter{
		storage:        storageMgr,
		fileName:       DefaultFileName,
		profileBaseURL: profileBaseURL,
		now:            time.Now,
		logger:         log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export reconciles following against followers and writes the result.
// The report is returned even when writing fails so callers can inspect it.
func (e *Exporter) Export(following, followers *store.RecordSet) (Report, string, error) {
	report := Reconcile(following, followers, e.now(), e.profileBaseURL)

	e.logger.InfoWithFields("reconciled follow lists", map[string]interface{}{
		"following": report.FollowingCount,
		"followers": report.FollowersCount,
		"mutual":    report.MutualCount,
		"records":   len(report.Records),
	})

	data, err := Encode(report.Records, "  ")
	if err != nil {
		return report, "", xerrors.Wrap(xerrors.ErrorTypeExport, err, "failed to encode recovery records")
	}

	path, err := e.storage.SaveArtifact(e.fileName, bytes.NewReader(data))
	if err != nil {
		e.logger.WithError(err).Error("failed to write recovery file")
		return report, "", xerrors.Wrap(xerrors.ErrorTypeExport, err, fmt.Sprintf("failed to write %s", e.fileName))
	}

	e.logger.WithField("path", path).Info("recovery file written")
	return report, path, nil
}

// Encode renders records as an indented JSON array without HTML escaping.
// A nil or empty slice encodes as [].
func Encode(records []models.OutputRecord, indent string) ([]byte, error) {
	if records == nil {
		records = []models.OutputRecord{}
	}
	return encodeIndented(records, indent)
}

func encodeIndented(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
