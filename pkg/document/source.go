// Package document provides the read side of the rendered page: each call to
// Snapshot returns the tree as it looks right now.
package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	xerrors "xfollow/pkg/errors"
)

// Source yields the current state of a rendered page
type Source interface {
	Snapshot(ctx context.Context) (*html.Node, error)
	Name() string
}

// FileSource re-reads an HTML snapshot file on every call. The file is expected
// to be overwritten externally while the list is being scrolled. A read that
// does not reach the closing body or html tag is rejected as incomplete.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.path
}

// Snapshot reads and parses the file
func (s *FileSource) Snapshot(ctx context.Context) (*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrorTypeSource, err, fmt.Sprintf("failed to read %s", s.path))
	}
	// caught mid-save; the tail of the last row may be cut short
	if !complete(data) {
		return nil, xerrors.New(xerrors.ErrorTypeSource, fmt.Sprintf("%s is incomplete", s.path))
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrorTypeSource, err, fmt.Sprintf("failed to parse %s", s.path))
	}

	return doc, nil
}

// complete reports whether the markup reaches the end of the document
func complete(data []byte) bool {
	lower := bytes.ToLower(data)
	return bytes.Contains(lower, []byte("</body>")) || bytes.Contains(lower, []byte("</html>"))
}

// StaticSource always returns the same tree
type StaticSource struct {
	name string
	doc  *html.Node
}

// NewStaticSource wraps an already-parsed tree
func NewStaticSource(name string, doc *html.Node) *StaticSource {
	return &StaticSource{name: name, doc: doc}
}

// ParseString parses markup into a StaticSource
func ParseString(name, markup string) (*StaticSource, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrorTypeSource, err, "failed to parse markup")
	}
	return NewStaticSource(name, doc), nil
}

// Name returns the label given at construction
func (s *StaticSource) Name() string {
	return s.name
}

// Snapshot returns the wrapped tree
func (s *StaticSource) Snapshot(ctx context.Context) (*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.doc, nil
}
