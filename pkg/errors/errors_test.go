package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeConfig, "scan interval must be positive")
	assert.Equal(t, "config error: scan interval must be positive", err.Error())

	wrapped := Wrap(ErrorTypeSource, fs.ErrNotExist, "failed to read page.html")
	assert.Equal(t, "source error: failed to read page.html: file does not exist", wrapped.Error())
}

func TestWrapUnwrap(t *testing.T) {
	err := Wrap(ErrorTypeExport, fs.ErrPermission, "failed to write artifact")
	assert.True(t, stderrors.Is(err, fs.ErrPermission))

	outer := fmt.Errorf("export failed: %w", err)
	assert.True(t, IsType(outer, ErrorTypeExport))
	assert.False(t, IsType(outer, ErrorTypeSource))
	assert.Equal(t, ErrorTypeExport, TypeOf(outer))
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("boom")))
	assert.False(t, IsType(nil, ErrorTypeParsing))
}
