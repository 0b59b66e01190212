package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	xerrors "xfollow/pkg/errors"
)

// pageSource is a document.Source whose markup can be swapped between ticks
type pageSource struct {
	mu     sync.Mutex
	markup string
	fail   bool
}

func (p *pageSource) Name() string { return "test-page" }

func (p *pageSource) Snapshot(ctx context.Context) (*html.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return nil, xerrors.New(xerrors.ErrorTypeSource, "page gone")
	}
	return html.Parse(strings.NewReader(p.markup))
}

func (p *pageSource) render(cells ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markup = "<main>" + strings.Join(cells, "") + "</main>"
}

func userCell(handle, name string) string {
	return fmt.Sprintf(`<div data-testid="UserCell"><a href="/%s"><span>%s</span></a></div>`, handle, name)
}
