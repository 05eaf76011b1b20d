package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour.TermRenderer is not safe for concurrent Render calls, so renderers
// are pooled per option set instead of shared.
var pools sync.Map // map[Options]*sync.Pool

func poolFor(opts Options) *sync.Pool {
	if p, ok := pools.Load(opts); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(opts, &sync.Pool{})
	return p.(*sync.Pool)
}

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	pool := poolFor(opts)

	r, _ := pool.Get().(*glamour.TermRenderer)
	if r == nil {
		var err error
		r, err = newRenderer(opts)
		if err != nil {
			return "", err
		}
	}
	defer pool.Put(r)

	return r.Render(content)
}

// Message renders an agent message, falling back to the raw text when
// markdown rendering fails. Trailing newlines added by glamour are removed.
func Message(text string, opts Options) string {
	rendered, err := Markdown(text, opts)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("invalid render width %d", opts.Width)
	}

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops all pooled renderers (useful for testing).
func ClearCache() {
	pools.Range(func(key, _ any) bool {
		pools.Delete(key)
		return true
	})
}
