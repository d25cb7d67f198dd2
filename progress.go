package main

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// progressSurface counts written pixels and reports completion on a
// terminal. Refresh only signals; a separate goroutine does the printing
// so a slow terminal never holds up a render worker.
type progressSurface struct {
	renderer.Surface
	written atomic.Int64
	total   int64
	out     io.Writer

	pending chan struct{}
	done    chan struct{}
	shown   int64 // last printed percent, owned by the printing goroutine
}

func newProgressSurface(surface renderer.Surface, total int, out io.Writer) *progressSurface {
	p := &progressSurface{
		Surface: surface,
		total:   int64(total),
		out:     out,
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
		shown:   -1,
	}
	go p.print()
	return p
}

func (p *progressSurface) SetRGB24(x, y int, c uint32) {
	p.Surface.SetRGB24(x, y, c)
	p.written.Add(1)
}

// Refresh asks for the progress line to be rewritten. Requests made while
// one is pending collapse into it.
func (p *progressSurface) Refresh() {
	select {
	case p.pending <- struct{}{}:
	default:
	}
}

// Close prints the final progress line and waits for the printer to exit.
// Refresh must not be called after Close.
func (p *progressSurface) Close() {
	close(p.pending)
	<-p.done
}

func (p *progressSurface) print() {
	defer close(p.done)
	for range p.pending {
		p.show()
	}
	p.show()
	fmt.Fprintln(p.out)
}

func (p *progressSurface) show() {
	percent := p.written.Load() * 100 / p.total
	if percent == p.shown {
		return
	}
	p.shown = percent
	fmt.Fprintf(p.out, "\rRendering... %3d%%", percent)
}

// isTerminal reports whether progress lines would reach a person
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
