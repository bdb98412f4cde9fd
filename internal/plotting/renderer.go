// Package plotting renders production status and parameter series as static
// figures (gonum/plot: PDF, PNG or SVG) and interactive HTML (go-echarts).
package plotting

import (
	"fmt"
	"io"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/legend-exp/detinfo/internal/fsutil"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/report"
)

// Supported static figure formats.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
	FormatSVG = "svg"
)

// IsValidFormat reports whether f is a supported static figure format.
func IsValidFormat(f string) bool {
	switch f {
	case FormatPDF, FormatPNG, FormatSVG:
		return true
	}
	return false
}

// Renderer writes figures into Dir.
type Renderer struct {
	FS  fsutil.FileSystem
	Dir string
	// Format of static figures; empty means PDF.
	Format string
	// HTML additionally writes an interactive go-echarts page per figure.
	HTML bool
}

// NewRenderer returns a renderer writing PDFs to dir on the real filesystem.
func NewRenderer(dir string) *Renderer {
	return &Renderer{FS: fsutil.OSFileSystem{}, Dir: dir, Format: FormatPDF}
}

func (r *Renderer) format() string {
	if r.Format == "" {
		return FormatPDF
	}
	return r.Format
}

// Pie renders the production status chart and returns the written paths.
func (r *Renderer) Pie(s *report.Status) ([]string, error) {
	p, err := pieFigure(s)
	if err != nil {
		return nil, err
	}
	paths, err := r.save(p, report.PieFigureName, 6*vg.Inch, 6*vg.Inch)
	if err != nil {
		return paths, err
	}
	if r.HTML {
		path, err := r.writeHTML(report.PieFigureName, func(w io.Writer) error { return WritePieHTML(w, s) })
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Series renders parameters against detectors and returns the written paths.
func (r *Renderer) Series(set *report.SeriesSet) ([]string, error) {
	p, err := seriesFigure(set)
	if err != nil {
		return nil, err
	}
	name := report.FigureName(set.Types, set.Params, set.Averages)
	paths, err := r.save(p, name, 20*vg.Inch, 8*vg.Inch)
	if err != nil {
		return paths, err
	}
	if r.HTML {
		path, err := r.writeHTML(name, func(w io.Writer) error { return WriteSeriesHTML(w, set) })
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) ([]string, error) {
	if err := r.FS.MkdirAll(r.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	format := r.format()
	path := filepath.Join(r.Dir, name+"."+format)

	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	monitoring.Logf("Saving as %s", path)
	if err := r.writeFile(path, func(out io.Writer) error {
		_, err := wt.WriteTo(out)
		return err
	}); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (r *Renderer) writeHTML(name string, render func(io.Writer) error) (string, error) {
	path := filepath.Join(r.Dir, name+".html")
	monitoring.Logf("Saving as %s", path)
	return path, r.writeFile(path, render)
}

func (r *Renderer) writeFile(path string, fill func(io.Writer) error) error {
	f, err := r.FS.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
