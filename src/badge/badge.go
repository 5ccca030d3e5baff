// Package badge renders a build-status SVG badge: left cell the status
// context, right cell the terminal state, colored by outcome.
package badge

import (
	"fmt"
	"os"

	"github.com/sofmeright/curtaincall/src/status"
)

// Badge is one label/value pair to render.
type Badge struct {
	Label string
	Value string
	Color string // CSS color for the value cell
}

// StateColor maps a terminal state to its badge color.
func StateColor(s status.State) string {
	switch s {
	case status.Success:
		return "#4c1" // brightgreen
	case status.Failure, status.Error:
		return "#e05d44" // red
	case status.Cancelled:
		return "#dfb317" // yellow
	default:
		return "#9f9f9f"
	}
}

// Engine renders badges with a text measurer.
type Engine struct {
	measurer Measurer
}

// NewEngine creates a badge engine. fontPath may be empty, in which
// case widths are estimated from the point size instead of measured.
func NewEngine(fontPath string, fontSize float64) (*Engine, error) {
	if fontSize <= 0 {
		fontSize = 11
	}

	if fontPath == "" {
		return &Engine{measurer: heuristicMeasurer{size: fontSize}}, nil
	}

	m, err := LoadFontFile(fontPath, fontSize)
	if err != nil {
		return nil, err
	}
	return &Engine{measurer: m}, nil
}

// Render produces the badge SVG.
func (e *Engine) Render(b Badge) string {
	if b.Color == "" {
		b.Color = "#9f9f9f"
	}
	return e.renderSVG(b)
}

// WriteFile renders the badge and writes it to path.
func (e *Engine) WriteFile(path string, b Badge) error {
	svg := e.Render(b)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing badge %s: %w", path, err)
	}
	return nil
}
