// Package masker redacts detected secrets from captured step output
// before it reaches the terminal or any persisted log.
package masker

import (
	"bytes"
	"io"

	"github.com/zricethezav/gitleaks/v8/detect"
)

const replacement = "[MASKED]"

// Masker scrubs secrets from byte streams using the gitleaks default
// ruleset plus any explicitly known secret values (e.g. the forge token).
type Masker struct {
	detector *detect.Detector
	known    [][]byte
}

// New creates a masker. known values are always redacted even when no
// detector rule matches them.
func New(known ...string) (*Masker, error) {
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, err
	}

	m := &Masker{detector: d}
	for _, k := range known {
		if k != "" {
			m.known = append(m.known, []byte(k))
		}
	}
	return m, nil
}

// Redact returns data with every detected secret replaced.
func (m *Masker) Redact(data []byte) []byte {
	if m == nil || len(data) == 0 {
		return data
	}

	for _, k := range m.known {
		data = bytes.ReplaceAll(data, k, []byte(replacement))
	}

	hits := m.detector.DetectBytes(data)
	for _, h := range hits {
		if h.Secret == "" {
			continue
		}
		data = bytes.ReplaceAll(data, []byte(h.Secret), []byte(replacement))
	}
	return data
}

// Writer returns a writer that redacts line by line before forwarding
// to w. Partial lines are held until their newline arrives; call Flush
// when the stream ends.
func (m *Masker) Writer(w io.Writer) *LineWriter {
	return &LineWriter{masker: m, out: w}
}

// LineWriter is a line-buffered redacting writer.
type LineWriter struct {
	masker *Masker
	out    io.Writer
	buf    bytes.Buffer
}

// Write buffers p and forwards complete, redacted lines.
func (lw *LineWriter) Write(p []byte) (int, error) {
	lw.buf.Write(p)

	for {
		line, err := lw.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line: put it back and wait for more input.
			lw.buf.Write(line)
			break
		}
		if _, werr := lw.out.Write(lw.masker.Redact(line)); werr != nil {
			return len(p), werr
		}
	}
	return len(p), nil
}

// Flush redacts and forwards any buffered partial line.
func (lw *LineWriter) Flush() error {
	if lw.buf.Len() == 0 {
		return nil
	}
	rest := lw.buf.Bytes()
	lw.buf.Reset()
	_, err := lw.out.Write(lw.masker.Redact(rest))
	return err
}
