// Package pdf renders a generated report into a downloadable PDF.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"
)

// ErrEncoding means the report contained characters the core PDF fonts
// cannot represent and the exporter was configured not to substitute.
var ErrEncoding = errors.New("unsupported characters in report text")

// Policy decides what happens to characters outside the encoder's
// character set.
type Policy int

const (
	// Substitute maps known typographic characters to ASCII lookalikes
	// and drops anything still unrepresentable. Default.
	Substitute Policy = iota
	// Strict fails with ErrEncoding on the first unrepresentable rune.
	Strict
)

// Exporter renders report text onto A4 pages with fixed margins. The
// zero value is not usable; construct with NewExporter.
type Exporter struct {
	FontFamily string
	FontSize   float64
	LineHeight float64
	Margin     float64
	Policy     Policy

	// CreationDate pins the document metadata timestamp. Zero means
	// "now"; tests pin it for byte-identical output.
	CreationDate time.Time
}

func NewExporter() *Exporter {
	return &Exporter{
		FontFamily: "Helvetica",
		FontSize:   12,
		LineHeight: 6,
		Margin:     15,
	}
}

// Export renders the report into a well-formed PDF byte stream. The
// text content, modulo line wrapping and substituted characters,
// reproduces the report.
func (e *Exporter) Export(report string) ([]byte, error) {
	if strings.TrimSpace(report) == "" {
		return nil, errors.New("no report content provided")
	}

	text, err := Sanitize(report, e.Policy)
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	if !e.CreationDate.IsZero() {
		doc.SetCreationDate(e.CreationDate)
		doc.SetModificationDate(e.CreationDate)
	}
	doc.SetMargins(e.Margin, e.Margin, e.Margin)
	doc.SetAutoPageBreak(true, e.Margin)
	doc.AddPage()
	doc.SetFont(e.FontFamily, "", e.FontSize)
	doc.MultiCell(0, e.LineHeight, text, "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// substitutions maps typographic characters models like to emit onto
// ASCII equivalents the core fonts can encode.
var substitutions = map[rune]string{
	'‘':      "'", // left single quote
	'’':      "'", // right single quote
	'“':      `"`, // left double quote
	'”':      `"`, // right double quote
	'–':      "-", // en dash
	'—':      "-", // em dash
	'…':      "...",
	'\u00a0': " ", // no-break space
	'•':      "*", // bullet
	'×':      "x", // multiplication sign
	'−':      "-", // minus sign
}

// Sanitize maps report text onto the exporter's character set according
// to policy. ASCII input passes through unchanged under either policy.
//
// Under Substitute the text is NFKD-decomposed first, so accented
// letters keep their base letter ("Schrödinger" comes out as
// "Schrodinger"); the leftover combining marks and any other unmapped
// runes are dropped. Strict skips decomposition and fails on the first
// rune without an explicit rule.
func Sanitize(s string, policy Policy) (string, error) {
	if policy == Substitute {
		s = norm.NFKD.String(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		if sub, ok := substitutions[r]; ok {
			b.WriteString(sub)
			continue
		}
		if policy == Strict {
			return "", fmt.Errorf("%w: %q", ErrEncoding, r)
		}
		// Substitute policy: unmapped runes are dropped.
	}
	return b.String(), nil
}
