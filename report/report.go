// Package report renders solver input and output for a terminal.
//
// Vectors are shown as columns: row i of a table is coordinate i of every
// vector. Every number is shown as the simplest fraction within the
// configured denominator bound. A Printer writes plain text aligned by
// display width, or pterm tables when styled.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/katalvlaran/dfsolve/rational"
	"github.com/katalvlaran/dfsolve/subspace"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
)

// Framing selects the heading of a subspace table.
type Framing int

const (
	// Decohering frames vectors of the subspace reached by noise.
	Decohering Framing = iota

	// DecoherenceFree frames vectors of the protected subspace.
	DecoherenceFree
)

// Headings and verdicts.
const (
	headingDecohering = "These are the subspaces affected by decoherence:"
	headingDFS        = "This is the Decoherence Free Subspace:"
	noteSquared       = "Terms are all squared because can't do surds"
	verdictNone       = "There is no decoherence free subspace."
	verdictSome       = "There is a decoherence free subspace of dimension %d."
	cellSep           = " | "
)

// Heading returns the line printed above a subspace table.
func (f Framing) Heading() string {
	if f == DecoherenceFree {
		return headingDFS
	}

	return headingDecohering
}

// prefix names the columns of a styled table.
func (f Framing) prefix() string {
	if f == DecoherenceFree {
		return "d"
	}

	return "b"
}

// Option configures a Printer.
type Option func(*Printer)

// WithStyle switches to pterm tables and colored headings.
func WithStyle(styled bool) Option {
	return func(p *Printer) { p.styled = styled }
}

// WithMaxDenominator bounds the fractions shown for float cells and vector entries.
// Values below 1 are ignored.
func WithMaxDenominator(d int64) Option {
	return func(p *Printer) {
		if d >= 1 {
			p.maxDen = d
		}
	}
}

// Printer writes reports to one writer.
type Printer struct {
	w      io.Writer
	styled bool
	maxDen int64
}

// New returns a plain Printer on w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, maxDen: rational.DefaultMaxDenominator}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Subspace writes vectors as the columns of a table under the framing heading.
func Subspace(w io.Writer, vectors []rational.Vector, f Framing) error {
	return New(w).Subspace(vectors, f)
}

// Summary writes the one-line verdict for res.
func Summary(w io.Writer, res *subspace.Result) error {
	return New(w).Summary(res)
}

// Subspace writes vectors as the columns of a table under the framing heading.
// Entries are shown as the closest fraction within the printer's denominator
// bound; the vectors themselves are not changed.
func (p *Printer) Subspace(vectors []rational.Vector, f Framing) error {
	cols := make([][]string, len(vectors))
	for j, v := range vectors {
		cols[j] = make([]string, len(v))
		for i, r := range v {
			cols[j][i] = rational.Format(rational.SnapRat(r, p.maxDen))
		}
	}
	header := make([]string, len(vectors))
	for j := range header {
		header[j] = fmt.Sprintf("%s%d", f.prefix(), j+1)
	}

	heading := f.Heading()
	if p.styled && f == DecoherenceFree {
		heading = pterm.LightMagenta(heading)
	}

	return p.table(heading, header, transpose(cols))
}

// Summary writes the one-line verdict for res.
func (p *Printer) Summary(res *subspace.Result) error {
	line := verdictNone
	if res.HasDFS() {
		line = fmt.Sprintf(verdictSome, res.DFSDim)
	}
	if p.styled {
		if res.HasDFS() {
			line = pterm.LightGreen(line)
		} else {
			line = pterm.Yellow(line)
		}
	}
	_, err := fmt.Fprintln(p.w, line)

	return err
}

// Coupling writes Q symbolically: "w" on the diagonal, "d" for a coupling,
// any other value as a fraction. labels, when of length N, head the columns.
func (p *Printer) Coupling(q matrix.Matrix, labels []string) error {
	if err := matrix.ValidateSquare(q); err != nil {
		return fmt.Errorf("Coupling: %w", err)
	}
	n := q.Rows()
	rows := make([][]string, n)
	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]string, n)
		for j = 0; j < n; j++ {
			x, err := q.At(i, j)
			if err != nil {
				return fmt.Errorf("Coupling: %w", err)
			}
			switch {
			case i == j:
				rows[i][j] = "w"
			case x == 1:
				rows[i][j] = "d"
			default:
				if rows[i][j], err = p.cell(x); err != nil {
					return fmt.Errorf("Coupling: %w", err)
				}
			}
		}
	}
	if len(labels) != n {
		labels = nil
	}

	return p.table("Q =", labels, rows)
}

// NoiseVectors writes V₀ with one vector per column.
func (p *Printer) NoiseVectors(v0 [][]float64) error {
	cols := make([][]string, len(v0))
	var err error
	for j, v := range v0 {
		cols[j] = make([]string, len(v))
		for i, x := range v {
			if cols[j][i], err = p.cell(x); err != nil {
				return fmt.Errorf("NoiseVectors: %w", err)
			}
		}
	}
	header := make([]string, len(v0))
	for j := range header {
		header[j] = fmt.Sprintf("v%d", j+1)
	}

	return p.table("V0 =", header, transpose(cols))
}

// Transform writes Aᵀ·Q·A and its element-wise square. An unverified
// transform is labelled approximate with its residual.
func (p *Printer) Transform(t *subspace.Transform) error {
	if t == nil {
		return nil
	}
	label := "Decoupled coupling matrix (verified):"
	if !t.Verified {
		label = fmt.Sprintf("Decoupled coupling matrix (approximate, residual %.3g):", t.Residual)
		if p.styled {
			label = pterm.Yellow(label)
		}
	}
	rows, err := p.matrixCells(t.T)
	if err != nil {
		return fmt.Errorf("Transform: %w", err)
	}
	if err = p.table(label, nil, rows); err != nil {
		return err
	}

	if rows, err = p.matrixCells(t.Squared); err != nil {
		return fmt.Errorf("Transform: %w", err)
	}

	return p.table(noteSquared, nil, rows)
}

// Result writes the complete report of a solve: verdict, decohering
// subspace, DFS when present and the transform when computed.
func (p *Printer) Result(res *subspace.Result) error {
	if err := p.Summary(res); err != nil {
		return err
	}
	if err := p.Subspace(res.Decohering, Decohering); err != nil {
		return err
	}
	if res.HasDFS() {
		if err := p.Subspace(res.DFS, DecoherenceFree); err != nil {
			return err
		}
	}

	return p.Transform(res.Transform)
}

// cell formats a float as its snapped fraction.
func (p *Printer) cell(x float64) (string, error) {
	r, err := rational.Snap(x, p.maxDen)
	if err != nil {
		return "", err
	}

	return rational.Format(r), nil
}

func (p *Printer) matrixCells(m matrix.Matrix) ([][]string, error) {
	rows := make([][]string, m.Rows())
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		rows[i] = make([]string, m.Cols())
		for j = 0; j < m.Cols(); j++ {
			x, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			if rows[i][j], err = p.cell(x); err != nil {
				return nil, err
			}
		}
	}

	return rows, nil
}

// table writes heading and the rows, either plain or as a pterm table.
func (p *Printer) table(heading string, header []string, rows [][]string) error {
	if _, err := fmt.Fprintln(p.w, heading); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if p.styled {
		return p.styledTable(header, rows)
	}

	_, err := io.WriteString(p.w, plainTable(rows))

	return err
}

func (p *Printer) styledTable(header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	if len(header) > 0 {
		data = append(data, header)
	}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.
		WithHasHeader(len(header) > 0).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)

	return err
}

// plainTable left-aligns every column to its widest cell, measured in
// terminal cells, and joins cells with " | ".
func plainTable(rows [][]string) string {
	widths := make([]int, 0)
	for _, row := range rows {
		for j, c := range row {
			if j == len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], runewidth.StringWidth(c))
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = runewidth.FillRight(c, widths[j])
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, cellSep), " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// transpose turns per-vector columns into table rows. Columns must share a length.
func transpose(cols [][]string) [][]string {
	if len(cols) == 0 {
		return nil
	}
	rows := make([][]string, len(cols[0]))
	for i := range rows {
		rows[i] = make([]string, len(cols))
		for j := range cols {
			rows[i][j] = cols[j][i]
		}
	}

	return rows
}
