// Package sqlite provides SQLite database writing for scaled plots
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cleavviz/cleavviz/pkg/scale"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"

	// schemaVersion is written to HeaderTable
	schemaVersion = 1

	// labelSeparator joins tick labels in AxisTable
	labelSeparator = ";"
)

// Polarity values stored in SeriesTable
const (
	PolarityPositive = "+"
	PolarityNegative = "-"
)

// Writer handles writing scaled plots to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	plotStmt   *sql.Stmt
	seriesStmt *sql.Stmt
	axisStmt   *sql.Stmt
	plotID     int
	finalized  bool
	closed     bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		plotID:     1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.nextPlotID(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS PlotTable (
		PlotId INTEGER PRIMARY KEY,
		Name TEXT,
		Kind TEXT,
		LegendPos TEXT,
		LegendNeg TEXT,
		Positions INTEGER,
		Empty BOOL,
		MaxYPos DOUBLE,
		MaxYNeg DOUBLE,
		MaxScaledYPos DOUBLE,
		MaxScaledYNeg DOUBLE,
		NegativeScaleFactor DOUBLE,
		Degenerate BOOL
	);

	CREATE TABLE IF NOT EXISTS SeriesTable (
		PlotId INTEGER REFERENCES PlotTable(PlotId),
		RowIndex INTEGER,
		Label TEXT,
		LabelPos TEXT,
		LabelNeg TEXT,
		Polarity TEXT,
		blobDisplay BLOB,
		blobHover BLOB
	);

	CREATE TABLE IF NOT EXISTS AxisTable (
		PlotId INTEGER REFERENCES PlotTable(PlotId),
		AxisIndex INTEGER,
		Scale TEXT,
		RangeMin DOUBLE,
		RangeMax DOUBLE,
		blobTickValues BLOB,
		TickLabels TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// nextPlotID continues numbering after plots already stored in the file
func (w *Writer) nextPlotID() error {
	var maxID sql.NullInt64
	if err := w.db.QueryRow(`SELECT MAX(PlotId) FROM PlotTable`).Scan(&maxID); err != nil {
		return fmt.Errorf("failed to read plot ids: %w", err)
	}
	if maxID.Valid {
		w.plotID = int(maxID.Int64) + 1
	}
	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.plotStmt, err = w.db.Prepare(`
		INSERT INTO PlotTable (
			PlotId, Name, Kind, LegendPos, LegendNeg, Positions, Empty,
			MaxYPos, MaxYNeg, MaxScaledYPos, MaxScaledYNeg, NegativeScaleFactor, Degenerate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare plot statement: %w", err)
	}

	w.seriesStmt, err = w.db.Prepare(`
		INSERT INTO SeriesTable (
			PlotId, RowIndex, Label, LabelPos, LabelNeg, Polarity, blobDisplay, blobHover
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare series statement: %w", err)
	}

	w.axisStmt, err = w.db.Prepare(`
		INSERT INTO AxisTable (
			PlotId, AxisIndex, Scale, RangeMin, RangeMax, blobTickValues, TickLabels
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare axis statement: %w", err)
	}

	return nil
}

// WritePlot writes a single plot with its series and axes to the database.
// It returns the id assigned to the plot.
func (w *Writer) WritePlot(name string, p *scale.Plot) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("writer for %s is already closed", w.outputPath)
	}

	tx, err := w.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Handle optional dual-axis extents
	var maxYPos, maxYNeg, maxScaledYPos, maxScaledYNeg, factor interface{}
	degenerate := false
	if p.Extents != nil {
		maxYPos = p.Extents.MaxYPos
		maxYNeg = p.Extents.MaxYNeg
		maxScaledYPos = p.Extents.MaxScaledYPos
		maxScaledYNeg = p.Extents.MaxScaledYNeg
		factor = p.Extents.NegativeScaleFactor
		degenerate = p.Extents.Degenerate
	}

	_, err = tx.Stmt(w.plotStmt).Exec(
		w.plotID,         // PlotId
		name,             // Name
		string(p.Kind),   // Kind
		p.Legend[0],      // LegendPos
		p.Legend[1],      // LegendNeg
		len(p.Positions), // Positions
		p.Empty,          // Empty
		maxYPos,          // MaxYPos
		maxYNeg,          // MaxYNeg
		maxScaledYPos,    // MaxScaledYPos
		maxScaledYNeg,    // MaxScaledYNeg
		factor,           // NegativeScaleFactor
		degenerate,       // Degenerate
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plot: %w", err)
	}

	seriesStmt := tx.Stmt(w.seriesStmt)
	for i, e := range p.Entities {
		if err := insertSeries(seriesStmt, w.plotID, i, e, PolarityPositive, e.Positive); err != nil {
			return 0, err
		}
		if e.Negative != nil {
			if err := insertSeries(seriesStmt, w.plotID, i, e, PolarityNegative, *e.Negative); err != nil {
				return 0, err
			}
		}
	}

	axisStmt := tx.Stmt(w.axisStmt)
	for i, a := range p.Axes {
		labels := strings.Join(a.TickLabels, labelSeparator)
		_, err := axisStmt.Exec(
			w.plotID,                    // PlotId
			i,                           // AxisIndex
			string(a.Scale),             // Scale
			a.Range[0],                  // RangeMin
			a.Range[1],                  // RangeMax
			encodeFloat64(a.TickValues), // blobTickValues
			labels,                      // TickLabels
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert axis %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit plot %s: %w", name, err)
	}

	id := w.plotID
	w.plotID++
	return id, nil
}

func insertSeries(stmt *sql.Stmt, plotID, row int, e scale.ScaledEntity, polarity string, s scale.ScaledSeries) error {
	_, err := stmt.Exec(
		plotID,                   // PlotId
		row,                      // RowIndex
		e.Label,                  // Label
		e.LabelPos,               // LabelPos
		e.LabelNeg,               // LabelNeg
		polarity,                 // Polarity
		encodeFloat64(s.Display), // blobDisplay
		encodeFloat64(s.Hover),   // blobHover
	)
	if err != nil {
		return fmt.Errorf("failed to insert series %s (%s): %w", e.Label, polarity, err)
	}
	return nil
}

// encodeFloat64 encodes values as a little-endian float64 blob. Missing
// values keep their NaN bit pattern.
func encodeFloat64(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeFloat64 decodes a blob written by the writer.
func DecodeFloat64(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(blob))
	}
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values, nil
}

// Finalize records the run in HeaderTable and closes the database. The
// table holds a single row that every finalized run refreshes.
func (w *Writer) Finalize() error {
	if w.finalized {
		return nil
	}
	if w.closed {
		return fmt.Errorf("writer for %s is already closed", w.outputPath)
	}
	w.finalized = true

	if err := w.writeHeader(); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// writeHeader updates the header row, inserting it on first use
func (w *Writer) writeHeader() error {
	created := time.Now().Format(headerDateFormat)
	description := "cleavviz scaled plots"

	res, err := w.db.Exec(`
		UPDATE HeaderTable SET version = ?, CreationDate = ?, Description = ?
	`, schemaVersion, created, description)
	if err != nil {
		return fmt.Errorf("failed to update header: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update header: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description)
		VALUES (?, ?, ?)
	`, schemaVersion, created, description)
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}
	return nil
}

// Close releases the database without writing the header. Plots already
// written stay committed. Closing a finalized writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.plotStmt, w.seriesStmt, w.axisStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
