package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleavviz/cleavviz/pkg/filter"
	"github.com/cleavviz/cleavviz/pkg/reader/document"
	"github.com/cleavviz/cleavviz/pkg/scale"
	"github.com/cleavviz/cleavviz/pkg/writer/sqlite"
)

// emitFunc receives every successfully scaled plot
type emitFunc func(name string, p *scale.Plot) error

func runScale(cmd *cobra.Command, scaler scale.Scaler) error {
	// Open input file
	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader := document.NewReader(inFile)

	// Plots go either to the database or to stdout. Progress lines must not
	// mix with printed plots.
	progress := cmd.OutOrStdout()
	var emit emitFunc
	var writer *sqlite.Writer

	if dbFile != "" {
		writer, err = sqlite.NewWriter(dbFile)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer writer.Close()

		emit = func(name string, p *scale.Plot) error {
			_, err := writer.WritePlot(name, p)
			return err
		}
	} else {
		enc, err := newPlotEncoder(cmd.OutOrStdout(), outputFormat)
		if err != nil {
			return err
		}
		defer enc.Close()

		emit = enc.Encode
		progress = cmd.ErrOrStderr()
	}

	count, skipped, err := scaleDocuments(reader, scaler, selection(), emit, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if writer != nil {
		if err := writer.Finalize(); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
	}

	fmt.Fprintf(progress, "\nScaling complete!\n")
	fmt.Fprintf(progress, "Processed: %d plots\n", count)
	if skipped > 0 {
		fmt.Fprintf(progress, "Skipped: %d plots (validation errors)\n", skipped)
	}
	if writer != nil {
		fmt.Fprintf(progress, "Output: %s\n", dbFile)
	}

	return nil
}

// scaleDocuments filters and scales every document of the stream and hands
// the result to emit. Documents that fail validation are reported on warn and
// skipped.
func scaleDocuments(reader *document.Reader, scaler scale.Scaler, sel *filter.Config, emit emitFunc, warn io.Writer) (count, skipped int, err error) {
	for reader.Next() {
		doc := reader.Document()

		entities := sel.Apply(doc.Entities)
		if len(doc.Entities) > 0 && len(entities) == 0 {
			fmt.Fprintf(warn, "Warning: no entities of %s match the selection\n", doc.Name)
		}

		p, err := scaler.Scale(entities)
		if err != nil {
			fmt.Fprintf(warn, "Warning: invalid document %s: %v\n", doc.Name, err)
			skipped++
			continue
		}

		if err := emit(doc.Name, p); err != nil {
			return count, skipped, fmt.Errorf("failed to write plot %s: %w", doc.Name, err)
		}
		count++
	}

	if err := reader.Err(); err != nil {
		return count, skipped, fmt.Errorf("error reading input file: %w", err)
	}

	return count, skipped, nil
}
