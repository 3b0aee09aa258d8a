// Package document provides a streaming reader for entity documents: YAML (or
// JSON) streams where every document describes the entities of one plot.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleavviz/cleavviz/pkg/core"
)

// Document is one plot worth of entities.
type Document struct {
	Name     string
	Entities []core.Entity
}

// Reader provides streaming access to multi-document entity files
type Reader struct {
	decoder    *yaml.Decoder
	docNum     int
	currentDoc *Document
	err        error
}

// rawDocument mirrors the on-disk layout. "samples" is accepted next to
// "entities" and "values" next to "data_pos".
type rawDocument struct {
	Name     string      `yaml:"name"`
	Entities []rawEntity `yaml:"entities"`
	Samples  []rawEntity `yaml:"samples"`
}

type rawEntity struct {
	Label    string     `yaml:"label"`
	LabelPos string     `yaml:"label_pos"`
	LabelNeg string     `yaml:"label_neg"`
	DataPos  []*float64 `yaml:"data_pos"`
	Values   []*float64 `yaml:"values"`
	DataNeg  []*float64 `yaml:"data_neg"`
}

// NewReader creates a new document reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		decoder: yaml.NewDecoder(r),
	}
}

// Next advances to the next document. Returns false when no more documents or error.
func (r *Reader) Next() bool {
	r.currentDoc = nil

	doc, err := r.readDocument()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		return false
	}

	r.currentDoc = doc
	return true
}

// Document returns the current document
func (r *Reader) Document() *Document {
	return r.currentDoc
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readDocument decodes a single document from the stream
func (r *Reader) readDocument() (*Document, error) {
	var raw rawDocument
	if err := r.decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("document %d: %w", r.docNum+1, err)
	}
	r.docNum++

	doc := &Document{
		Name: strings.TrimSpace(raw.Name),
	}
	if doc.Name == "" {
		doc.Name = fmt.Sprintf("plot-%d", r.docNum)
	}

	for _, e := range append(raw.Entities, raw.Samples...) {
		positive := e.DataPos
		if len(positive) == 0 {
			positive = e.Values
		}

		entity := core.Entity{
			Label:    e.Label,
			LabelPos: e.LabelPos,
			LabelNeg: e.LabelNeg,
			Positive: values(positive),
		}
		if e.DataNeg != nil {
			entity.Negative = values(e.DataNeg)
		}
		doc.Entities = append(doc.Entities, entity)
	}

	return doc, nil
}

// values converts decoded numbers, mapping null entries to the missing marker
func values(raw []*float64) []float64 {
	if raw == nil {
		return nil
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = core.Missing
			continue
		}
		out[i] = *v
	}
	return out
}
