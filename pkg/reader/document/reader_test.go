package document

import (
	"strings"
	"testing"

	"github.com/cleavviz/cleavviz/pkg/core"
)

const testDocuments = `name: Cleavage Analysis
entities:
  - label: Protein A
    label_pos: Positive ref
    label_neg: Negative ref
    data_pos: [10, 100, 1000]
    data_neg: [1, 2, 3]
  - label: Protein B
    data_pos: [5, null]
---
samples:
  - label: P1
    values: [1, 2, 3]
`

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(testDocuments))

	var docs []*Document
	for r.Next() {
		docs = append(docs, r.Document())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}

	first := docs[0]
	if first.Name != "Cleavage Analysis" {
		t.Errorf("Expected name 'Cleavage Analysis', got %q", first.Name)
	}
	if len(first.Entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(first.Entities))
	}

	a := first.Entities[0]
	if a.Label != "Protein A" || a.LabelPos != "Positive ref" || a.LabelNeg != "Negative ref" {
		t.Errorf("Unexpected labels %+v", a)
	}
	if len(a.Positive) != 3 || a.Positive[2] != 1000 {
		t.Errorf("Unexpected positive series %v", a.Positive)
	}
	if len(a.Negative) != 3 || a.Negative[0] != 1 {
		t.Errorf("Unexpected negative series %v", a.Negative)
	}

	b := first.Entities[1]
	if !core.IsMissing(b.Positive[1]) {
		t.Errorf("Expected null to decode as missing, got %v", b.Positive[1])
	}
	if b.Negative != nil {
		t.Errorf("Expected no negative series, got %v", b.Negative)
	}

	second := docs[1]
	if second.Name != "plot-2" {
		t.Errorf("Expected generated name 'plot-2', got %q", second.Name)
	}
	if len(second.Entities) != 1 || len(second.Entities[0].Positive) != 3 {
		t.Errorf("Expected values alias to fill the positive series, got %+v", second.Entities)
	}
}

func TestReaderAcceptsJSON(t *testing.T) {
	input := `{"name": "json", "entities": [{"label": "P1", "data_pos": [1.5, 2], "data_neg": [3]}]}`
	r := NewReader(strings.NewReader(input))

	if !r.Next() {
		t.Fatalf("Expected a document, err = %v", r.Err())
	}
	doc := r.Document()
	if doc.Entities[0].Positive[0] != 1.5 || doc.Entities[0].Negative[0] != 3 {
		t.Errorf("Unexpected entity %+v", doc.Entities[0])
	}
	if r.Next() {
		t.Error("Expected end of stream")
	}
	if r.Err() != nil {
		t.Errorf("Unexpected error: %v", r.Err())
	}
}

func TestReaderReportsMalformedInput(t *testing.T) {
	r := NewReader(strings.NewReader("entities: [label: {"))
	if r.Next() {
		t.Fatal("Expected no document")
	}
	if r.Err() == nil {
		t.Error("Expected a decode error")
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	if r.Next() {
		t.Error("Expected no document")
	}
	if r.Err() != nil {
		t.Errorf("Unexpected error: %v", r.Err())
	}
}
