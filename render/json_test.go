package render

import (
	"bytes"
	"encoding/json"
	"testing"

	sent "github.com/revelaction/annotok/sentence"
)

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatalf("failed to render: %v", err)
	}

	var results []Annotation
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONOneToken(t *testing.T) {
	tokens := []sent.Token{
		{Id: 1, Index: 0, Text: "<cat>", Lemma: "cat", Pos: "NOUN", Head: 0, Dep: "root", Tag: "NN"},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, tokens); err != nil {
		t.Fatalf("failed to render: %v", err)
	}

	if bytes.Contains(buf.Bytes(), []byte(`<`)) {
		t.Errorf("expected unescaped text, got %s", buf.String())
	}

	var results []Annotation
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	want := Annotation{Text: "<cat>", Lemma: "cat", Pos: "NOUN", Head: 0, Deprel: "root"}
	if results[0] != want {
		t.Errorf("expected %+v, got %+v", want, results[0])
	}
}
