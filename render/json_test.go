package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/wordspan/match"
	sent "github.com/revelaction/wordspan/sentence"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render(nil)

	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}

	var results []*match.PhraseMatch
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderOneResult(t *testing.T) {
	cat, err := sent.NewWord("cat", "NN", "cat", 4, 7)
	if err != nil {
		t.Fatal(err)
	}

	pm := &match.PhraseMatch{
		TopicName: "test-topic",
		NumExprs:  1,
		Matches: []match.ExprMatch{
			{
				ExprId: "NN:cat",
				Tokens: [][]sent.Word{{cat}},
			},
		},
		Text:     "The cat sleeps.",
		DocId:    1,
		PhraseId: 5,
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render([]*match.PhraseMatch{pm})

	var results []match.PhraseMatch
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].TopicName != "test-topic" {
		t.Errorf("expected topic_name 'test-topic', got %q", results[0].TopicName)
	}

	if results[0].NumExprs != 1 {
		t.Errorf("expected num_exprs 1, got %d", results[0].NumExprs)
	}

	if results[0].Text != "The cat sleeps." {
		t.Errorf("expected text 'The cat sleeps.', got %q", results[0].Text)
	}

	if len(results[0].Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results[0].Matches))
	}

	got := results[0].Matches[0].Tokens[0][0]
	if got != cat {
		t.Errorf("expected word %v, got %v", cat, got)
	}
}

func TestJSONRendererPhrases(t *testing.T) {
	p := basel(t)

	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Phrases(phrases(p)); err != nil {
		t.Fatal(err)
	}

	var out []PhraseJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(out) != 1 || len(out[0].Words) != 4 {
		t.Fatalf("unexpected phrases %+v", out)
	}

	if out[0].Words[0].Text() != "Basel Accords" {
		t.Errorf("expected compressed first word, got %q", out[0].Words[0].Text())
	}
}

func TestJSONRendererMessage(t *testing.T) {
	msg := sent.Message{Id: 3, Sentences: []sent.Sentence{{Start: 0, End: 3, Content: "Hi!", Size: 0}}}

	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Message(msg); err != nil {
		t.Fatal(err)
	}

	var got sent.Message
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.Id != 3 || got.Sentences[0].Content != "Hi!" {
		t.Errorf("unexpected message %+v", got)
	}
}
