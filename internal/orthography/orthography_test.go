package orthography

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseWordsAndPunctuation(t *testing.T) {
	o, err := Parse("hello, world!")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Element{
		{Kind: Word, Text: "hello"},
		{Kind: Punctuation, Text: ","},
		{Kind: Word, Text: "world"},
		{Kind: Punctuation, Text: "!"},
	}
	if !reflect.DeepEqual(o.Elements, want) {
		t.Fatalf("unexpected elements %+v", o.Elements)
	}
	if got := o.String(); got != "hello , world !" {
		t.Fatalf("String: got %q", got)
	}
}

func TestParseCommentsAndEvents(t *testing.T) {
	o, err := Parse("the dog (points at picture) *laughs* okay")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := o.Words(); !reflect.DeepEqual(got, []string{"the", "dog", "okay"}) {
		t.Fatalf("unexpected words %v", got)
	}
	if o.Elements[2].Kind != Comment || o.Elements[2].Text != "points at picture" {
		t.Fatalf("unexpected comment %+v", o.Elements[2])
	}
	if o.Elements[3].Kind != Event || o.Elements[3].Text != "laughs" {
		t.Fatalf("unexpected event %+v", o.Elements[3])
	}
}

func TestParseSingleWord(t *testing.T) {
	o, err := Parse("hello")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.String() != "hello" {
		t.Fatalf("got %q", o.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"(unclosed", "oops)", "*event", "a [b]", "x<y"} {
		_, err := Parse(input)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError for %q, got %v", input, err)
		}
	}
}
