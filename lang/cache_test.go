package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseString_Cached(t *testing.T) {
	ClearCache()

	env := NewEnv()
	ctx := context.Background()
	src := "# Cached\n\n.sum {1} {2}\n"

	a := env.ParseString(ctx, src)
	b := NewEnv().ParseString(ctx, src)

	if a != b {
		t.Error("identical sources parsed twice")
	}

	if other := env.ParseString(ctx, src+"\n"); other == a {
		t.Error("different sources share a parse")
	}

	ClearCache()

	if c := env.ParseString(ctx, src); c == a {
		t.Error("ClearCache kept the cached parse")
	}
}

func TestParseReader(t *testing.T) {
	ClearCache()

	env := NewEnv()
	ctx := context.Background()
	src := "para .sum {1} {2}\n"

	doc, err := env.ParseReader(ctx, strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if doc != env.ParseString(ctx, src) {
		t.Error("ParseReader and ParseString disagree for the same source")
	}

	if got := describe(doc.Children); got != `p[text("para ") call(sum)]` {
		t.Errorf("document = %s", got)
	}
}

func TestParseReader_Error(t *testing.T) {
	cause := errors.New("disk on fire")

	_, err := NewEnv().ParseReader(context.Background(), iotest.ErrReader(cause))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want %v", err, ErrReadInput)
	}

	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause %v", err, cause)
	}
}
