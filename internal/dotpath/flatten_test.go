package dotpath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlattenNestedMap(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": 2},
		},
		"e": []int{1, 2},
	}

	got := Flatten("t", in)

	assert.Equal(t, map[string]any{
		"t.a.b":   1,
		"t.a.c.d": 2,
		"t.e":     []int{1, 2},
	}, got)
}

func TestFlattenEmptyPrefix(t *testing.T) {
	got := Flatten("", map[string]any{"a": map[string]any{"b": "x"}})
	assert.Equal(t, map[string]any{"a.b": "x"}, got)
}

func TestFlattenExplicitNullIsKept(t *testing.T) {
	got := Flatten("t", map[string]any{"cleared": nil, "kept": "v"})

	assert.Equal(t, map[string]any{"t.cleared": nil, "t.kept": "v"}, got)
}

type heroPatch struct {
	Heading    *string `bson:"heading,omitempty"`
	Subheading *string `bson:"subheading,omitempty"`
}

type pagePatch struct {
	Hero    *heroPatch `bson:"hero,omitempty"`
	Tags    []string   `bson:"tags,omitempty"`
	Ignored *string    `bson:"-"`
	Count   int        `bson:"count"`
}

func TestFlattenStructOmitsAbsentFields(t *testing.T) {
	heading := "Hello"
	ignored := "nope"
	got := Flatten("page", pagePatch{
		Hero:    &heroPatch{Heading: &heading},
		Ignored: &ignored,
		Count:   3,
	})

	assert.Equal(t, map[string]any{
		"page.hero.heading": "Hello",
		"page.count":        3,
	}, got)
}

func TestFlattenEmptySliceIsWritten(t *testing.T) {
	got := Flatten("page", &pagePatch{Tags: []string{}})

	assert.Contains(t, got, "page.tags")
	assert.Equal(t, []string{}, got["page.tags"])
}

func TestFlattenEmptyInput(t *testing.T) {
	assert.Empty(t, Flatten("t", map[string]any{}))
	assert.Empty(t, Flatten("t", (*pagePatch)(nil)))
	assert.Empty(t, Flatten("t", nil))
	assert.Empty(t, Flatten("t", &heroPatch{}))
}

func TestFlattenTimeIsLeaf(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := Flatten("", map[string]any{"meta": map[string]any{"at": at}})

	assert.Equal(t, map[string]any{"meta.at": at}, got)
}

func TestFlattenIsDeterministic(t *testing.T) {
	in := map[string]any{"x": map[string]any{"y": 1, "z": []string{"a"}}, "w": "q"}
	first := Flatten("p", in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Flatten("p", in))
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a", Join("", "a"))
	assert.Equal(t, "a.b", Join("a", "b"))
}
