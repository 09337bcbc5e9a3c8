package search_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/invoicer/internal/search"
)

type customer struct {
	Name  string
	Email *string
	Code  int
}

func names(cs []customer) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}

	return out
}

func newIndex(items []customer) *search.Index[customer] {
	return search.New(items,
		func(c customer) any { return c.Name },
		func(c customer) any { return c.Email },
		func(c customer) any { return c.Code },
	)
}

func TestIndex_Search(t *testing.T) {
	items := []customer{
		{Name: "Acme Corp", Email: new("billing@acme.io"), Code: 101},
		{Name: "Blue-Ocean Trading", Code: 202},
		{Name: "Café Ünïcode", Code: 303},
	}

	type testCase struct {
		name string
		term string
		want []string
	}

	tests := []testCase{
		{name: "Empty", term: "", want: []string{"Acme Corp", "Blue-Ocean Trading", "Café Ünïcode"}},
		{name: "OnlyPunctuation", term: "!!! ??", want: []string{"Acme Corp", "Blue-Ocean Trading", "Café Ünïcode"}},
		{name: "CaseInsensitive", term: "ACME", want: []string{"Acme Corp"}},
		{name: "AcrossFields", term: "corp billing", want: []string{"Acme Corp"}},
		{name: "AllWordsRequired", term: "acme ocean", want: []string{}},
		{name: "WhitespaceDroppedFromSoup", term: "acmecorp", want: []string{"Acme Corp"}},
		{name: "FieldsConcatenated", term: "corpbilling", want: []string{"Acme Corp"}},
		{name: "PunctuationIgnored", term: "blue-ocean", want: []string{"Blue-Ocean Trading"}},
		{name: "NumericField", term: "202", want: []string{"Blue-Ocean Trading"}},
		{name: "NonASCIIDropped", term: "caf", want: []string{"Café Ünïcode"}},
		{name: "NoMatch", term: "zebra", want: []string{}},
	}

	idx := newIndex(items)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(idx.Search(tt.term)))
		})
	}
}

func TestIndex_NilPointerField(t *testing.T) {
	idx := newIndex([]customer{{Name: "Walk In"}})

	assert.Empty(t, idx.Search("nil"))
	assert.Len(t, idx.Search("walk"), 1)
}

func TestIndex_NilStringerField(t *testing.T) {
	type pricing struct {
		Name       string
		SalesTaxID *uuid.UUID
	}

	taxID := uuid.MustParse("0b7e6a4c-1d2f-4a3b-9c8d-7e6f5a4b3c2d")

	idx := search.New([]pricing{{Name: "Blue"}, {Name: "Red", SalesTaxID: &taxID}},
		func(p pricing) any { return p.Name },
		func(p pricing) any { return p.SalesTaxID },
	)

	assert.Equal(t, 2, idx.Len())
	assert.Len(t, idx.Search("blue"), 1)
	assert.Len(t, idx.Search("0b7e6a4c"), 1)
	assert.Empty(t, idx.Search("blue 0b7e6a4c"))
}

func TestIndex_Replace(t *testing.T) {
	idx := newIndex([]customer{{Name: "Old Name"}})

	idx.Replace([]customer{{Name: "New One"}, {Name: "New Two"}})

	assert.Equal(t, 2, idx.Len())
	assert.Empty(t, idx.Search("old"))
	assert.Equal(t, []string{"New One", "New Two"}, names(idx.Search("new")))
	assert.Equal(t, []string{"New One", "New Two"}, names(idx.Items()))
}

func TestIndex_ResultsDetached(t *testing.T) {
	items := []customer{{Name: "Acme"}}
	idx := newIndex(items)

	items[0].Name = "Changed"
	got := idx.Search("")
	got[0].Name = "Mutated"

	assert.Equal(t, []string{"Acme"}, names(idx.Items()))
}

func TestIndex_ConcurrentSearch(t *testing.T) {
	idx := newIndex([]customer{{Name: "Acme"}, {Name: "Blue"}})

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if i%4 == 0 {
				idx.Replace([]customer{{Name: "Acme"}, {Name: "Blue"}})
				return
			}

			assert.Len(t, idx.Search("acme"), 1)
		}()
	}

	wg.Wait()
}
