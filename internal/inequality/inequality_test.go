package inequality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TwoTerms(t *testing.T) {
	got, diags := Normalize("a<=b")

	assert.Equal(t, []Inequality{{Lower: "a", Upper: "b"}}, got)
	assert.Empty(t, diags)
}

func TestNormalize_ThreeTermsReconstructOuterBound(t *testing.T) {
	got, diags := Normalize("a<=b<=c")

	assert.Empty(t, diags)
	assert.Equal(t, []Inequality{{Lower: "a", Upper: "b"}, {Lower: "b", Upper: "c"}}, got)

	outer := Inequality{Lower: got[0].Lower, Upper: got[1].Upper}
	assert.Equal(t, "a<=c", outer.String())
}

func TestNormalize_MultipleChains(t *testing.T) {
	got, diags := Normalize("x1<=x2<=x3;x2<=x4")

	assert.Empty(t, diags)
	assert.Equal(t, []Inequality{
		{Lower: "x1", Upper: "x2"},
		{Lower: "x2", Upper: "x3"},
		{Lower: "x2", Upper: "x4"},
	}, got)
}

func TestNormalize_TrimsAndSkipsEmptyFragments(t *testing.T) {
	got, diags := Normalize(" ; a <= b ;;\t; ")

	assert.Empty(t, diags)
	assert.Equal(t, []Inequality{{Lower: "a", Upper: "b"}}, got)
}

func TestNormalize_Empty(t *testing.T) {
	got, diags := Normalize("")

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, diags)
}

func TestNormalize_DropsUnsupportedChains(t *testing.T) {
	testCases := []struct {
		name  string
		chain string
		terms int
	}{
		{name: "single term", chain: "a", terms: 1},
		{name: "four terms", chain: "a<=b<=c<=d", terms: 4},
		{name: "empty lower", chain: "<=b", terms: 2},
		{name: "empty middle", chain: "a<= <=c", terms: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, diags := Normalize("p<=q;" + tc.chain + ";r<=s")

			assert.Equal(t, []Inequality{{Lower: "p", Upper: "q"}, {Lower: "r", Upper: "s"}}, got)
			if assert.Len(t, diags, 1) {
				assert.Equal(t, tc.chain, diags[0].Chain)
				assert.Equal(t, tc.terms, diags[0].Terms)
				assert.NotEmpty(t, diags[0].Reason)
			}
		})
	}
}

func TestNormalize_NFC(t *testing.T) {
	decomposed, _ := Normalize("e\u0301<=b")
	composed, _ := Normalize("\u00e9<=b")

	assert.Equal(t, composed, decomposed)
	assert.Equal(t, "\u00e9", decomposed[0].Lower)
}

func TestConsolidate_IdenticalNodesAllShared(t *testing.T) {
	ineqs, _ := Normalize("a<=b;b<=c")
	sets := []NodeSet{
		{Key: "0", Inequalities: ineqs},
		{Key: "1", Inequalities: ineqs},
		{Key: "2", Inequalities: ineqs},
	}

	c := Consolidate(sets)

	assert.Equal(t, ineqs, c.Intersection)
	assert.Len(t, c.Nodes, 3)
	for _, node := range c.Nodes {
		for _, e := range node.Entries {
			assert.True(t, e.Shared, "node %s entry %s", node.Key, e)
		}
	}
}

func TestConsolidate_DisjointNodesNoneShared(t *testing.T) {
	a, _ := Normalize("a<=b")
	b, _ := Normalize("c<=d")
	c := Consolidate([]NodeSet{{Key: "0", Inequalities: a}, {Key: "1", Inequalities: b}})

	assert.Empty(t, c.Intersection)
	for _, node := range c.Nodes {
		for _, e := range node.Entries {
			assert.False(t, e.Shared)
		}
	}
}

func TestConsolidate_Empty(t *testing.T) {
	c := Consolidate(nil)

	assert.Empty(t, c.Intersection)
	assert.Empty(t, c.Nodes)
}

func TestConsolidate_KeepsOrder(t *testing.T) {
	first, _ := Normalize("z<=y;a<=b;m<=n")
	second, _ := Normalize("m<=n;z<=y")

	c := Consolidate([]NodeSet{{Key: "b", Inequalities: first}, {Key: "a", Inequalities: second}})

	assert.Equal(t, []Inequality{{Lower: "z", Upper: "y"}, {Lower: "m", Upper: "n"}}, c.Intersection)
	assert.Equal(t, "b", c.Nodes[0].Key)
	assert.Equal(t, "a", c.Nodes[1].Key)
	assert.Equal(t, []Entry{
		{Inequality: Inequality{Lower: "z", Upper: "y"}, Shared: true},
		{Inequality: Inequality{Lower: "a", Upper: "b"}, Shared: false},
		{Inequality: Inequality{Lower: "m", Upper: "n"}, Shared: true},
	}, c.Nodes[0].Entries)

	node, ok := c.Node("a")
	assert.True(t, ok)
	assert.Len(t, node.Entries, 2)
	_, ok = c.Node("missing")
	assert.False(t, ok)
}

func TestConsolidate_DuplicatesInFirstNode(t *testing.T) {
	first, _ := Normalize("a<=b;a<=b")
	second, _ := Normalize("a<=b")

	c := Consolidate([]NodeSet{{Key: "0", Inequalities: first}, {Key: "1", Inequalities: second}})

	assert.Equal(t, []Inequality{{Lower: "a", Upper: "b"}}, c.Intersection)
	assert.Len(t, c.Nodes[0].Entries, 2)
}

func TestConsolidate_EmptyNodeEmptiesIntersection(t *testing.T) {
	a, _ := Normalize("a<=b")
	c := Consolidate([]NodeSet{{Key: "0", Inequalities: a}, {Key: "1"}})

	assert.Empty(t, c.Intersection)
	assert.False(t, c.Nodes[0].Entries[0].Shared)
	assert.Empty(t, c.Nodes[1].Entries)
}
