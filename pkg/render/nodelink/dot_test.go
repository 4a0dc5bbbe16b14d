package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/yieldpath/internal/fixture"
	"github.com/matzehuels/yieldpath/pkg/network"
)

func TestToDOT(t *testing.T) {
	net, err := network.Build([]network.Record{
		{ID: "AA", Neighbors: []string{"BB"}},
		{ID: "BB", Rate: 13, Neighbors: []string{"CC"}},
		{ID: "CC", Rate: 2},
	})
	require.NoError(t, err)

	dot := ToDOT(net, Options{
		Start:       "AA",
		Detailed:    true,
		Activations: []Activation{{Location: "BB", Order: 1, Agent: 1}},
	})

	assert.True(t, strings.HasPrefix(dot, "graph G {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"AA" [label="AA", shape=doublecircle];`)
	assert.Contains(t, dot, `"BB" [label="BB\n13\n#1", fillcolor="#74add1"];`)
	assert.Contains(t, dot, `"CC" [label="CC\n2", fillcolor="#fee08b"];`)
	assert.Contains(t, dot, `"AA" -- "BB";`)
	assert.Contains(t, dot, `"BB" -- "CC";`)
	assert.Equal(t, 2, strings.Count(dot, " -- "))
}

func TestToDOTDeterministic(t *testing.T) {
	net := fixture.MustNetwork()
	assert.Equal(t, ToDOT(net, Options{}), ToDOT(net, Options{}))
	assert.Equal(t, len(net.Edges()), strings.Count(ToDOT(net, Options{}), " -- "))
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `viewBox="0 0 100.00 50.00" width="100" height="50"`)
	assert.Contains(t, out, "<g/>")

	plain := []byte("<svg><g/></svg>")
	assert.Equal(t, plain, normalizeViewBox(plain))
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(fixture.MustNetwork(), Options{Start: fixture.Start}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "JJ")
}
