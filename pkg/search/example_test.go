package search_test

import (
	"fmt"

	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/search"
)

func ExampleSearch_Plan() {
	// AA -- BB(10) -- CC(5), five units of time.
	net, _ := network.Build([]network.Record{
		{ID: "AA", Neighbors: []string{"BB"}},
		{ID: "BB", Rate: 10, Neighbors: []string{"CC"}},
		{ID: "CC", Rate: 5},
	})
	eng, _ := search.NewEngine(net)

	plan, _ := eng.NewSearch().Plan(5, "AA", 0)
	fmt.Println("yield:", plan.Yield)
	for _, s := range plan.Steps {
		fmt.Printf("%s at %d -> %d\n", s.Location, s.Remaining, s.Yield)
	}
	// Output:
	// yield: 35
	// BB at 3 -> 30
	// CC at 1 -> 5
}

func ExampleMask() {
	m := search.Mask(0).With(0).With(3)
	fmt.Println(m.Format(4), m.Count(), m.Bits())
	fmt.Println(m.Complement(4).Format(4))
	// Output:
	// 1001 2 [0 3]
	// 0110
}
