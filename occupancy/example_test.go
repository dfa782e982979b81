package occupancy_test

import (
	"fmt"

	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

// ExampleBuild rasterizes one booth and one blocker on a 300×150 px canvas
// with 50 px cells under the default obstacle denylist.
func ExampleBuild() {
	elements := []venue.Element{
		venue.NewElement("1", "Booth A", venue.KindBooth, venue.NewRect(venue.Point{X: 0, Y: 0}, venue.Point{X: 99, Y: 49})),
		venue.NewElement("2", "Blocker", venue.KindObstacle, venue.NewRect(venue.Point{X: 200, Y: 50}, venue.Point{X: 249, Y: 149})),
	}
	g, rep, err := occupancy.Build(elements, occupancy.WithCanvas(300, 150))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%dx%d walkable=%d\n", g.Width(), g.Height(), rep.Walkable)
	fmt.Println(g)

	// Output:
	// 6x3 walkable=14
	// ##....
	// ....#.
	// ....#.
}
