package chrono_test

import (
	"fmt"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
)

func ExampleMapper_Map() {
	m := chrono.NewMapper(chrono.Default())

	// A span straddling the Permian-Triassic boundary
	res, _ := m.Map(250, 260)
	for _, u := range res.Periods {
		fmt.Println(u.Name, u.Color)
	}
	// Output:
	// Triassic #812B92
	// Permian #F04028
}

func ExampleMapper_Map_touching() {
	m := chrono.NewMapper(chrono.Default())

	// Touching a boundary does not count as overlap
	res, _ := m.Map(66, 70)
	fmt.Println(len(res.Periods), res.Periods[0].Name)
	// Output:
	// 1 Cretaceous
}
