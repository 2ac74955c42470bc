package magnitude_test

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/magnitude"
)

func ExampleMagnitude_DivMod() {
	x := magnitude.FromDecimal[uint32]("18446744073709551617")
	y := magnitude.FromUint64[uint32](3)
	q, r, err := x.DivMod(y)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(q, r)
	// Output: 6148914691236517205 2
}

func ExampleInt_QuoRem() {
	x := magnitude.NewInt[uint64](-7)
	y := magnitude.NewInt[uint64](2)
	q, r, _ := x.QuoRem(y)
	fmt.Println(q, r)
	// Output: -3 -1
}

func ExampleMagnitude_Digits() {
	m := magnitude.FromDecimal[uint8]("258")
	fmt.Println(m.Digits(), m.Len())
	// Output: [2 1] 2
}
