package deriv_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/pkg/adapters/memory"
	"github.com/aretw0/deriv/pkg/domain"
)

func ExampleEngine_Derive() {
	engine := deriv.New()

	d, err := engine.Derive(context.Background(), "3x^2 + 2x^1 + 1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(d.Text)
	// Output: +6x^1 +2
}

// ExampleEngine_Derive_syntaxError shows how to recover the position of a bad character.
func ExampleEngine_Derive_syntaxError() {
	engine := deriv.New()

	_, err := engine.Derive(context.Background(), "3x^2 + 4y")

	var ic *domain.InvalidCharacterError
	if errors.As(err, &ic) {
		fmt.Printf("%q at column %d\n", ic.Char, ic.Column)
	}
	fmt.Println(errors.Is(err, domain.ErrSyntax))
	// Output:
	// 'y' at column 9
	// true
}

// ExampleWithStore demonstrates caching derivations in memory.
// Equivalent spellings of one polynomial share a store entry.
func ExampleWithStore() {
	store := memory.NewStore()
	engine := deriv.New(deriv.WithStore(store))
	ctx := context.Background()

	first, _ := engine.Derive(ctx, "4x^3 -2x^0")
	second, _ := engine.Derive(ctx, "  4x^3-2x^0\n")

	fmt.Println(first.Key)
	fmt.Println(first.ID == second.ID)
	// Output:
	// +4x^3 -2
	// true
}

func ExampleRenderLaTeX() {
	poly, _ := deriv.New().Parse(context.Background(), "5x^3 - 2x^-1")
	fmt.Println(deriv.RenderLaTeX(poly))
	// Output: 5x^{3} - 2x^{-1}
}
