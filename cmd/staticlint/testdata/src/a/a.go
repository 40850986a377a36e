package a

import (
	"fmt"
	"os"
)

func greet(name string) {
	fmt.Println("hello", name)        // want `console output must go through the output package`
	fmt.Printf("hello %s\n", name)    // want `console output must go through the output package`
	fmt.Print("hello")                // want `console output must go through the output package`
	fmt.Fprintln(os.Stderr, "hello")  // Fprint variants are fine, they target explicit writers
	_ = fmt.Sprintf("hello %s", name) // Sprint variants produce strings, not console output
}
