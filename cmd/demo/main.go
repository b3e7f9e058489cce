// Command demo prints the fixed vehicle showcase to stdout: per-variant
// sections for a car and a motorcycle, then the same pair driven through
// Vehicle-typed references.
package main

import (
	"fmt"
	"os"

	"github.com/kjstillabower/vehicle-fleet-service/internal/showcase"
)

func main() {
	car, moto := showcase.Default()
	if err := showcase.Fprint(os.Stdout, car, moto); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}
