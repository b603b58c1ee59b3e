// seogen is the landing-page generation service: it expands a business's
// service/location matrix into page specs, generates content per spec on a
// template or generative tier, gates it for quality, and serves the published
// artifacts per tenant hostname.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
