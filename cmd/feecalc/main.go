// Command feecalc quotes redemption payouts offline against the fee tiers
// from config.toml or from --tier flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "feecalc:", err)
		os.Exit(1)
	}
}
