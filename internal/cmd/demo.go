package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lrucache/internal/cache"
)

func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through LRU eviction on a capacity-2 cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(out io.Writer) error {
	c, err := cache.New[string, string](2)
	if err != nil {
		return err
	}

	// -------------------------------------------------------------------
	// 1) LRU eviction (capacity=2)
	// -------------------------------------------------------------------
	c.Set("k1", "Hello")
	c.Set("k2", "world")
	fmt.Fprintf(out, "set k1, k2          keys (MRU->LRU): %v\n", c.Keys())

	// Touch k1 so k2 becomes least-recently-used.
	if v, ok := c.Get("k1"); ok {
		fmt.Fprintf(out, "get k1 = %q      keys (MRU->LRU): %v\n", v, c.Keys())
	}

	// Insert k3 => cache overflows and evicts the LRU entry (k2).
	c.Set("k3", "All world!")
	fmt.Fprintf(out, "set k3              keys (MRU->LRU): %v\n", c.Keys())

	if _, ok := c.Get("k2"); !ok {
		fmt.Fprintln(out, "get k2: missing (evicted as LRU)")
	}
	if v, ok := c.Get("k1"); ok {
		fmt.Fprintf(out, "get k1 = %q (still resident)\n", v)
	}

	// -------------------------------------------------------------------
	// 2) Unbounded cache: no eviction
	// -------------------------------------------------------------------
	u := cache.NewUnbounded[string, string]()
	u.Set("Hi", "Hello")
	u.Set("1", "56790")
	if v, ok := u.Get("Hi"); ok {
		fmt.Fprintf(out, "unbounded get Hi = %q\n", v)
	}
	if _, ok := u.Get("2"); !ok {
		fmt.Fprintln(out, "unbounded get 2: missing (never set)")
	}

	return nil
}
