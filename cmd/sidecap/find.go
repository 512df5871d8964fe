package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sidecap/internal/gallery"
	"sidecap/internal/store"
)

// findCmd prints every image whose caption contains the query.
// Matching is the same as the editor's search: exact, case-sensitive
// substring containment.
func findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <directory> <query>",
		Short: "List images whose caption contains a substring",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := gallery.New(cfg)
			if err != nil {
				return err
			}
			if err := col.Load(args[0]); err != nil {
				return err
			}

			query := args[1]
			matches := 0
			for _, entry := range col.Entries() {
				caption, err := store.Read(entry.Path)
				if err != nil {
					return err
				}
				if strings.Contains(caption, query) {
					fmt.Printf("%s\t%s\n", entry.Path, caption)
					matches++
				}
			}

			if matches == 0 {
				fmt.Printf("no captions contain %q\n", query)
			}
			return nil
		},
	}
}
