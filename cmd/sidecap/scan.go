package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sidecap/internal/gallery"
	"sidecap/internal/store"
)

// scanCmd lists what the editor would load, without opening it.
func scanCmd() *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "List the images and captions in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := gallery.New(cfg)
			if err != nil {
				return err
			}
			if err := col.Load(args[0]); err != nil {
				return err
			}

			captioned := 0
			for _, entry := range col.Entries() {
				caption, err := store.Read(entry.Path)
				if err != nil {
					return err
				}
				if caption != "" {
					captioned++
					if !missingOnly {
						fmt.Printf("%s\t%s\n", entry.Path, caption)
					}
					continue
				}
				// An empty caption can be an empty sidecar or no
				// sidecar at all.
				label := "(empty caption)"
				if _, err := os.Stat(entry.CaptionPath()); os.IsNotExist(err) {
					label = "(no caption file)"
				}
				fmt.Printf("%s\t%s\n", entry.Path, label)
			}

			fmt.Printf("\n%d images, %d captioned, %d missing\n",
				col.Len(), captioned, col.Len()-captioned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing", false, "only list images without a caption")

	return cmd
}
