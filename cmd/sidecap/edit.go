package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"sidecap/internal/gallery"
	"sidecap/internal/log"
	"sidecap/internal/search"
	"sidecap/internal/spell"
	"sidecap/internal/tui"
	"sidecap/internal/watch"
)

// editCmd opens the interactive caption editor on a folder.
func editCmd() *cobra.Command {
	var watchFolder bool

	cmd := &cobra.Command{
		Use:   "edit <directory>",
		Short: "Open the interactive caption editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := gallery.New(cfg)
			if err != nil {
				return err
			}
			if err := col.Load(args[0]); err != nil {
				return err
			}

			buffer := &spell.Buffer{}
			var checker *spell.Checker
			if cfg.Spell.Enabled {
				dict, err := spell.LoadDictionary(cfg.Spell.Locale, cfg.Spell.Dictionary)
				if err != nil {
					return err
				}
				delay := time.Duration(cfg.Spell.DelayMs) * time.Millisecond
				checker = spell.NewChecker(dict, buffer, delay)
			}

			engine := search.New(col)

			var watcher *watch.Watcher
			if watchFolder || cfg.Watch.Enabled {
				scanner, err := gallery.NewScanner(cfg.Images.Extensions, cfg.Trash.DirName)
				if err != nil {
					return err
				}
				watchDelay := time.Duration(cfg.Watch.DelayMs) * time.Millisecond
				watcher, err = watch.New(watchDelay, scanner.Match)
				if err != nil {
					return err
				}
				if err := watcher.WatchTree(col.Root(), cfg.Trash.DirName); err != nil {
					return err
				}
				if err := watcher.Start(); err != nil {
					return err
				}
				defer watcher.Stop()
			}

			// Keep the alternate screen clean while the editor runs.
			log.SetOutput(io.Discard)

			m := tui.New(cfg, col, engine, checker, buffer, watcher)
			return tui.Run(m)
		},
	}

	cmd.Flags().BoolVar(&watchFolder, "watch", false, "refresh the collection when the folder changes externally")

	return cmd
}
