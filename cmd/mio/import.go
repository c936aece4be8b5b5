package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/catalog"
	"github.com/vovakirdan/mio-arcade/internal/storage"
)

var flagDelete bool

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Store saves in the database",
	Long: `Copies save files into the database, compressed and keyed by their
content hash. Importing the same bytes twice is a no-op.

With --delete the arguments are hash prefixes of imported saves to remove.

Examples:
  mio import ./jump.bin ./catch.bin
  mio import --delete 3fa9c1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagDelete, "delete", false, "Remove the saves with the given hash prefixes")
}

func runImport(_ *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete {
		return deleteSaves(store, args)
	}

	logger := newLogger("mio")
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		e, script, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		logWarnings(logger, e.Title, script)

		saved, created, err := store.ImportSave(data, e.Title, e.Length.String(), e.Objects)
		if err != nil {
			return err
		}
		if !created {
			fmt.Printf("%s  %s (already imported)\n", saved.Hash[:12], saved.Name)
			continue
		}
		fmt.Printf("%s  %s  %s -> %s\n", saved.Hash[:12], saved.Name,
			humanize.Bytes(uint64(saved.Size)), humanize.Bytes(uint64(saved.Stored)))
	}
	return nil
}

func deleteSaves(store *storage.Store, prefixes []string) error {
	saves, err := store.ListSaves()
	if err != nil {
		return err
	}
	for _, p := range prefixes {
		var matches []storage.SaveEntry
		for _, s := range saves {
			if strings.HasPrefix(s.Hash, p) {
				matches = append(matches, s)
			}
		}
		if len(matches) != 1 {
			return fmt.Errorf("%d imported saves match %q", len(matches), p)
		}
		if err := store.DeleteSave(matches[0].Hash); err != nil {
			return err
		}
		fmt.Printf("Deleted %s  %s\n", matches[0].Hash[:12], matches[0].Name)
	}
	return nil
}
