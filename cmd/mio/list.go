package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saves in the library",
	Long: `Shows every save found under the library root and every save imported
into the database.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	entries := openLibrary(store, newLogger("mio")).List()
	if len(entries) == 0 {
		fmt.Println("No saves found.")
		fmt.Printf("Put save files in %s or run 'mio import <file>'.\n", cfg.Library.Root)
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, e := range entries {
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	fmt.Printf("  %-*s  %-20s  %-5s  %4s  %8s  %s\n", maxIDLen, "ID", "Title", "Len", "Obj", "Size", "Changed")
	fmt.Printf("  %-*s  %-20s  %-5s  %4s  %8s  %s\n", maxIDLen, "--", "-----", "---", "---", "----", "-------")
	for _, e := range entries {
		source := humanize.Time(e.ModTime)
		if e.Path == "" {
			source = "imported " + source
		}
		fmt.Printf("  %-*s  %-20s  %-5s  %4d  %8s  %s\n",
			maxIDLen, e.ID, e.Title, e.Length, e.Objects, humanize.Bytes(uint64(e.Size)), source)
	}

	fmt.Println()
	fmt.Println("Run 'mio play <id>' to play a game.")
	return nil
}
