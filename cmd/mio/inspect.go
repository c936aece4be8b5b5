package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/mio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <save>",
	Short: "Decode a save and print its objects and rules",
	Long: `Prints the win conditions and every populated object of a save: its art
banks, start instruction and rules. Decode warnings go to the log.

The save is a file path, a library ID or a prefix of an imported hash.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(_ *cobra.Command, args []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	game, err := openLibrary(store, newLogger("mio")).Resolve(args[0])
	if err != nil {
		return err
	}
	s := game.Script

	fmt.Printf("%s  (%s, %d objects, %d warnings)\n", game.Title, s.Length, len(s.ActiveObjects()), len(s.Warnings))
	if game.Hash != "" {
		fmt.Printf("sha256 %s\n", game.Hash)
	}
	fmt.Println()

	fmt.Println("Win conditions:")
	for c, g := range s.WinConditions {
		if len(g.Requirements) == 0 {
			continue
		}
		parts := make([]string, len(g.Requirements))
		for i, r := range g.Requirements {
			parts[i] = fmt.Sprintf("%s is %s", objectName(s, r.Index), r.State)
		}
		fmt.Printf("  %d: %s\n", c+1, strings.Join(parts, " and "))
	}

	for _, i := range s.ActiveObjects() {
		o := s.Objects[i]
		fmt.Println()
		fmt.Printf("[%d] %s  size %d\n", i, o.Name, o.Size)
		for a, art := range o.Art {
			if art != nil {
				fmt.Printf("  art %d %q  frames %v\n", a, art.Name, art.Bank)
			}
		}
		st := o.Program.Start
		fmt.Printf("  start: art %d, %s %s, %s\n", st.Art, st.Style, st.Speed, describe(st.Location))
		for k, ins := range o.Program.Instructions {
			if ins == nil {
				continue
			}
			var when, then []string
			for _, t := range ins.Triggers {
				if t != nil {
					when = append(when, describe(t))
				}
			}
			for _, a := range ins.Actions {
				if a != nil {
					then = append(then, describe(a))
				}
			}
			fmt.Printf("  %d: when %s\n     do %s\n", k+1, orNothing(when), orNothing(then))
		}
	}
	return nil
}

func objectName(s *mio.GameScript, i int) string {
	if i >= 0 && i < len(s.Objects) && s.Objects[i] != nil {
		return fmt.Sprintf("%s[%d]", s.Objects[i].Name, i)
	}
	return fmt.Sprintf("<empty %d>", i)
}

// describe prints a trigger, action or start location as Type{Fields}.
func describe(v any) string {
	if v == nil {
		return "unknown"
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", v), "mio.")
	fields := fmt.Sprintf("%+v", v)
	if fields == "{}" {
		fields = ""
	}
	if s, ok := v.(mio.SoundEffect); ok {
		fields += " " + s.Name()
	}
	return name + fields
}

func orNothing(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
