package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List playable characters",
	Long:  `Shows every character skin that can be picked with --skin or left/right in the title screen.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	skins := registry.List()

	if len(skins) == 0 {
		fmt.Println("No characters available.")
		return
	}

	fmt.Println("Available characters:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range skins {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Glyph", "Name")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "----")

	for _, s := range skins {
		marker := ""
		if s.ID == registry.DefaultSkinID {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-5s  %s%s\n", maxIDLen, s.ID, string(s.Glyph), s.Name, marker)
	}

	fmt.Println()
	fmt.Println("Run 'skyflap play --skin <id>' to fly with a character.")
}
