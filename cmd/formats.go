package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ijma-tools/typeset/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := format.DefaultRegistry.List()
		if len(names) == 0 {
			fmt.Println("No formats registered")
			return nil
		}

		for _, name := range names {
			f, _ := format.Get(name)
			caps := ""
			if _, ok := f.(format.Parser); ok {
				caps += "parse"
			}
			if _, ok := f.(format.Serializer); ok {
				if caps != "" {
					caps += ", "
				}
				caps += "serialize"
			}
			fmt.Printf("  %-12s %s (%s)\n", name, f.Description(), caps)
		}
		return nil
	},
}
