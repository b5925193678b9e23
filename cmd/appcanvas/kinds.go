package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appcanvas-dev/appcanvas/internal/registry/kinds"
)

func kindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the component palette",
		Long:  `List every component kind merchants can place on a page.`,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			fmt.Println("  kinds")
			fmt.Println()

			reg := kinds.Default()
			for _, kind := range reg.List() {
				fmt.Printf("  %-22s %-20s %-10s %d properties\n",
					kind.ID, kind.Name, kind.Category, len(kind.Schema))
			}
			fmt.Println()
		},
	}

	return cmd
}
