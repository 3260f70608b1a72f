package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/tui"
)

// runMenu loops the main menu until the user quits.
func runMenu(cmd *cobra.Command, args []string) error {
	for {
		choice, err := tui.RunMenu()
		if err != nil {
			fmt.Printf("Menu error: %v\n", err)
			return err
		}
		switch choice {
		case tui.MenuEdit:
			if err := runEdit(cmd, args); err != nil {
				return err
			}
		case tui.MenuDiscover:
			if err := runDiscover(cmd, args); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
