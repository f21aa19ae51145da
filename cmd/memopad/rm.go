// ABOUTME: Remove command for deleting memos.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a memo",
	Long:  `Delete a memo. Other memos are left untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		m, err := notes.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get memo: %w", err)
		}

		if !force {
			fmt.Printf("Delete memo %q (%d)? [y/N] ", m.Title, m.ID)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := notes.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete memo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted memo %d", id)))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
