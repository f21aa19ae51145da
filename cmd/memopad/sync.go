// ABOUTME: Sync subcommand for the charm storage backend.
// ABOUTME: Provides status, now, repair, reset and wipe for the charm kv database.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/blob"
	"github.com/harper/memopad/internal/config"
	"github.com/harper/memopad/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage Charm cloud sync",
	Long: `Sync memos stored in the charm backend to the Charm cloud.

Only applies when backend is "charm". Charm uses SSH key authentication.
With auto_sync on, every write syncs immediately.

Commands:
  status  - Show sync configuration
  config  - Set the charm host and auto-sync in the config file
  now     - Sync immediately
  repair  - Repair the local charm kv database
  reset   - Reset local sync data (keeps cloud data)
  wipe    - Delete all synced data and start fresh

Examples:
  memopad --backend charm sync status
  memopad sync config --host charm.example.com --auto-sync=false
  memopad --backend charm sync now`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Charm Sync Status")
		fmt.Println(ui.Separator())

		if config.Exists() {
			fmt.Printf("Config:    %s\n", config.ConfigPath())
		} else {
			fmt.Printf("Config:    %s %s\n", config.ConfigPath(), color.New(color.Faint).Sprint("(not created)"))
		}
		fmt.Printf("Backend:   %s\n", cfg.Backend)
		if cfg.CharmHost != "" {
			fmt.Printf("Host:      %s\n", cfg.CharmHost)
		} else {
			fmt.Printf("Host:      %s\n", color.New(color.Faint).Sprint("(default: cloud.charm.sh)"))
		}
		if cfg.AutoSync {
			fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
		}

		c, ok := blobs.(*blob.Charm)
		if !ok {
			fmt.Println("\nSync is only available with the charm backend.")
			return nil
		}
		if last := c.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Local().Format(time.RFC1123))
		} else {
			fmt.Printf("Last sync: %s\n", color.New(color.Faint).Sprint("never"))
		}
		return nil
	},
}

var syncConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Save sync settings",
	Long: `Write the charm host and auto-sync setting to the config file.
Only the flags given are changed. Takes effect on the next command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hostChanged := cmd.Flags().Changed("host")
		autoChanged := cmd.Flags().Changed("auto-sync")
		if !hostChanged && !autoChanged {
			return fmt.Errorf("nothing to change: pass --host or --auto-sync")
		}
		host, _ := cmd.Flags().GetString("host")
		autoSync, _ := cmd.Flags().GetBool("auto-sync")

		saved, err := config.Update(func(c *config.Config) {
			if hostChanged {
				c.CharmHost = host
			}
			if autoChanged {
				c.AutoSync = autoSync
			}
		})
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Saved %s", config.ConfigPath())))
		fmt.Printf("  Host:      %s\n", valueOrNone(saved.CharmHost))
		fmt.Printf("  Auto-sync: %t\n", saved.AutoSync)
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync with Charm cloud now",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmBlobs()
		if err != nil {
			return err
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Println(ui.Success("Synced"))
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption issues",
	Long: `Repair the local charm kv database if it's corrupted.

Use --force to attempt repair even if the integrity check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmBlobs(); err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing database...")
		result, err := charmkv.Repair(blob.DefaultCharmDB, force)
		if err != nil {
			return fmt.Errorf("repair failed: %w", err)
		}

		if result.WalCheckpointed {
			fmt.Println("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			fmt.Println("  ✓ SHM file removed")
		}
		if result.Vacuumed {
			fmt.Println("  ✓ Database vacuumed")
		}
		if result.IntegrityOK {
			color.Green("\n✓ Database repaired")
		} else {
			color.Yellow("\n⚠ Repair completed but integrity issues remain")
			fmt.Println("Consider running 'memopad sync reset'")
		}
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local sync data",
	Long:  `Reset the local charm kv database while keeping cloud data intact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmBlobs(); err != nil {
			return err
		}
		if !confirmWord("This will reset local sync data. Cloud data is kept.\n\nType 'reset' to confirm: ", "reset") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := charmkv.Reset(blob.DefaultCharmDB); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Println(ui.Success("Local sync data reset"))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Wipe all sync data and start fresh",
	Long:  `Delete memos from both Charm cloud and the local charm kv database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmBlobs(); err != nil {
			return err
		}
		color.Yellow("This deletes all memos in Charm cloud and locally. This cannot be undone!")
		if !confirmWord("\nType 'wipe' to confirm: ", "wipe") {
			fmt.Println("Aborted.")
			return nil
		}

		result, err := charmkv.Wipe(blob.DefaultCharmDB)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Printf("  ✓ Deleted %d cloud backups\n", result.CloudBackupsDeleted)
		fmt.Printf("  ✓ Deleted %d local files\n", result.LocalFilesDeleted)
		fmt.Println(ui.Success("All sync data wiped"))
		return nil
	},
}

func charmBlobs() (*blob.Charm, error) {
	c, ok := blobs.(*blob.Charm)
	if !ok {
		return nil, fmt.Errorf("sync needs the charm backend (current: %s)", cfg.Backend)
	}
	return c, nil
}

func confirmWord(prompt, word string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line) == word
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "Force repair even if integrity check fails")
	syncConfigCmd.Flags().String("host", "", "Charm server host (empty for cloud.charm.sh)")
	syncConfigCmd.Flags().Bool("auto-sync", true, "Sync after every write")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncConfigCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
