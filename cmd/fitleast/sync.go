// ABOUTME: sync command family for the charm backend.
// ABOUTME: Links devices, reports which store keys are in Charm, and repairs or wipes the local copy.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/charm"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Share your split, history and streak between devices",
	Long: `Manage the charm backend, which keeps fitleast state in an encrypted
Charm KV and pushes it to Charm Cloud after every change.

Switching an existing install over:

  fitleast sync link
  fitleast migrate --from sqlite --to charm
  fitleast --backend charm list   (or set "backend": "charm" in config.json)

Subcommands link and unlink shell out to the charm CLI. repair, reset and
wipe act on the local fitleast Charm database only.`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this machine to a Charm account",
	Long:        `Run 'charm link' and pull whatever fitleast state the account already holds.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charmCLI("link"); err != nil {
			return err
		}
		color.Green("\n✓ Linked")

		client, err := charm.InitClient()
		if err != nil {
			color.Yellow("⚠ Linked, but the Charm KV did not open: %v", err)
			return nil
		}
		defer client.Close()
		if err := client.Sync(); err != nil {
			color.Yellow("⚠ First pull failed: %v", err)
			return nil
		}
		color.Green("✓ Pulled latest state")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Unlink this machine",
	Long:        `Run 'charm unlink'. Local fitleast data stays where it is.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charmCLI("unlink"); err != nil {
			return err
		}
		color.Green("✓ Unlinked; local data kept")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show the linked account and stored keys",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.InitClient()
		if err != nil {
			color.Yellow("Charm KV unavailable: %v", err)
			fmt.Println("Try 'fitleast sync link'.")
			return nil
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("No Charm account linked")
			fmt.Println("Try 'fitleast sync link'.")
			return nil
		}

		fmt.Printf("Account: %s\nServer:  %s\n", id, charm.Host())
		if client.IsReadOnly() {
			color.Yellow("⚠ Read-only while another fitleast process holds the lock")
		}
		fmt.Println()
		for _, key := range storage.StoreKeys {
			fmt.Println(" ", describeKey(client, key))
		}
		if backend := cfg.GetBackend(); backend != "charm" {
			fmt.Printf("\nActive backend is %s; these keys are not what list/toggle use.\n", backend)
		}
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Recover the local Charm database after lock or corruption errors",
	Long: `Checkpoint the WAL, drop a stale SHM file, check integrity and vacuum.
With --force, keep going when the integrity check fails.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		result, err := kv.Repair(charm.DBName, force)
		reportStep(result.WalCheckpointed, "WAL checkpointed")
		reportStep(result.ShmRemoved, "stale SHM removed")
		reportStep(result.IntegrityOK, "integrity check")
		reportStep(result.Vacuumed, "vacuumed")

		if err != nil {
			if !force {
				color.Yellow("Retry with --force to push past a failed integrity check.")
			}
			return fmt.Errorf("repair: %w", err)
		}
		color.Green("✓ Repaired")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Replace local Charm data with the cloud copy",
	Long:        `Discard the local fitleast Charm database and rebuild it from Charm Cloud. Unpushed changes are lost.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(os.Stdin, "Discard local Charm data and restore from cloud? [y/N]: ") {
			fmt.Println("Canceled.")
			return nil
		}
		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		color.Green("✓ Restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete fitleast data from Charm Cloud and this machine",
	Long:        `Permanently delete every cloud backup and local file of the fitleast Charm database.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !typedConfirm(os.Stdin, "wipe") {
			fmt.Println("Canceled.")
			return nil
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
		color.Green("✓ Wiped: %d cloud backups, %d local files", result.CloudBackupsDeleted, result.LocalFilesDeleted)
		return nil
	},
}

// charmCLI runs the charm binary attached to the terminal.
func charmCLI(verb string) error {
	c := exec.Command("charm", verb)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("charm %s: %w (install with: go install github.com/charmbracelet/charm@latest)", verb, err)
	}
	return nil
}

// describeKey renders one status line for a store key.
func describeKey(src storage.KV, key string) string {
	value, err := src.Get(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return padRight(key, 16) + " not stored"
	case err != nil:
		return fmt.Sprintf("%s error: %v", padRight(key, 16), err)
	default:
		return fmt.Sprintf("%s %d bytes", padRight(key, 16), len(value))
	}
}

// typedConfirm asks the user to type word exactly.
func typedConfirm(in io.Reader, word string) bool {
	fmt.Printf("This cannot be undone. Type '%s' to continue: ", word)
	var answer string
	_, _ = fmt.Fscanln(in, &answer)
	return strings.TrimSpace(answer) == word
}

func reportStep(ok bool, label string) {
	if ok {
		color.Green("  ✓ %s", label)
		return
	}
	color.Red("  ✗ %s", label)
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "continue past a failed integrity check")
	syncResetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
