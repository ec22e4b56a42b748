package cli

import (
	"fmt"

	"github.com/metals-labs/metals-client/internal/config"
	"github.com/spf13/cobra"
)

var configTarget string

func init() {
	for _, c := range []*cobra.Command{configSetCmd, configUnsetCmd} {
		c.Flags().StringVar(&configTarget, "target", "workspace", "Settings layer to write: global or workspace")
	}

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configInspectCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `Read and write settings stored in the global settings file
(~/.metals-client/settings.yaml) and the workspace settings file
(<workspace>/.metals-client/settings.yaml).`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting in the global or workspace layer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := config.ParseTarget(configTarget)
		if err != nil {
			return err
		}
		store, err := config.Open(workspaceDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		key, value := args[0], args[1]
		if err := store.Update(key, value, target); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s)\n", key, value, target)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the global or workspace layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := config.ParseTarget(configTarget)
		if err != nil {
			return err
		}
		store, err := config.Open(workspaceDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		if err := store.Unset(args[0], target); err != nil {
			return fmt.Errorf("unsetting %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unset %s (%s)\n", args[0], target)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(workspaceDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), store.Get(args[0]))
		return nil
	},
}

var configInspectCmd = &cobra.Command{
	Use:   "inspect [key]",
	Short: "Show a setting's value in every layer",
	Long:  `Show the default, global, and workspace values of a setting, or of every known setting when no key is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(workspaceDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		keys := args
		if len(keys) == 0 {
			for _, s := range config.Settings {
				keys = append(keys, s.Key)
			}
		}

		out := cmd.OutOrStdout()
		for _, key := range keys {
			in := store.Inspect(key)
			fmt.Fprintf(out, "%s\n", key)
			fmt.Fprintf(out, "  default:   %s\n", orUnset(in.Default))
			fmt.Fprintf(out, "  global:    %s\n", orUnset(in.Global))
			fmt.Fprintf(out, "  workspace: %s\n", orUnset(in.Workspace))
		}
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
