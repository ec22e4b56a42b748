package cli

import (
	"encoding/json"
	"fmt"

	"github.com/metals-labs/metals-client/internal/config"
	"github.com/metals-labs/metals-client/internal/serverversion"
	"github.com/spf13/cobra"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print status as JSON")
	rootCmd.AddCommand(statusCmd)
}

type statusReport struct {
	ServerVersion       string `json:"server_version"`
	LatestServerVersion string `json:"latest_server_version"`
	ConfigurationTarget string `json:"configuration_target"`
	SettingsPath        string `json:"settings_path"`
	Outdated            bool   `json:"outdated"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured and latest server versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(workspaceDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		info := serverversion.ServerVersionInfo(store)
		report := statusReport{
			ServerVersion:       info.ServerVersion,
			LatestServerVersion: info.LatestServerVersion,
			ConfigurationTarget: info.ConfigurationTarget.String(),
			SettingsPath:        store.Path(info.ConfigurationTarget),
			Outdated:            serverversion.IsOutdated(info.ServerVersion, info.LatestServerVersion),
		}

		out := cmd.OutOrStdout()
		if statusJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling status: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Configured version: %s\n", report.ServerVersion)
		fmt.Fprintf(out, "Latest version:     %s\n", report.LatestServerVersion)
		fmt.Fprintf(out, "Upgrade target:     %s (%s)\n", report.ConfigurationTarget, report.SettingsPath)
		if report.Outdated {
			fmt.Fprintln(out, "Status:             outdated")
		} else {
			fmt.Fprintln(out, "Status:             no upgrade needed")
		}
		return nil
	},
}
