package cli

import (
	"fmt"

	"github.com/metals-labs/metals-client/internal/branding"
	"github.com/metals-labs/metals-client/internal/config"
	"github.com/metals-labs/metals-client/internal/notify"
	"github.com/metals-labs/metals-client/internal/serverversion"
	"github.com/spf13/cobra"
)

var (
	checkYes      bool
	checkNoPrompt bool
)

func init() {
	checkCmd.Flags().BoolVarP(&checkYes, "yes", "y", false, "Upgrade without prompting")
	checkCmd.Flags().BoolVar(&checkNoPrompt, "no-prompt", false, "Print a banner instead of prompting; honors earlier \"Not now\" answers")
	checkCmd.MarkFlagsMutuallyExclusive("yes", "no-prompt")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the configured server version is outdated",
	Long: `Compares the configured metals.serverVersion with the latest server version
and offers to upgrade the setting if it is older.

  ` + branding.CLIName() + ` check               # interactive prompt
  ` + branding.CLIName() + ` check --yes         # upgrade without asking
  ` + branding.CLIName() + ` check --no-prompt   # banner only, for editor startup hooks`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	store, err := config.Open(workspaceDir)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var upgradeErr error
	updateConfig := func(p serverversion.UpdateConfigParams) {
		upgradeErr = store.Update(p.ConfigSection, p.LatestServerVersion, p.ConfigurationTarget)
	}

	var notice *serverversion.OutdatedNotice
	serverversion.CheckServerVersion(store, updateConfig, func(n serverversion.OutdatedNotice) {
		notice = &n
	})

	if notice == nil {
		if !checkNoPrompt {
			fmt.Fprintf(out, "%s server version %s needs no upgrade\n",
				branding.DisplayName(), store.Get(serverversion.ConfigSection))
		}
		return nil
	}

	if checkNoPrompt {
		if !notify.NewSnooze(config.GlobalDir()).Active(notice.Update.LatestServerVersion) {
			notify.PrintBanner(errOut, *notice)
		}
		return nil
	}

	choice := notify.ChoiceUpgrade
	if checkYes {
		notice.Upgrade()
	} else {
		choice, err = notify.Prompt(cmd.InOrStdin(), errOut, *notice)
		if err != nil {
			return fmt.Errorf("prompting for upgrade: %w", err)
		}
	}

	switch choice {
	case notify.ChoiceUpgrade:
		if upgradeErr != nil {
			return fmt.Errorf("upgrading server version: %w", upgradeErr)
		}
		fmt.Fprintf(out, "Set %s = %s in %s settings (%s)\n",
			notice.Update.ConfigSection, notice.Update.LatestServerVersion,
			notice.Update.ConfigurationTarget, store.Path(notice.Update.ConfigurationTarget))
	case notify.ChoiceOpenSettings:
		path := store.Path(notice.Update.ConfigurationTarget)
		fmt.Fprintf(out, "%s settings: %s\n", notice.Update.ConfigurationTarget, path)
		if err := notify.OpenInEditor(path); err != nil {
			return err
		}
	case notify.ChoiceDismiss:
		// Silently ignore save errors; the worst case is seeing the banner again.
		_ = notify.NewSnooze(config.GlobalDir()).Dismiss(notice.Update.LatestServerVersion)
	}
	return nil
}
