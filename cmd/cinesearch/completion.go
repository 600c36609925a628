package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for cinesearch.

To load completions:

Bash:
  $ source <(cinesearch completion bash)

Zsh:
  $ source <(cinesearch completion zsh)
  # To load completions for each session, execute once:
  $ cinesearch completion zsh > "${fpath[1]}/_cinesearch"

Fish:
  $ cinesearch completion fish | source

PowerShell:
  PS> cinesearch completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(w)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
