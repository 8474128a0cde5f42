package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for space3d.

Bash:

  $ source <(space3d completion bash)

Zsh:

  $ space3d completion zsh > "${fpath[1]}/_space3d"

Fish:

  $ space3d completion fish > ~/.config/fish/completions/space3d.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// markFileFlags adds file extension hints to the completion of file
// flags. It runs after every init so all flags exist.
func markFileFlags() {
	for _, cmd := range []*cobra.Command{rootCmd, renderCmd} {
		_ = cmd.MarkFlagFilename("points", "csv", "txt")
		_ = cmd.MarkFlagFilename("mesh", "stl", "scad")
		_ = cmd.MarkFlagFilename("config", "toml")
	}
	_ = sampleCmd.MarkFlagFilename("config", "toml")
}
