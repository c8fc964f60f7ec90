package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// completionCommand creates the completion command. Besides commands and
// flags, the generated scripts complete --format values and the named
// colors accepted by --fill, --background and --outline.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for tagscloud.

  $ source <(tagscloud completion bash)
  $ tagscloud completion zsh > "${fpath[1]}/_tagscloud"
  $ tagscloud completion fish > ~/.config/fish/completions/tagscloud.fish
  PS> tagscloud completion powershell | Out-String | Invoke-Expression

Formats complete after --format, including comma-separated lists
(--format png,<TAB>).`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completionColors are offered for the color flags; any SVG color name or
// hex value is accepted.
var completionColors = []string{
	"black", "white", "yellow", "gold", "orange", "red", "crimson",
	"green", "teal", "steelblue", "navy", "purple", "gray",
}

// registerCompletions attaches value completion to the output flags of cmd.
func (f *outputFlags) registerCompletions(cmd *cobra.Command) {
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	for _, name := range []string{"fill", "background", "outline"} {
		cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(completionColors, cobra.ShellCompDirectiveNoFileComp))
	}
}

// completeFormats completes the last element of a comma-separated format
// list, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	listed := parseFormats(prefix)

	var out []string
	for _, f := range sink.Formats() {
		if strings.HasPrefix(f, last) && !slices.Contains(listed, f) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
