package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/janec/payroll/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <bash|zsh|fish>",
	Short: "Print a shell completion script",
	Long: `Print a completion script for payroll. "payroll show <TAB>" then offers
the IDs of stored employees.

  bash:  source <(payroll completion bash)
  zsh:   payroll completion zsh > "${fpath[1]}/_payroll"
  fish:  payroll completion fish | source`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
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
}

// completeEmployeeIDs completes employee IDs, described by name.
func completeEmployeeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storage.Open(flagDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	records, err := s.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, e := range records {
		id := strconv.Itoa(e.ID)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+e.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
