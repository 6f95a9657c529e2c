package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyflap/internal/platform/tui"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var (
	flagPlain         bool
	flagRewardAccount string
	flagLimit         int
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show the token reward ledger",
	Long: `Browse token grants recorded in the reward ledger.

By default an interactive table is shown. --plain prints totals
(and recent grants with --account) as text.

Examples:
  skyflap rewards
  skyflap rewards --plain
  skyflap rewards --plain --account alice --limit 20`,
	Run: runRewards,
}

func init() {
	rewardsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print as text instead of the interactive view")
	rewardsCmd.Flags().StringVar(&flagRewardAccount, "account", "", "Account to show")
	rewardsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to print")
}

func runRewards(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening reward ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRewards(store, flagRewardAccount, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printRewards(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rewards: %v\n", err)
		os.Exit(1)
	}
}

func printRewards(store *storage.Store) error {
	if flagRewardAccount == "" {
		top, err := store.TopAccounts(flagLimit)
		if err != nil {
			return err
		}

		fmt.Println("Token totals")
		fmt.Println()
		if len(top) == 0 {
			fmt.Println("No tokens granted yet.")
			fmt.Println()
			fmt.Println("Play 'skyflap play --account <name>' to earn the first tokens!")
			return nil
		}

		fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "Rank", "Account", "Tokens", "Grants", "Last")
		fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "----", "-------", "------", "------", "----")
		for i, a := range top {
			fmt.Printf("  %-4d  %-16s  %-8d  %-6d  %s\n",
				i+1, a.Account, a.Total, a.Grants, a.LastAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	}

	total, err := store.TotalRewards(flagRewardAccount)
	if err != nil {
		return err
	}
	recent, err := store.RecentRewards(flagRewardAccount, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Tokens - %s\n", flagRewardAccount)
	fmt.Println()
	if len(recent) == 0 {
		fmt.Println("No tokens granted yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %s\n", "Session", "Amount", "Date")
	fmt.Printf("  %-16s  %-6s  %s\n", "-------", "------", "----")
	for _, e := range recent {
		fmt.Printf("  %-16s  %-6d  %s\n", e.SessionID, e.Amount, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}

	fmt.Println()
	fmt.Printf("Total: %d\n", total)
	return nil
}
