package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/electiongw/election"
)

var voteYes bool

var voteCmd = &cobra.Command{
	Use:   "vote <candidate name>",
	Short: "Cast a vote for a candidate",
	Long: `Cast a vote for a candidate by name, signed by the first available
account. Words are joined with spaces so quoting is optional.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := election.VoteInput{CandidateName: strings.Join(args, " ")}
		if err := in.Validate(); err != nil {
			explain(err)
			return err
		}

		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := context.Background()

		accounts, err := a.service.Accounts(ctx)
		if err != nil {
			explain(err)
			return err
		}
		if len(accounts) > 0 {
			appUI.Info("Voter account: %s", accounts[0].Hex())
		}
		if !voteYes && !appUI.Confirm("Vote for "+in.CandidateName+"?", true) {
			appUI.Warn("Aborted.")
			return nil
		}

		stop := appUI.Spinner("Casting vote...")
		res, err := a.service.Vote(ctx, in)
		stop()
		if err != nil {
			explain(err)
			return err
		}
		appUI.Success("%s", res.Message)
		appUI.Critical("Tx: %s", res.Transaction.Hex())
		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the accounts writes can be signed with, in selection order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := context.Background()

		accounts, err := a.service.Accounts(ctx)
		if err != nil {
			explain(err)
			return err
		}
		label, _ := a.networkLabel(ctx)
		appUI.Info("Network: %s", label)
		if block, err := a.reader.CurrentBlock(ctx); err == nil {
			appUI.Info("Current block: %d", block)
		}
		if len(accounts) == 0 {
			appUI.Warn("No accounts available. Unlock one on the node or configure signer.privateKey.")
			return nil
		}
		for i, acc := range accounts {
			if i == 0 {
				appUI.Indent().Success("%d. %s (signs writes)", i+1, acc.Hex())
				continue
			}
			appUI.Indent().Info("%d. %s", i+1, acc.Hex())
		}
		return nil
	},
}

func init() {
	AddCommonFlagsToTransactionalCmds(voteCmd)
	voteCmd.Flags().BoolVarP(&voteYes, "yes", "y", false, "don't ask for confirmation")
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(accountsCmd)
}
