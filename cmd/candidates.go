package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/electiongw/election"
	"github.com/tranvictor/electiongw/normalize"
)

var candidatesJSON bool

func candidateRows(list []election.Candidate) [][]string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID),
			c.Name,
			c.VoteCount.String(),
			c.Address.Hex(),
		})
	}
	return rows
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List every candidate with its vote count",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		list, err := a.service.Candidates(ctx)
		if err != nil {
			explain(err)
			return err
		}
		if candidatesJSON {
			data, err := json.MarshalIndent(normalize.Value(list), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(appUI.Writer(), string(data))
			return nil
		}
		label, _ := a.networkLabel(ctx)
		appUI.Section(fmt.Sprintf("Candidates on %s", label))
		if len(list) == 0 {
			appUI.Warn("No candidates yet.")
			return nil
		}
		appUI.Table([]string{"ID", "NAME", "VOTES", "ADDRESS"}, candidateRows(list))
		return nil
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the winning candidate",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		winner, err := a.service.Results(context.Background())
		if err != nil {
			explain(err)
			return err
		}
		appUI.Section("Winning candidate")
		appUI.KeyValue([][2]string{
			{"ID", winner.ID.String()},
			{"Name", winner.Name},
			{"Votes", winner.VoteCount.String()},
		})
		return nil
	},
}

func init() {
	candidatesCmd.Flags().BoolVar(&candidatesJSON, "json", false, "print the list as the HTTP API returns it")
	rootCmd.AddCommand(candidatesCmd)
	rootCmd.AddCommand(resultsCmd)
}
