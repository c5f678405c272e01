package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/electiongw/config"
)

func AddCommonFlagsToTransactionalCmds(c *cobra.Command) {
	c.PersistentFlags().
		Uint64VarP(&config.GasLimit, "gas", "g", 0, "Gas limit of every write. Default: ledger.gasLimit (3000000).")
	c.PersistentFlags().
		BoolVarP(&config.DontWaitToBeMined, "no-wait", "F", false, "Will not wait the tx to be mined.")
}
