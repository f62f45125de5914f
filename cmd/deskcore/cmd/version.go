package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the deskcore CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("deskcore version %s\n", version)
		fmt.Println("Portfolio accounting and strategy backtesting core")
		fmt.Println("https://github.com/rustyeddy/deskcore")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
