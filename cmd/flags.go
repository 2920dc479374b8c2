package cmd

import (
	"fmt"
	"os"

	gngenomes "github.com/gnames/gngenomes/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n",
			gngenomes.Version, gngenomes.Build)
		os.Exit(0)
	}
}
