package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/queryd-io/queryd/cmd/query"
	"github.com/queryd-io/queryd/cmd/serve"
	"github.com/queryd-io/queryd/cmd/util"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "queryd",
		Short: "wire-protocol query service",
		Long: fmt.Sprintf(`queryd (v%s)

A request-dispatch service that fronts a distributed database cluster,
routing wire-protocol queries through a growing pool of reusable workers.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of queryd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("queryd v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(query.QueryCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("serializer to use (json, gob, binary, msgpack)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
