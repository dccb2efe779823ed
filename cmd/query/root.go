package query

import (
	"github.com/spf13/cobra"

	"github.com/queryd-io/queryd/cmd/util"
	"github.com/queryd-io/queryd/rpc/client"
)

var (
	queryClient client.IQueryClient

	// QueryCommands represents the query command group
	QueryCommands = &cobra.Command{
		Use:               "query",
		Short:             "Run queries against a running queryd server",
		PersistentPreRunE: setupQueryClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the query command
	util.SetupRPCClientFlags(QueryCommands)

	// Add subcommands
	QueryCommands.AddCommand(pingCmd)
	QueryCommands.AddCommand(getCmd)
	QueryCommands.AddCommand(putCmd)
	QueryCommands.AddCommand(delCmd)
	QueryCommands.AddCommand(metaCmd)
}

// setupQueryClient initializes the RPC client
func setupQueryClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the query client
	queryClient, err = client.NewQueryClient(
		*config,
		t,
		s,
	)

	return err
}
