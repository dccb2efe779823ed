package serve

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "github.com/queryd-io/queryd/cmd/util"
	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/server"
	"github.com/queryd-io/queryd/rpc/transport"
	"github.com/queryd-io/queryd/rpc/transport/http"
	"github.com/queryd-io/queryd/rpc/transport/tcp"
	"github.com/queryd-io/queryd/rpc/transport/unix"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the queryd server",
		Long:    `Start the queryd server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is QUERYD_<flag> (e.g. QUERYD_ENDPOINT=0.0.0.0:9042)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:9042", cmdUtil.WrapString("The address on which the query API will listen (e.g. localhost:9042, /tmp/queryd.sock, ...)"))

	key = "cluster-addresses"
	ServeCmd.PersistentFlags().String(key, "localhost:7000", cmdUtil.WrapString("Comma-separated list of backend cluster coordinator addresses"))

	key = "cluster-conn-per-endpoint"
	ServeCmd.PersistentFlags().Int(key, 1, cmdUtil.WrapString("Simultaneous connections per coordinator"))

	key = "cluster-retries"
	ServeCmd.PersistentFlags().Int(key, 3, cmdUtil.WrapString("How many times to retry a coordinator request"))

	key = "initial-pool-size"
	ServeCmd.PersistentFlags().Int(key, 16, cmdUtil.WrapString("Number of workers to create at startup. The pool grows on demand and never shrinks"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Read/write timeout of the transport in seconds"))

	key = "max-workers-per-conn"
	ServeCmd.PersistentFlags().Int(key, 64, cmdUtil.WrapString("Maximum number of concurrent requests per client connection (tcp and unix only)"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 64, cmdUtil.WrapString("The size of the write buffer for the transport (in KB, ignored for http)"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 64, cmdUtil.WrapString("The size of the read buffer for the transport (in KB, ignored for http)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (tcp only)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval in seconds (tcp only)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The linger time in seconds (tcp only)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address for the prometheus metrics listener (e.g. localhost:9100). Disabled if empty"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// parse coordinator addresses
	addresses := []string{}
	for _, addr := range strings.Split(viper.GetString("cluster-addresses"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addresses = append(addresses, addr)
		}
	}
	if len(addresses) == 0 {
		return fmt.Errorf("at least one cluster coordinator address is required")
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.InitialPoolSize = viper.GetInt("initial-pool-size")
	serveCmdConfig.Cluster = common.ClusterConfig{
		Addresses:              addresses,
		ConnectionsPerEndpoint: viper.GetInt("cluster-conn-per-endpoint"),
		RetryCount:             viper.GetInt("cluster-retries"),
	}
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxWorkersPerConn = viper.GetInt("max-workers-per-conn")
	serveCmdConfig.WriteBufferSize = viper.GetInt("write-buffer") * 1024
	serveCmdConfig.ReadBufferSize = viper.GetInt("read-buffer") * 1024
	serveCmdConfig.TCPNoDelay = viper.GetBool("tcp-nodelay")
	serveCmdConfig.TCPKeepAliveSec = viper.GetInt("tcp-keepalive")
	serveCmdConfig.TCPLingerSec = viper.GetInt("tcp-linger")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return nil
}

// run starts the queryd server
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	// Parse the transport
	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "http":
		t = http.NewHttpServerTransport()
	case "tcp":
		t = tcp.NewTCPServerTransport(serveCmdConfig.WriteBufferSize, serveCmdConfig.MaxWorkersPerConn)
	case "unix":
		t = unix.NewUnixServerTransport(serveCmdConfig.WriteBufferSize, serveCmdConfig.MaxWorkersPerConn)
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv := server.NewQueryService(
		*serveCmdConfig,
		t,
		s,
	)

	return serv.Serve()
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("queryd")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
