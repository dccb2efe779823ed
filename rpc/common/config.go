package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Cluster configuration struct
// --------------------------------------------------------------------------

// ClusterConfig holds the parameters used to build the backend connector.
// The RPC timeout towards the coordinators is a fixed constant of the
// connector and deliberately not part of this configuration.
type ClusterConfig struct {
	// Addresses of the cluster coordinators
	Addresses []string
	// ConnectionsPerEndpoint is the number of simultaneous connections per coordinator
	ConnectionsPerEndpoint int
	// RetryCount is how many times a coordinator request is retried
	RetryCount int
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the query service.
type ServerConfig struct {
	// The address on which the service will listen
	Endpoint string

	// Worker pool parameters
	InitialPoolSize int

	// Backend cluster parameters
	Cluster ClusterConfig

	// Transport parameters
	TimeoutSecond     int64
	MaxWorkersPerConn int
	WriteBufferSize   int
	ReadBufferSize    int
	TCPNoDelay        bool
	TCPKeepAliveSec   int
	TCPLingerSec      int

	// Optional address for the prometheus metrics listener ("" = disabled)
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Service settings
	addSection("Query Service")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Initial Pool Size", strconv.Itoa(c.InitialPoolSize))
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Backend cluster
	addSection("Backend Cluster")
	addField("Retry Count", strconv.Itoa(c.Cluster.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Cluster.ConnectionsPerEndpoint)))))
	for i, addr := range c.Cluster.Addresses {
		addField(fmt.Sprintf("Coordinator %d", i), addr)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the configuration for a client of the query service
// (and for the connector's coordinator client, which speaks the same protocol).
type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int

	// Socket tuning (ignored by transports that do not support it)
	WriteBufferSize int
	ReadBufferSize  int
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
