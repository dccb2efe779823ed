package cluster

import (
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rcrowley/go-metrics"

	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
	"github.com/queryd-io/queryd/rpc/transport"
	"github.com/queryd-io/queryd/rpc/transport/tcp"
)

var (
	Logger = logger.GetLogger("cluster")
)

// NewConnector creates a connector for the given cluster configuration.
// It dials the coordinators immediately; an error here means the service
// cannot start.
func NewConnector(config common.ClusterConfig) (IConnector, error) {
	return newConnectorWithTransport(config, tcp.NewTCPClientTransport())
}

// newConnectorWithTransport allows tests to inject a transport.
func newConnectorWithTransport(config common.ClusterConfig, t transport.IRPCClientTransport) (IConnector, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("cluster connector: no coordinator addresses configured")
	}

	// Connect the transport (fixed timeout, see DefaultRPCTimeoutSec)
	err := t.Connect(common.ClientConfig{
		Endpoints:              config.Addresses,
		TimeoutSecond:          DefaultRPCTimeoutSec,
		RetryCount:             config.RetryCount,
		ConnectionsPerEndpoint: config.ConnectionsPerEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("cluster connector: failed to connect to coordinators: %v", err)
	}

	registry := metrics.NewRegistry()

	c := &connector{
		config:     config,
		transport:  t,
		serializer: serializer.NewBinarySerializer(),
		metaCache:  xsync.NewMapOf[string, *common.TableMeta](),
		requests:   metrics.GetOrRegisterMeter("cluster.requests", registry),
		failures:   metrics.GetOrRegisterMeter("cluster.failures", registry),
	}

	Logger.Infof("Connected to %d coordinator(s)", len(config.Addresses))

	return c, nil
}

// connector implements IConnector on top of an RPC client transport.
// The coordinators speak the same wire protocol as the service itself,
// always with the binary serializer.
type connector struct {
	config     common.ClusterConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer

	// Read-through cache for table metadata, keyed by table name
	metaCache *xsync.MapOf[string, *common.TableMeta]

	// Request/failure rates towards the coordinators
	requests metrics.Meter
	failures metrics.Meter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (c *connector) Get(table, key string) ([]byte, bool, error) {
	resp, err := c.invoke(common.NewGetRequest(table, key))
	if err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *connector) Put(table, key string, value []byte) error {
	_, err := c.invoke(common.NewPutRequest(table, key, value))
	return err
}

func (c *connector) Delete(table, key string) error {
	_, err := c.invoke(common.NewDeleteRequest(table, key))
	return err
}

func (c *connector) Table(name string) (*common.TableMeta, error) {
	// Fast path: cache hit
	if meta, ok := c.metaCache.Load(name); ok {
		return meta, nil
	}

	// Slow path: fetch from the coordinators
	resp, err := c.invoke(common.NewTableMetaRequest(name))
	if err != nil {
		return nil, err
	}

	meta, err := common.DecodeTableMeta(resp.Meta)
	if err != nil {
		return nil, fmt.Errorf("cluster connector: invalid table metadata for %q: %v", name, err)
	}

	// Concurrent fetchers may race here; first stored value wins so all
	// callers see the same *TableMeta
	actual, _ := c.metaCache.LoadOrStore(name, meta)
	return actual, nil
}

func (c *connector) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke sends a request to the coordinators and validates the response.
// Application errors reported by the coordinators surface as regular errors.
func (c *connector) invoke(req *common.Message) (*common.Message, error) {
	c.requests.Mark(1)

	// Serialize the request
	reqBytes, err := c.serializer.Serialize(*req)
	if err != nil {
		c.failures.Mark(1)
		return nil, err
	}

	// Send the request
	respBytes, err := c.transport.Send(reqBytes)
	if err != nil {
		c.failures.Mark(1)
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	if err := c.serializer.Deserialize(respBytes, resp); err != nil {
		c.failures.Mark(1)
		return nil, fmt.Errorf("cluster connector: %v", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		c.failures.Mark(1)
		return nil, fmt.Errorf("cluster connector: %s", resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		c.failures.Mark(1)
		return nil, fmt.Errorf("cluster connector: unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}
