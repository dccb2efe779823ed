package client

import (
	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
	"github.com/queryd-io/queryd/rpc/transport"
)

// IQueryClient is the client-side interface of the query service
type IQueryClient interface {
	// Ping checks that the service is reachable
	Ping() error

	// Get reads a row by table and key
	Get(table, key string) (value []byte, ok bool, err error)

	// Put inserts or updates a row
	Put(table, key string, value []byte) error

	// Delete removes a row
	Delete(table, key string) error

	// TableMeta returns the metadata of a table
	TableMeta(table string) (*common.TableMeta, error)

	// Close closes the underlying transport
	Close() error
}

// NewQueryClient creates a new client for the query service.
// The function takes a config, a transport and a serializer as parameters.
// It connects the transport immediately and returns an error if no
// endpoint is reachable.
func NewQueryClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (IQueryClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create the client
	c := queryClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}

	// Return the client
	return &c, nil
}

type queryClient struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IQueryClient)
// --------------------------------------------------------------------------

func (c *queryClient) Ping() (err error) {
	req := common.NewPingRequest()
	_, err = invokeRPCRequest(req, c.transport, c.serializer)
	return err
}

func (c *queryClient) Get(table, key string) (value []byte, ok bool, err error) {
	req := common.NewGetRequest(table, key)
	resp, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *queryClient) Put(table, key string, value []byte) (err error) {
	req := common.NewPutRequest(table, key, value)
	_, err = invokeRPCRequest(req, c.transport, c.serializer)
	return err
}

func (c *queryClient) Delete(table, key string) (err error) {
	req := common.NewDeleteRequest(table, key)
	_, err = invokeRPCRequest(req, c.transport, c.serializer)
	return err
}

func (c *queryClient) TableMeta(table string) (*common.TableMeta, error) {
	req := common.NewTableMetaRequest(table)
	resp, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return nil, err
	}
	return common.DecodeTableMeta(resp.Meta)
}

func (c *queryClient) Close() error {
	return c.transport.Close()
}
