package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/queryd-io/queryd/lib/cluster"
	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
	"github.com/queryd-io/queryd/rpc/transport"
)

var Logger = logger.GetLogger("rpc")

// NewQueryService creates a new query service.
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewQueryService(
//		*config,
//		tcp.NewDefaultTCPServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewQueryService(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *QueryService {
	Logger.Infof("Created Query Service")
	Logger.Infof(config.String())

	return &QueryService{
		config:     config,
		transport:  transport,
		serializer: serializer,
		metrics:    newServiceMetrics(),
	}
}

// QueryService ties the transport, the dispatcher, the worker pool and
// the backend connector together.
type QueryService struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	metrics    *serviceMetrics
	connector  cluster.IConnector
	pool       *workerPool
	dispatcher *dispatcher
}

// registerTransportHandler wires the dispatcher to the transport.
// Dispatch failures (malformed calls, serialization problems) are turned
// into protocol-level error responses if the call can still be answered.
func (s *QueryService) registerTransportHandler() {
	s.transport.RegisterHandler(func(call *transport.InboundCall) {
		err := s.dispatcher.Handle(call)
		if err == nil {
			return
		}
		Logger.Errorf("Failed to handle call: %v", err)

		if call == nil || call.Responded() {
			return
		}

		respBytes, serr := s.serializer.Serialize(*common.NewErrorResponse(err.Error()))
		if serr != nil {
			Logger.Errorf("Failed to serialize error response: %v", serr)
			return
		}
		if rerr := call.RespondSuccess(respBytes); rerr != nil {
			Logger.Errorf("Failed to send error response: %v", rerr)
		}
	})
}

func (s *QueryService) init() error {
	// Init logger
	common.InitLoggers(s.config)

	// Build the backend connector. Without it the service cannot run, so
	// a failure here aborts startup.
	connector, err := cluster.NewConnector(s.config.Cluster)
	if err != nil {
		return fmt.Errorf("failed to create backend connector: %w", err)
	}
	s.connector = connector

	// Create the worker pool. All workers share the connector and the
	// serializer.
	s.pool = newWorkerPool(s.config.InitialPoolSize, func(id int) *Worker {
		return newWorker(id, s.connector, s.serializer)
	})

	// Create the dispatcher
	s.dispatcher = newDispatcher(s.pool, s.serializer, s.metrics)

	Logger.Infof("queryd setup completed successfully (pool size %d)", s.pool.Size())

	// Configure the transport layer
	s.registerTransportHandler()

	// Optionally expose the latency histograms over HTTP
	if s.config.MetricsEndpoint != "" {
		go s.serveMetrics()
	}

	return nil
}

// serveMetrics exposes the dispatch latency histograms on /metrics
func (s *QueryService) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.metrics.WritePrometheus(w)
	})

	Logger.Infof("Starting metrics server on %s", s.config.MetricsEndpoint)
	if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
		Logger.Errorf("Metrics server stopped: %v", err)
	}
}

// Serve starts the query service.
// This function initializes the backend connector and the worker pool and
// then starts the transport layer. It blocks until the transport stops.
func (s *QueryService) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// WriteMetrics writes the dispatch latency histograms in prometheus text
// format to the given writer
func (s *QueryService) WriteMetrics(w io.Writer) {
	s.metrics.WritePrometheus(w)
}
