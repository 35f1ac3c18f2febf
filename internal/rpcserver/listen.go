package rpcserver

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/deanroom/grpc-demo/internal/benchmarkpb"
	"github.com/deanroom/grpc-demo/internal/workqueue"
)

// Server wraps a bound listener and the *grpc.Server serving it, so the
// caller can shut both down together.
type Server struct {
	Addr string

	grpcServer *grpc.Server
	listener   net.Listener
}

// Listen binds a TCP listener on port (0 selects an ephemeral port),
// registers a Service backed by queue, and starts serving in a background
// goroutine. maxConcurrentStreams configures the per-connection stream cap
// (§6 recommends ≥ 500 to survive concurrency spikes).
func Listen(port int, maxConcurrentStreams uint32, queue *workqueue.Queue, log zerolog.Logger) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("rpcserver: listen: %w", err)
	}

	gs := grpc.NewServer(grpc.MaxConcurrentStreams(maxConcurrentStreams))
	benchmarkpb.RegisterBenchmarkServiceServer(gs, New(queue, log))

	srv := &Server{
		Addr:       lis.Addr().String(),
		grpcServer: gs,
		listener:   lis,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("rpc server listening")
		if err := gs.Serve(lis); err != nil {
			log.Debug().Err(err).Msg("rpc server stopped serving")
		}
	}()

	return srv, nil
}

// Stop gracefully stops the server, waiting for in-flight RPCs to
// complete. Pending queue backlog (if any) is unaffected — callers are
// responsible for shutting down the Queue separately.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}
