package rpcserver

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/deanroom/grpc-demo/internal/benchmarkpb"
	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/workqueue"
)

// Service implements benchmarkpb.BenchmarkServiceServer by handing every
// call to a single-consumer work queue and awaiting its completion signal.
// It never blocks the gRPC I/O goroutine on the queue: Enqueue is
// non-blocking, and the handler goroutine suspends on the Work Item's own
// completion channel.
type Service struct {
	benchmarkpb.UnimplementedBenchmarkServiceServer

	queue *workqueue.Queue
	log   zerolog.Logger
}

// New constructs a Service backed by queue.
func New(queue *workqueue.Queue, log zerolog.Logger) *Service {
	return &Service{
		queue: queue,
		log:   log.With().Str("component", "rpcserver").Logger(),
	}
}

// Process implements benchmarkpb.BenchmarkServiceServer.
//
// On success it returns a response carrying the Server Timeline and
// queue_depth_at_enqueue. On cancellation — observed either while the item
// sat in the queue or while it was being processed — it terminates the RPC
// with codes.Cancelled. Deadline-exceeded is solely a client-side concept
// (§4.C): this handler never returns codes.DeadlineExceeded.
func (s *Service) Process(ctx context.Context, req *benchmarkpb.ProcessRequest) (*benchmarkpb.ProcessResponse, error) {
	item := model.NewWorkItem(ctx, req.GetRequestId(), s.queue.Now())
	s.queue.Enqueue(item)

	res := item.Wait()
	if res.Cancelled {
		return nil, status.Error(codes.Cancelled, "request cancelled while queued")
	}
	if res.Err != nil {
		s.log.Error().Err(res.Err).Str("request_id", req.GetRequestId()).Msg("work item failed")
		return nil, status.Errorf(codes.Internal, "processing error: %v", res.Err)
	}
	if ctx.Err() != nil {
		// Dequeued and run to completion before the cancellation signal was
		// observed by the queue; §5 "in-flight processing is not
		// interrupted" means this item still succeeded, but the caller has
		// already given up, so report cancellation rather than success.
		return nil, status.Error(codes.Cancelled, "request cancelled during processing")
	}

	tl := item.Timeline()
	return &benchmarkpb.ProcessResponse{
		RequestId:           req.GetRequestId(),
		Success:             true,
		QueueDepthAtEnqueue: item.QueueDepthAtEnqueue,
		Timeline: &benchmarkpb.ServerTimeline{
			ArrivalTime:  tl.ArrivalTime,
			EnqueueTime:  tl.EnqueueTime,
			DequeueTime:  tl.DequeueTime,
			CompleteTime: tl.CompleteTime,
		},
	}, nil
}
