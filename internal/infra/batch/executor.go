// Package batch assembles N independent requests into one worker round trip
// and scatters the reply back onto N independent response slots.
//
// Partial-failure isolation is the central invariant here: one bad request
// fails alone, a transport failure fails the batch but not the instance, and
// every request always receives exactly one terminal response.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/tensor"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

// Caller issues the single synchronous RPC per batch.
type Caller interface {
	Execute(ctx context.Context, batch *workerv1.ExecuteRequest) (*workerv1.ExecuteResponse, error)
}

type Executor struct {
	caller  Caller
	logger  *zap.Logger
	stats   domain.StatsReporter
	metrics domain.Metrics

	// now is swappable for tests.
	now func() time.Time
}

type Options struct {
	Logger  *zap.Logger
	Stats   domain.StatsReporter
	Metrics domain.Metrics
}

func New(caller Caller, opts Options) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		caller:  caller,
		logger:  logger.Named("batch"),
		stats:   opts.Stats,
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// slot tracks one request's terminal response. Once resp goes nil the slot
// is closed and nothing else may touch it.
type slot struct {
	resp    domain.Response
	success bool
}

// Execute runs one batch. Request/result pairing is by array index; output
// tensors within a result are matched to requested outputs by name, since
// the worker's output order is not guaranteed.
func (e *Executor) Execute(ctx context.Context, instance string, requests []domain.Request) {
	batchStart := e.now()

	slots := make([]slot, len(requests))
	for i, req := range requests {
		resp, err := req.NewResponse()
		if err != nil {
			e.logger.Error("failed to create response",
				zap.String("request_id", req.ID()), zap.Error(err))
			continue
		}
		slots[i].resp = resp
	}

	envelope := e.stage(requests, slots)

	computeStart := e.now()
	reply, rpcErr := e.caller.Execute(ctx, envelope)
	computeEnd := e.now()

	if rpcErr == nil && len(reply.GetResponses()) != len(requests) {
		// The contract leaves a mis-sized result array undefined; treat it
		// as a batch-level transport failure rather than indexing past it.
		rpcErr = domain.E(domain.CodeTransportFailed, "batch.execute",
			fmt.Sprintf("worker returned %d results for %d requests",
				len(reply.GetResponses()), len(requests)), nil)
	}

	if rpcErr != nil {
		// A failure at this stage usually indicates a bug in the model
		// code. Fail every still-open slot; the channel stays usable.
		err := domain.E(domain.CodeTransportFailed, "batch.execute",
			"Execute failed, message: "+rpcErr.Error(), rpcErr)
		for i := range slots {
			e.failSlot(&slots[i], requests[i], err)
		}
		e.finish(instance, requests, slots, batchStart, computeStart, computeEnd, computeEnd, rpcErr)
		return
	}

	for i, req := range requests {
		s := &slots[i]
		if s.resp == nil {
			continue
		}
		e.bind(req, s, reply.GetResponses()[i])
	}

	batchEnd := e.now()
	e.finish(instance, requests, slots, batchStart, computeStart, computeEnd, batchEnd, nil)
}

// stage builds the batch envelope. A failure while reading one request's
// inputs closes only that slot; its envelope position is kept (empty) so the
// reply array stays index-aligned with the request array.
func (e *Executor) stage(requests []domain.Request, slots []slot) *workerv1.ExecuteRequest {
	envelope := &workerv1.ExecuteRequest{
		Requests: make([]*workerv1.InferenceRequest, len(requests)),
	}
	for i, req := range requests {
		ir := &workerv1.InferenceRequest{
			Id:            req.ID(),
			CorrelationId: req.CorrelationID(),
		}
		envelope.Requests[i] = ir
		if slots[i].resp == nil {
			continue
		}

		staged := true
		for idx := 0; idx < req.InputCount(); idx++ {
			in, err := req.Input(idx)
			if err == nil {
				var wire *workerv1.Tensor
				wire, err = tensor.ToWire(in)
				if err == nil {
					ir.Inputs = append(ir.Inputs, wire)
					continue
				}
			}
			e.failSlot(&slots[i], req, err)
			ir.Inputs = nil
			staged = false
			break
		}
		if staged {
			ir.RequestedOutputNames = append(ir.RequestedOutputNames, req.RequestedOutputs()...)
		}
	}
	return envelope
}

// bind scatters one successful result onto its request's response slot.
func (e *Executor) bind(req domain.Request, s *slot, result *workerv1.InferenceResponse) {
	if result.GetFailed() {
		e.failSlot(s, req, domain.E(domain.CodeWorkerError, "batch.bind",
			result.GetError().GetMessage(), nil))
		return
	}

	outputs := result.GetOutputs()
	for _, name := range req.RequestedOutputs() {
		wire := findOutput(outputs, name)
		if wire == nil {
			// Not fatal: the worker may legitimately omit an output. The
			// response proceeds with whatever outputs were found.
			e.logger.Error("can't find output tensor",
				zap.String("request_id", req.ID()), zap.String("output", name))
			continue
		}

		size, err := tensor.WireByteSize(wire)
		if err != nil {
			e.failSlot(s, req, err)
			return
		}
		buf, err := s.resp.OutputBuffer(name, domain.DataType(wire.GetDtype()), wire.GetDims(), size)
		if err != nil {
			e.failSlot(s, req, domain.E(domain.CodeInternal, "batch.bind",
				"failed to create output buffer for "+name, err))
			return
		}
		if err := tensor.FromWire(wire, buf); err != nil {
			e.failSlot(s, req, err)
			return
		}
	}

	if err := s.resp.Send(nil); err != nil {
		e.logger.Error("failed sending response",
			zap.String("request_id", req.ID()), zap.Error(err))
		s.resp = nil
		return
	}
	s.resp = nil
	s.success = true
}

// failSlot sends the terminal error response for one request, if its slot is
// still open, and closes the slot. Sibling slots are never touched.
func (e *Executor) failSlot(s *slot, req domain.Request, err error) {
	if s.resp == nil {
		return
	}
	if sendErr := s.resp.Send(err); sendErr != nil {
		e.logger.Error("failed sending error response",
			zap.String("request_id", req.ID()), zap.Error(sendErr))
	}
	s.resp = nil
}

// finish reports statistics and releases every request in its original
// order, one pass over all N, regardless of per-request outcome.
func (e *Executor) finish(instance string, requests []domain.Request, slots []slot, batchStart, computeStart, computeEnd, batchEnd time.Time, rpcErr error) {
	if e.stats != nil {
		for i, req := range requests {
			if err := e.stats.ReportRequest(req, slots[i].success, batchStart, computeStart, computeEnd, batchEnd); err != nil {
				e.logger.Error("failed reporting request statistics", zap.Error(err))
			}
		}
		// The bridge makes no batching decisions of its own, so the
		// reported batch size is always 1.
		if err := e.stats.ReportBatch(1, batchStart, computeStart, computeEnd, batchEnd); err != nil {
			e.logger.Error("failed reporting batch statistics", zap.Error(err))
		}
	}
	for _, req := range requests {
		req.Release()
	}
	if e.metrics != nil {
		e.metrics.ObserveExecute(instance, len(requests), batchEnd.Sub(batchStart), rpcErr)
	}
	e.logger.Debug("released requests",
		zap.String("instance", instance), zap.Int("count", len(requests)))
}

func findOutput(outputs []*workerv1.Tensor, name string) *workerv1.Tensor {
	for _, t := range outputs {
		if t.GetName() == name {
			return t
		}
	}
	return nil
}
