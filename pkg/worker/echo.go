package worker

import (
	workerv1 "modelbridge/pkg/api/worker/v1"
)

// EchoModel maps each request's inputs onto its requested outputs pairwise:
// requested output i carries input i's dtype, shape and payload under the
// requested name. Requested outputs beyond the input count are omitted,
// which makes it a handy fixture for the bridge's missing-output path.
type EchoModel struct{}

func (EchoModel) Initialize(map[string]string) error { return nil }

func (EchoModel) Execute(requests []*workerv1.InferenceRequest) []*workerv1.InferenceResponse {
	responses := make([]*workerv1.InferenceResponse, len(requests))
	for i, req := range requests {
		resp := &workerv1.InferenceResponse{}
		for j, name := range req.GetRequestedOutputNames() {
			if j >= len(req.GetInputs()) {
				break
			}
			in := req.GetInputs()[j]
			resp.Outputs = append(resp.Outputs, &workerv1.Tensor{
				Name:    name,
				Dtype:   in.GetDtype(),
				Dims:    in.GetDims(),
				RawData: in.GetRawData(),
			})
		}
		responses[i] = resp
	}
	return responses
}

func (EchoModel) Finalize() error { return nil }

var _ Model = EchoModel{}
