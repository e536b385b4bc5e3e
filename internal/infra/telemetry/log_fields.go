package telemetry

const (
	FieldInstance  = "instance"
	FieldDevice    = "device_id"
	FieldModel     = "model"
	FieldEndpoint  = "endpoint"
	FieldRequestID = "request_id"
	FieldLogSource = "log_source"
	FieldLogStream = "stream"
)

const (
	LogSourceCore   = "core"
	LogSourceWorker = "worker"
)
