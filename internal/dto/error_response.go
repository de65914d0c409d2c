package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

type DetailedErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
	TraceID string `json:"traceId,omitempty"`
}

type UpstreamStatusErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
	Status  int    `json:"status"`
	TraceID string `json:"traceId,omitempty"`
}

type UpstreamShapeErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
	Raw     any    `json:"raw"`
	TraceID string `json:"traceId,omitempty"`
}

type NetworkErrorDetails struct {
	Message   string  `json:"message"`
	Code      *string `json:"code"`
	Cause     *string `json:"cause"`
	CauseCode *string `json:"causeCode"`
}

type NetworkErrorResponse struct {
	Error   string              `json:"error"`
	Details NetworkErrorDetails `json:"details"`
	TraceID string              `json:"traceId,omitempty"`
}
