package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// NoticeEnvelope carries the user-facing toast alongside the payload.
type NoticeEnvelope struct {
	Data   any    `json:"data"`
	Notice string `json:"notice,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
