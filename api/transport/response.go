package transport

import "encoding/json"

// Envelope is the response wrapper shared by success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

func NewError(code string, err interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
