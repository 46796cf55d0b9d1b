// Package dto provides request/response shapes for the HTTP API.
package dto

// Envelope is the success wrapper every endpoint returns:
// {"status": "success", "data": {...}} with an optional results count
// on list endpoints. Failures are produced by the error middleware.
type Envelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data"`
}

// Success wraps data in the success envelope.
func Success(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

// SuccessList wraps a list in the success envelope with its count.
func SuccessList(results int, data any) Envelope {
	return Envelope{Status: "success", Results: &results, Data: data}
}
