//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Result is the uniform envelope every resource client returns.
// Callers branch on Success; Error carries a display-ready message.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	// Status is the backend's HTTP status; 0 when the backend was never reached.
	Status int `json:"-"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed envelope with the given message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Error: message}
}
