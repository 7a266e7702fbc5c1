package explorer

// Result is the outcome of a primitive or composed operation.
// Message is always human readable; callers branch on Success only.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded returns a successful Result carrying msg.
func Succeeded(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Failed returns a failed Result carrying msg.
func Failed(msg string) Result {
	return Result{Success: false, Message: msg}
}
