package harness

// TraceEvent records one executed step and the cart it left behind.
type TraceEvent struct {
	Seq   int      `json:"seq"`
	Op    string   `json:"op"`
	ID    string   `json:"id,omitempty"`
	Panel string   `json:"panel,omitempty"`
	Error string   `json:"error,omitempty"`
	Cart  []string `json:"cart"`
	Total int64    `json:"total"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Message is the final cart order message, empty for an empty cart.
	Message string `json:"message,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
