package task

type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusFailure ResultStatus = "failure"
)

// Result is the outcome of one task in a run. Output is set for successes,
// Diagnostic for failures; the other field is always empty.
type Result struct {
	TaskName   string       `json:"task_name" yaml:"task_name"`
	Status     ResultStatus `json:"status" yaml:"status"`
	Output     string       `json:"output,omitempty" yaml:"output,omitempty"`
	Diagnostic string       `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

func Success(taskName, output string) Result {
	return Result{TaskName: taskName, Status: ResultStatusSuccess, Output: output}
}

func Failure(taskName, diagnostic string) Result {
	return Result{TaskName: taskName, Status: ResultStatusFailure, Diagnostic: diagnostic}
}

func (r Result) Succeeded() bool {
	return r.Status == ResultStatusSuccess
}

// Results maps task names to their outcome and iterates in dispatch order.
type Results struct {
	order   []string
	results map[string]Result
}

func newResults(capacity int) *Results {
	return &Results{
		order:   make([]string, 0, capacity),
		results: make(map[string]Result, capacity),
	}
}

func (r *Results) set(result Result) {
	if _, exists := r.results[result.TaskName]; !exists {
		r.order = append(r.order, result.TaskName)
	}
	r.results[result.TaskName] = result
}

func (r *Results) Get(taskName string) (Result, bool) {
	result, ok := r.results[taskName]
	return result, ok
}

func (r *Results) Len() int {
	return len(r.order)
}

// All returns the results in dispatch order.
func (r *Results) All() []Result {
	all := make([]Result, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.results[name])
	}
	return all
}

func (r *Results) Failed() int {
	failed := 0
	for _, result := range r.results {
		if !result.Succeeded() {
			failed++
		}
	}
	return failed
}
