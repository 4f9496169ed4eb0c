package types

import "fmt"

// Outcome is the tri-state result of a reconciliation call. The original
// convention of true/false/none is made explicit so preview-mode semantics
// are unambiguous to callers.
type Outcome int

const (
	// OutcomeSatisfied means no change was needed, or a change was
	// previewed without being performed.
	OutcomeSatisfied Outcome = iota

	// OutcomeChanged means a mutation was performed successfully.
	OutcomeChanged

	// OutcomeFailed means the desired state could not be reached.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeChanged:
		return "changed"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Changes records what a reconciliation call did to the filesystem.
type Changes struct {
	// DirectoriesCreated lists directories created by this call, in
	// creation order.
	DirectoriesCreated []string `json:"directories_created,omitempty" yaml:"directories_created,omitempty"`

	// ExtractedFiles lists the archive entries that were extracted, in
	// archive order. For the external-tar path this is the tool's output
	// split into lines.
	ExtractedFiles []string `json:"extracted_files,omitempty" yaml:"extracted_files,omitempty"`

	// CommandOutput carries the raw result of a failed external tool
	// invocation for diagnosis. Only populated on that failure path.
	CommandOutput *CommandResult `json:"command_output,omitempty" yaml:"command_output,omitempty"`
}

// Empty reports whether the change-set records nothing.
func (c Changes) Empty() bool {
	return len(c.DirectoriesCreated) == 0 && len(c.ExtractedFiles) == 0 && c.CommandOutput == nil
}

// Result is the terminal report of one reconciliation call.
type Result struct {
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Changes Changes `json:"changes" yaml:"changes"`
	Message string  `json:"message" yaml:"message"`
}

// SatisfiedResult builds a Satisfied result with a formatted message.
func SatisfiedResult(format string, args ...interface{}) *Result {
	return &Result{Outcome: OutcomeSatisfied, Message: fmt.Sprintf(format, args...)}
}

// ChangedResult builds a Changed result with the given change-set.
func ChangedResult(changes Changes, format string, args ...interface{}) *Result {
	return &Result{Outcome: OutcomeChanged, Changes: changes, Message: fmt.Sprintf(format, args...)}
}

// FailedResult builds a Failed result with a formatted message.
func FailedResult(format string, args ...interface{}) *Result {
	return &Result{Outcome: OutcomeFailed, Message: fmt.Sprintf(format, args...)}
}

// CommandResult captures one external command invocation.
type CommandResult struct {
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
	Stdout   string `json:"stdout" yaml:"stdout"`
	Stderr   string `json:"stderr" yaml:"stderr"`
}

// Succeeded reports whether the command exited zero.
func (c CommandResult) Succeeded() bool {
	return c.ExitCode == 0
}
