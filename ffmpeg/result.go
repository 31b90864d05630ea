package ffmpeg

// Reason classifies the outcome of a conversion
type Reason int

const (
	// Succeeded means the output file exists after the tool exited
	Succeeded Reason = iota
	ToolMissing
	InputMissing
	FormatMissing
	OutputAlreadyExists
	// ProcessFailed covers failures to run the tool at all, and cancellation.
	// A non-zero exit code alone never produces it.
	ProcessFailed
	OutputNotProduced
)

func (r Reason) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case ToolMissing:
		return "tool missing"
	case InputMissing:
		return "input missing"
	case FormatMissing:
		return "format missing"
	case OutputAlreadyExists:
		return "output already exists"
	case ProcessFailed:
		return "process failed"
	case OutputNotProduced:
		return "output not produced"
	default:
		return "unknown"
	}
}

// Precondition reports whether the reason is detected before any process is started
func (r Reason) Precondition() bool {
	switch r {
	case ToolMissing, InputMissing, FormatMissing, OutputAlreadyExists:
		return true
	}
	return false
}

// Result is the terminal outcome of one Convert call
type Result struct {
	Reason     Reason
	OutputPath string // set on success, and on failures once it was computed
	ExitCode   int    // -1 when no process ran or the exit code is unknown
	Err        error  // underlying diagnostic, if any
}

// OK reports whether the conversion produced its output file
func (r Result) OK() bool {
	return r.Reason == Succeeded
}

func failure(reason Reason, outputPath string, err error) Result {
	return Result{
		Reason:     reason,
		OutputPath: outputPath,
		ExitCode:   -1,
		Err:        err,
	}
}
