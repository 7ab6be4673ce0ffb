package stitch

import "fmt"

// Step identifies the pipeline stage a job failed in.
type Step string

const (
	StepProbe   Step = "probe"
	StepExtract Step = "extract"
	StepEncode  Step = "encode"
)

// StepError is a fatal job error tagged with the failing stage and clip.
// The pipeline is all-or-nothing: any StepError means no output was produced.
type StepError struct {
	Step  Step
	Clip  string // source clip path; empty for the job-wide encode stage
	Frame int    // output frame index for extract failures, -1 otherwise
	Err   error
}

func (e *StepError) Error() string {
	switch {
	case e.Step == StepExtract && e.Clip != "":
		return fmt.Sprintf("%s failed for clip %s at frame %d: %v", e.Step, e.Clip, e.Frame, e.Err)
	case e.Clip != "":
		return fmt.Sprintf("%s failed for clip %s: %v", e.Step, e.Clip, e.Err)
	default:
		return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
	}
}

func (e *StepError) Unwrap() error { return e.Err }

func probeError(clip string, err error) *StepError {
	return &StepError{Step: StepProbe, Clip: clip, Frame: -1, Err: err}
}

func extractError(clip string, frame int, err error) *StepError {
	return &StepError{Step: StepExtract, Clip: clip, Frame: frame, Err: err}
}

func encodeError(err error) *StepError {
	return &StepError{Step: StepEncode, Frame: -1, Err: err}
}
