package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionFailure is returned when the provider accepted the call but
	// did not hand back a job identifier.
	ErrSubmissionFailure = errors.New("generation: missing request_id")
	// ErrProviderFailure matches any job that reached a terminal failure status.
	ErrProviderFailure = errors.New("generation: provider reported failure")
	// ErrTimeout is returned when the attempt budget runs out before a terminal status.
	ErrTimeout = errors.New("generation: timed out waiting for result")
	// ErrDecodeFailure is returned when no text payload could be located.
	ErrDecodeFailure = errors.New("generation: no text payload in result")
	// ErrMissingImageURL is returned when an image job succeeded without a usable URL.
	ErrMissingImageURL = errors.New("generation: no image url in result")
	// ErrEmptyResult is returned when a text job produced no usable lines.
	ErrEmptyResult = errors.New("generation: empty result")
)

// ProviderFailureError carries the raw terminal payload of a failed job.
type ProviderFailureError struct {
	JobID  string
	Status string
	Raw    map[string]any
}

func (e *ProviderFailureError) Error() string {
	if e == nil {
		return ErrProviderFailure.Error()
	}
	return fmt.Sprintf("generation: job %s finished with status %q", e.JobID, e.Status)
}

// Is lets errors.Is(err, ErrProviderFailure) match the typed error.
func (e *ProviderFailureError) Is(target error) bool {
	return target == ErrProviderFailure
}
