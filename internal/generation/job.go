package generation

import "strings"

// Status is the normalized lifecycle state of a provider job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether polling must stop at this status.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

var (
	successStatuses = map[string]struct{}{
		"success":   {},
		"done":      {},
		"completed": {},
		"finished":  {},
		"ready":     {},
	}
	failureStatuses = map[string]struct{}{
		"failed":   {},
		"error":    {},
		"failure":  {},
		"rejected": {},
	}
)

// NormalizeStatus maps a provider status string onto the three lifecycle states.
// Unknown and empty values mean the job is still processing.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := successStatuses[key]; ok {
		return StatusSucceeded
	}
	if _, ok := failureStatuses[key]; ok {
		return StatusFailed
	}
	return StatusPending
}

// Job tracks one asynchronous provider request. It lives only for the duration
// of a single requester call.
type Job struct {
	ID      string
	Model   string
	Payload any
	Status  Status
	Raw     map[string]any
}

// advance applies a polled status. A terminal job never moves again.
func (j *Job) advance(status Status, raw map[string]any) {
	if j.Status.Terminal() {
		return
	}
	j.Status = status
	if status.Terminal() {
		j.Raw = raw
	}
}

// ResultKind tags a decoded result.
type ResultKind string

const (
	ResultText     ResultKind = "text"
	ResultImageURL ResultKind = "image_url"
)

// Result is the decoded value of a finished job.
type Result struct {
	Kind  ResultKind
	Value string
}

// TextResult wraps a decoded text payload.
func TextResult(v string) Result { return Result{Kind: ResultText, Value: v} }

// ImageURLResult wraps a decoded image URL.
func ImageURLResult(v string) Result { return Result{Kind: ResultImageURL, Value: v} }

// statusOf reads the provider status from either "status" or "state".
func statusOf(raw map[string]any) string {
	if raw == nil {
		return ""
	}
	for _, key := range []string{"status", "state"} {
		if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
