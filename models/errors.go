package models

import "fmt"

// ConfigurationError marks a configuration that cannot produce a video. It is
// fatal to the job before any pipeline work starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ExecError is a failed or timed out external render process invocation.
type ExecError struct {
	ExitCode int
	Stderr   string
	TimedOut bool
}

func (e *ExecError) Error() string {
	if e.TimedOut {
		return "ffmpeg execution timed out"
	}
	return fmt.Sprintf("ffmpeg execution failed with code %d", e.ExitCode)
}
