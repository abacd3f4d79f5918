// Package workers runs the server's background jobs.
//
// Each job implements Worker; Workers runs them all together and returns
// once every one of them has stopped.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails; a nil error means a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}
