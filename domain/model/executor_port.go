package model

import "context"

// Executor is an interface (domain port) for running a generated deployment
// script on a target host. Implementations decide the transport; this layer
// only hands over the accumulated script text and reads back its output.
type Executor interface {
	Run(ctx context.Context, host string, script string) (string, error)
}
