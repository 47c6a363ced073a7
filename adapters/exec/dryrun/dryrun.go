// Package dryrunexec prints deployment scripts instead of running them.
package dryrunexec

import (
	"context"
	"fmt"
	"io"

	"github.com/panelops/panelops/domain/model"
)

// Executor writes each script to Out and reports no changes, so a dry run
// never triggers a restart.
type Executor struct {
	Out io.Writer
}

var _ model.Executor = (*Executor)(nil)

func New(out io.Writer) *Executor { return &Executor{Out: out} }

func (e *Executor) Run(ctx context.Context, host string, script string) (string, error) {
	target := host
	if target == "" {
		target = "localhost"
	}
	if _, err := fmt.Fprintf(e.Out, "# --- %s ---\n%s\n", target, script); err != nil {
		return "", err
	}
	return "UPDATED=0\n", nil
}
