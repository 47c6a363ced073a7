// Package localexec runs deployment scripts through bash, locally or over
// ssh for remote hosts.
package localexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/logging"
)

// Executor feeds the script to bash on stdin. An empty or "localhost"
// host runs it in place; anything else goes through ssh.
type Executor struct{}

var _ model.Executor = (*Executor)(nil)

func New() *Executor { return &Executor{} }

func (e *Executor) Run(ctx context.Context, host string, script string) (string, error) {
	logger := logging.FromContext(ctx)
	var cmd *exec.Cmd
	if host == "" || host == "localhost" {
		cmd = exec.CommandContext(ctx, "bash", "-s")
	} else {
		cmd = exec.CommandContext(ctx, "ssh",
			"-o", "BatchMode=yes",
			"-o", "LogLevel=ERROR",
			host, "bash", "-s")
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logger.Debug(ctx, "executing deployment script",
		"host", host,
		"statements", strings.Count(script, "\n")+1)
	err := cmd.Run()
	if err != nil {
		logger.Error(ctx, "deployment script failed",
			"host", host,
			"error", err,
			"stderr", stderr.String())
		return stdout.String(), fmt.Errorf("run script on %q: %w", host, err)
	}
	return stdout.String(), nil
}
