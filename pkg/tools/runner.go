package tools

import (
	"os/exec"
	"strings"

	"github.com/dotsmith-cli/dotsmith/pkg/logging"
)

// Runner abstracts command execution so package installation can be
// tested without touching the system package manager.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

type execRunner struct{}

// NewExecRunner returns a Runner that executes commands on the host
func NewExecRunner() Runner {
	return &execRunner{}
}

func (e *execRunner) Run(name string, args ...string) (string, error) {
	logger := logging.GetLogger("tools")
	logger.Debug().
		Str("command", name).
		Str("args", strings.Join(args, " ")).
		Msg("running command")

	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}
