package sysinfo

import (
	"context"

	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

// commandExecutor runs the inspection programs (df, free, ps, ...).
type commandExecutor interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error)
}

// fileReader reads small files such as /etc/os-release.
type fileReader interface {
	ReadFileLimit(path string, limit int64) ([]byte, error)
}
