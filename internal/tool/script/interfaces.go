package script

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

type pathExpander interface {
	Expand(path string) string
}

type commandRunner interface {
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}

type authorizer interface {
	Authorize(ctx context.Context, req policy.Request) (bool, error)
}
