package filesystem

import (
	"context"
	"os"

	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

// fileSystem defines the filesystem operations the tools need.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	ReadFileLimit(path string, limit int64) ([]byte, error)
}

// pathExpander turns user paths into absolute paths.
type pathExpander interface {
	Expand(path string) string
}

// commandExecutor runs helper programs such as locate.
type commandExecutor interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error)
}
