// Package filesystem implements the read-only filesystem tools:
// list_directory, find_file, get_file_size, read_file and get_path.
package filesystem

import (
	"os/exec"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/dustin/go-humanize"
)

// Service holds the dependencies shared by the filesystem tools.
type Service struct {
	fs       fileSystem
	paths    pathExpander
	commands commandExecutor
	config   *config.Config
	lookPath func(string) (string, error)
}

// NewService creates the filesystem tool group.
func NewService(fs fileSystem, paths pathExpander, commands commandExecutor, cfg *config.Config) *Service {
	if fs == nil {
		panic("fs is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if commands == nil {
		panic("commands is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Service{
		fs:       fs,
		paths:    paths,
		commands: commands,
		config:   cfg,
		lookPath: exec.LookPath,
	}
}

// Tools returns the group's tools in catalog order.
func (s *Service) Tools() []tool.Tool {
	return []tool.Tool{
		s.listDirectoryTool(),
		s.findFileTool(),
		s.fileSizeTool(),
		s.readFileTool(),
		s.getPathTool(),
	}
}

func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
