// Package sysinfo implements the read-only system inspection tools. Every
// tool shells out to a standard Linux utility and wraps its output.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

const (
	osReleasePath = "/etc/os-release"
	cpuInfoPath   = "/proc/cpuinfo"
	smallFileMax  = 256 * 1024
)

// Service holds the dependencies shared by the system tools.
type Service struct {
	commands commandExecutor
	files    fileReader
	config   *config.Config
	getpid   func() int
}

// NewService creates the system_info tool group.
func NewService(commands commandExecutor, files fileReader, cfg *config.Config) *Service {
	if commands == nil {
		panic("commands is required")
	}
	if files == nil {
		panic("files is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Service{
		commands: commands,
		files:    files,
		config:   cfg,
		getpid:   os.Getpid,
	}
}

// Tools returns the group's tools in catalog order.
func (s *Service) Tools() []tool.Tool {
	return []tool.Tool{
		tool.Adapt(tool.GetDiskUsage,
			"Mostra uso de espaço em disco das partições.",
			nil, struct{}{}, func(ctx context.Context, _ struct{}) (string, error) { return s.DiskUsage(ctx) }),
		tool.Adapt(tool.GetMemoryInfo,
			"Mostra informações sobre uso de memória RAM e swap.",
			nil, struct{}{}, func(ctx context.Context, _ struct{}) (string, error) { return s.MemoryInfo(ctx) }),
		tool.Adapt(tool.GetSystemInfo,
			"Mostra informações do sistema: OS, kernel, hostname, uptime.",
			nil, struct{}{}, func(ctx context.Context, _ struct{}) (string, error) { return s.SystemInfo(ctx) }),
		s.listProcessesTool(),
		s.packageInfoTool(),
		tool.Adapt(tool.GetTerminalInfo,
			"Obtém informações sobre o processo atual do LLMX e seu terminal pai (PID, uso de CPU/RAM).",
			nil, struct{}{}, func(ctx context.Context, _ struct{}) (string, error) { return s.TerminalInfo(ctx) }),
	}
}

// run executes command. A start failure is returned as a result with
// ExitCode -1 and the error text in Stderr, so callers only branch on the
// exit code. Cancellation is still returned as an error.
func (s *Service) run(ctx context.Context, command ...string) (*executor.Result, error) {
	res, err := s.commands.Run(ctx, command, "", nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if res == nil {
			res = &executor.Result{}
		}
		res.ExitCode = -1
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	}
	return res, nil
}

// output returns trimmed stdout, or "" when the command failed.
func (s *Service) output(ctx context.Context, command ...string) (string, error) {
	res, err := s.run(ctx, command...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(res.Stdout), nil
}

func fenced(header, body string) string {
	return fmt.Sprintf("%s\n```\n%s\n```", header, body)
}
