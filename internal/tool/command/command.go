// Package command implements the executor tools: run_command and
// run_sudo_command.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

// Service runs shell commands after the policy allowed them.
type Service struct {
	shell  shellRunner
	policy authorizer
	config *config.Config
}

// NewService creates the executor tool group.
func NewService(shell shellRunner, policy authorizer, cfg *config.Config) *Service {
	if shell == nil {
		panic("shell is required")
	}
	if policy == nil {
		panic("policy is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Service{shell: shell, policy: policy, config: cfg}
}

// RunCommandRequest is the decoded run_command arguments.
type RunCommandRequest struct {
	Command string `json:"command"`
	// RequireConfirmation is accepted for compatibility; the policy
	// decides whether the user is asked.
	RequireConfirmation bool `json:"require_confirmation"`
}

// RunSudoCommandRequest is the decoded run_sudo_command arguments.
type RunSudoCommandRequest struct {
	Command string `json:"command"`
}

// Tools returns the group's tools in catalog order.
func (s *Service) Tools() []tool.Tool {
	return []tool.Tool{
		tool.Adapt(tool.RunCommand,
			"Executa um comando shell. Para comandos que modificam o sistema, use run_sudo_command.",
			tool.Object(map[string]*tool.Schema{
				"command": {
					Type:        tool.TypeString,
					Description: "O comando a ser executado (sem sudo)",
				},
				"require_confirmation": {
					Type:        tool.TypeBoolean,
					Description: "Se deve pedir confirmação do usuário antes de executar",
					Default:     true,
				},
			}, "command"),
			RunCommandRequest{RequireConfirmation: true}, s.RunCommand),
		tool.Adapt(tool.RunSudoCommand,
			"Executa um comando com privilégios sudo. SEMPRE requer confirmação do usuário.",
			tool.Object(map[string]*tool.Schema{
				"command": {
					Type:        tool.TypeString,
					Description: "O comando a ser executado com sudo (sem incluir 'sudo' no comando)",
				},
			}, "command"),
			RunSudoCommandRequest{}, s.RunSudoCommand),
	}
}

// RunCommand blocks destructive patterns, asks for confirmation when the
// policy requires it and runs the command with the command timeout.
func (s *Service) RunCommand(ctx context.Context, req RunCommandRequest) (string, error) {
	cmd := req.Command
	if policy.Blocked(cmd, policy.CommandDenyPatterns) != "" {
		return "⛔ comando bloqueado por seguranca: " + cmd, nil
	}

	ok, err := s.policy.Authorize(ctx, policy.Request{Tool: tool.RunCommand, Command: cmd})
	if err != nil {
		return "", err
	}
	if !ok {
		return "❌ comando cancelado pelo usuario.", nil
	}

	timeout := s.config.Tools.CommandTimeout
	res, err := s.shell.Shell(ctx, cmd, seconds(timeout))
	return report(res, err, timeout, messages{
		ok:         "✅ comando executado com sucesso:\n%s",
		okEmpty:    "✅ comando executado com sucesso (sem saida).",
		failed:     "❌ erro (codigo %d):\n%s",
		failedBare: "❌ comando falhou com codigo %d",
		timeout:    "⏱️ erro: comando demorou mais de %s e foi cancelado.",
		other:      "❌ erro ao executar comando: %v",
	})
}

// RunSudoCommand strips a leading sudo, blocks destructive patterns and
// always asks before running with the privileged timeout.
func (s *Service) RunSudoCommand(ctx context.Context, req RunSudoCommandRequest) (string, error) {
	cmd := strings.TrimSpace(req.Command)
	cmd = strings.TrimPrefix(cmd, "sudo ")

	if policy.Blocked(cmd, policy.SudoDenyPatterns) != "" {
		return "⛔ comando bloqueado por seguranca: sudo " + cmd, nil
	}

	full := "sudo " + cmd
	ok, err := s.policy.Authorize(ctx, policy.Request{Tool: tool.RunSudoCommand, Command: full})
	if err != nil {
		return "", err
	}
	if !ok {
		return "❌ comando sudo cancelado pelo usuario.", nil
	}

	timeout := s.config.Tools.PrivilegedTimeout
	res, err := s.shell.Shell(ctx, full, seconds(timeout))
	return report(res, err, timeout, messages{
		ok:         "✅ comando sudo executado com sucesso:\n%s",
		okEmpty:    "✅ comando sudo executado com sucesso.",
		failed:     "❌ erro sudo (codigo %d):\n%s",
		failedBare: "❌ comando sudo falhou com codigo %d",
		timeout:    "⏱️ erro: comando sudo demorou mais de %s e foi cancelado.",
		other:      "❌ erro ao executar comando sudo: %v",
	})
}

type messages struct {
	ok, okEmpty, failed, failedBare, timeout, other string
}

// report turns an execution outcome into the tool's answer. Only context
// cancellation is returned as an error.
func report(res *executor.Result, err error, timeout int, m messages) (string, error) {
	switch {
	case errors.Is(err, executor.ErrTimeout):
		return fmt.Sprintf(m.timeout, executor.FormatTimeout(timeout)), nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "", err
	case err != nil:
		return fmt.Sprintf(m.other, err), nil
	}

	out := strings.TrimSpace(res.Stdout)
	stderr := strings.TrimSpace(res.Stderr)
	if res.ExitCode == 0 {
		if out == "" {
			return m.okEmpty, nil
		}
		return fmt.Sprintf(m.ok, out), nil
	}
	if stderr == "" {
		return fmt.Sprintf(m.failedBare, res.ExitCode), nil
	}
	return fmt.Sprintf(m.failed, res.ExitCode, stderr), nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
