package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

// RunRequest is the decoded run_script arguments.
type RunRequest struct {
	ScriptPath string `json:"script_path"`
	UseSudo    bool   `json:"use_sudo"`
}

// Run executes an existing script with bash after confirmation. With
// use_sudo the script runs as root.
func (s *Service) Run(ctx context.Context, req RunRequest) (string, error) {
	path := s.paths.Expand(req.ScriptPath)

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Sprintf("❌ erro: script '%s' nao encontrado.", req.ScriptPath), nil
		}
		return fmt.Sprintf("❌ erro ao executar script: %v", err), nil
	}
	if !info.Mode().IsRegular() {
		return fmt.Sprintf("❌ erro: '%s' nao e um arquivo.", req.ScriptPath), nil
	}

	command := []string{"bash", path}
	if req.UseSudo {
		command = append([]string{"sudo"}, command...)
	}

	// Sudo scripts go through the sudo rule, which never remembers.
	id := tool.RunScript
	if req.UseSudo {
		id = tool.RunSudoCommand
	}
	ok, err := s.policy.Authorize(ctx, policy.Request{
		Tool:    id,
		Kind:    policy.KindEdit,
		Title:   "[!] Executar Script",
		Command: strings.Join(command, " "),
		Path:    path,
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "❌ execucao do script cancelada pelo usuario.", nil
	}

	timeout := s.config.Tools.PrivilegedTimeout
	res, err := s.commands.RunWithTimeout(ctx, command, "", nil, time.Duration(timeout)*time.Second)
	switch {
	case errors.Is(err, executor.ErrTimeout):
		return fmt.Sprintf("⏱️ erro: script demorou mais de %s e foi cancelado.", executor.FormatTimeout(timeout)), nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "", err
	case err != nil:
		return fmt.Sprintf("❌ erro ao executar script: %v", err), nil
	}

	out := strings.TrimSpace(res.Stdout)
	if res.ExitCode == 0 {
		if out == "" {
			return "✅ script executado com sucesso (sem saida).", nil
		}
		return "✅ script executado com sucesso:\n" + out, nil
	}
	combined := strings.TrimSpace(out + "\n" + strings.TrimSpace(res.Stderr))
	return fmt.Sprintf("❌ script falhou (codigo %d):\n%s", res.ExitCode, combined), nil
}
