package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
)

// ListProcessesRequest is the decoded list_processes arguments.
type ListProcessesRequest struct {
	SortBy string `json:"sort_by"`
	Limit  int    `json:"limit"`
}

func (s *Service) listProcessesTool() tool.Tool {
	limit := s.config.Tools.DefaultProcessLimit
	params := tool.Object(map[string]*tool.Schema{
		"sort_by": {
			Type:        tool.TypeString,
			Description: "Ordenar por 'cpu' ou 'memory'",
			Enum:        []string{"cpu", "memory"},
			Default:     "cpu",
		},
		"limit": {
			Type:        tool.TypeInteger,
			Description: "Número de processos para mostrar",
			Default:     limit,
		},
	})
	return tool.Adapt(tool.ListProcesses,
		"Lista os processos que mais consomem CPU ou memória.",
		params, ListProcessesRequest{SortBy: "cpu", Limit: limit}, s.ListProcesses)
}

// ListProcesses shows the heaviest processes. Any sort_by other than "cpu"
// sorts by memory.
func (s *Service) ListProcesses(ctx context.Context, req ListProcessesRequest) (string, error) {
	sortKey, header := "-pcpu", "top processos por cpu:"
	if req.SortBy != "" && req.SortBy != "cpu" {
		sortKey, header = "-pmem", "top processos por memoria:"
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Tools.DefaultProcessLimit
	}

	res, err := s.run(ctx, "ps", "aux", "--sort", sortKey)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "erro ao listar processos: " + res.Stderr, nil
	}

	// One extra line for the ps header.
	out, _ := content.Head(strings.TrimSpace(res.Stdout), limit+1)
	return fenced(header, out), nil
}

// TerminalInfo shows this process and its parent shell as ps sees them.
func (s *Service) TerminalInfo(ctx context.Context) (string, error) {
	pid := strconv.Itoa(s.getpid())

	ppid, err := s.output(ctx, "ps", "-o", "ppid=", "-p", pid)
	if err != nil {
		return "", err
	}

	res, err := s.run(ctx, "ps", "-p", pid+","+ppid, "-o", "pid,ppid,user,%cpu,%mem,rss,comm,args")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "erro ao obter info do terminal: " + res.Stderr, nil
	}

	return fmt.Sprintf("%s\n\nLEGENDA PID:\n- %s: LLMX (este processo)\n- %s: Shell Pai (terminal)",
		fenced("informacoes do terminal atual:", strings.TrimSpace(res.Stdout)), pid, ppid), nil
}
