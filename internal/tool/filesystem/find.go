package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/service/git"
)

// FindFileRequest is the decoded find_file arguments.
type FindFileRequest struct {
	Pattern    string `json:"pattern"`
	SearchPath string `json:"search_path"`
	MaxResults int    `json:"max_results"`
}

// Validate checks the glob before any directory is walked.
func (r *FindFileRequest) Validate() error {
	if _, err := filepath.Match(r.Pattern, ""); err != nil {
		return fmt.Errorf("padrao invalido '%s': %w", r.Pattern, err)
	}
	return nil
}

var errEnoughResults = errors.New("enough results")

func (s *Service) findFileTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"pattern": {
			Type:        tool.TypeString,
			Description: "Padrão de nome do arquivo (ex: '*.pdf', 'documento*')",
		},
		"search_path": {
			Type:        tool.TypeString,
			Description: "Diretório onde procurar. Padrão: home do usuário.",
			Default:     "~",
		},
		"max_results": {
			Type:        tool.TypeInteger,
			Description: "Número máximo de resultados",
			Default:     s.config.Tools.DefaultFindLimit,
		},
	}, "pattern")
	defaults := FindFileRequest{SearchPath: "~", MaxResults: s.config.Tools.DefaultFindLimit}
	return tool.Adapt(tool.FindFile,
		"Procura arquivos por nome em um diretório e subdiretórios.",
		params, defaults, s.FindFile)
}

// FindFile walks search_path looking for regular files whose name matches
// the glob. The walk stops at the configured depth, the result limit or
// the search timeout, and skips ignored directories.
func (s *Service) FindFile(ctx context.Context, req FindFileRequest) (string, error) {
	root := s.paths.Expand(req.SearchPath)
	limit := req.MaxResults
	if limit <= 0 {
		limit = s.config.Tools.DefaultFindLimit
	}
	maxDepth := s.config.Tools.FindMaxDepth

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.Tools.SearchTimeout)*time.Second)
	defer cancel()

	ignore, err := git.NewIgnoreMatcher(root, s.fs, git.DefaultPatterns...)
	if err != nil {
		ignore = git.NewPatternMatcher(git.DefaultPatterns)
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped, like find does.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(rel), "/") + 1

		if d.IsDir() {
			if depth >= maxDepth || ignore.ShouldIgnore(rel, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ignore.ShouldIgnore(rel, false) {
			return nil
		}
		if ok, _ := filepath.Match(req.Pattern, d.Name()); ok {
			files = append(files, path)
			if len(files) >= limit {
				return errEnoughResults
			}
		}
		return nil
	})

	if errors.Is(walkErr, context.DeadlineExceeded) {
		return "erro: busca demorou muito tempo. tente um diretorio mais especifico.", nil
	}
	if walkErr != nil && !errors.Is(walkErr, errEnoughResults) {
		if errors.Is(walkErr, context.Canceled) {
			return "", walkErr
		}
		return fmt.Sprintf("erro na busca: %v", walkErr), nil
	}

	if len(files) == 0 {
		return fmt.Sprintf("nenhum arquivo encontrado com o padrao '%s' em '%s'.", req.Pattern, root), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "arquivos encontrados (%d):", len(files))
	for _, f := range files {
		b.WriteString("\n📄 ")
		b.WriteString(f)
	}
	return b.String(), nil
}
