package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
)

// ReadFileRequest is the decoded read_file arguments.
type ReadFileRequest struct {
	Path     string `json:"path"`
	MaxLines int    `json:"max_lines"`
}

func (s *Service) readFileTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"path": {
			Type:        tool.TypeString,
			Description: "Caminho do arquivo para ler",
		},
		"max_lines": {
			Type:        tool.TypeInteger,
			Description: "Número máximo de linhas para ler",
			Default:     s.config.Tools.DefaultReadLines,
		},
	}, "path")
	return tool.Adapt(tool.ReadFile,
		"Lê o conteúdo de um arquivo de texto.",
		params, ReadFileRequest{MaxLines: s.config.Tools.DefaultReadLines}, s.ReadFile)
}

// ReadFile returns the first max_lines lines of a text file. Files above
// the configured size are refused.
func (s *Service) ReadFile(ctx context.Context, req ReadFileRequest) (string, error) {
	path := s.paths.Expand(req.Path)
	maxLines := req.MaxLines
	if maxLines <= 0 {
		maxLines = s.config.Tools.DefaultReadLines
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Sprintf("erro: arquivo '%s' nao existe.", path), nil
		}
		if errors.Is(err, os.ErrPermission) {
			return fmt.Sprintf("erro: sem permissao para ler '%s'.", path), nil
		}
		return fmt.Sprintf("erro ao ler arquivo: %v", err), nil
	}
	if !info.Mode().IsRegular() {
		return fmt.Sprintf("erro: '%s' nao e um arquivo.", path), nil
	}
	if info.Size() > s.config.Tools.MaxReadFileSize {
		return fmt.Sprintf("erro: arquivo muito grande (>%s). use 'head' ou 'tail' para arquivos grandes.", formatSize(info.Size())), nil
	}

	data, err := s.fs.ReadFileLimit(path, s.config.Tools.MaxReadFileSize)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Sprintf("erro: sem permissao para ler '%s'.", path), nil
		}
		return fmt.Sprintf("erro ao ler arquivo: %v", err), nil
	}
	if content.IsBinary(data) {
		return fmt.Sprintf("erro: '%s' parece ser um arquivo binario.", path), nil
	}

	text, truncated := content.Head(string(data), maxLines)
	if truncated {
		return fmt.Sprintf("conteudo de %s (primeiras %d linhas):\n\n%s\n\n[... arquivo truncado ...]", info.Name(), maxLines, text), nil
	}
	return fmt.Sprintf("conteudo de %s:\n\n%s", info.Name(), text), nil
}
