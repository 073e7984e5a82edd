package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool"
)

// ListDirectoryRequest is the decoded list_directory arguments.
type ListDirectoryRequest struct {
	Path       string `json:"path"`
	ShowHidden bool   `json:"show_hidden"`
}

func (s *Service) listDirectoryTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"path": {
			Type:        tool.TypeString,
			Description: "Caminho do diretório para listar. Use ~ para home do usuário.",
		},
		"show_hidden": {
			Type:        tool.TypeBoolean,
			Description: "Se deve mostrar arquivos ocultos (começam com .)",
			Default:     false,
		},
	}, "path")
	return tool.Adapt(tool.ListDirectory,
		"Lista arquivos e pastas em um diretório. Retorna nome, tipo e tamanho.",
		params, ListDirectoryRequest{}, s.ListDirectory)
}

// ListDirectory lists one directory level: folders and files with their
// size, sorted by name.
func (s *Service) ListDirectory(ctx context.Context, req ListDirectoryRequest) (string, error) {
	path := s.paths.Expand(req.Path)

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Sprintf("erro: diretorio '%s' nao existe.", path), nil
		}
		if errors.Is(err, os.ErrPermission) {
			return fmt.Sprintf("erro: sem permissao para acessar '%s'.", path), nil
		}
		return fmt.Sprintf("erro ao listar diretorio: %v", err), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("erro: '%s' nao e um diretorio.", path), nil
	}

	entries, err := s.fs.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Sprintf("erro: sem permissao para acessar '%s'.", path), nil
		}
		return fmt.Sprintf("erro ao listar diretorio: %v", err), nil
	}

	var items []string
	for _, entry := range entries {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		name := entry.Name()
		if !req.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}

		// Stat follows symlinks so a link to a folder is shown as one.
		target, err := s.fs.Stat(filepath.Join(path, name))
		switch {
		case err != nil:
			items = append(items, "📄 "+name)
		case target.IsDir():
			items = append(items, "📁 "+name)
		case target.Mode().IsRegular():
			items = append(items, fmt.Sprintf("📄 %s (%s)", name, formatSize(target.Size())))
		default:
			items = append(items, "📄 "+name)
		}
	}

	if len(items) == 0 {
		return fmt.Sprintf("diretorio '%s' esta vazio.", path), nil
	}
	return fmt.Sprintf("conteudo de %s:\n%s", path, strings.Join(items, "\n")), nil
}
