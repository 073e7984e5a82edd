package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool"
)

// FileSizeRequest is the decoded get_file_size arguments.
type FileSizeRequest struct {
	Path string `json:"path"`
}

func (s *Service) fileSizeTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"path": {
			Type:        tool.TypeString,
			Description: "Caminho do arquivo ou diretório",
		},
	}, "path")
	return tool.Adapt(tool.GetFileSize,
		"Obtém o tamanho de um arquivo ou diretório.",
		params, FileSizeRequest{}, s.FileSize)
}

// FileSize reports the size of a file, or the total size and file count
// of a directory tree.
func (s *Service) FileSize(ctx context.Context, req FileSizeRequest) (string, error) {
	path := s.paths.Expand(req.Path)

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Sprintf("erro: '%s' nao existe.", path), nil
		}
		return fmt.Sprintf("erro: %v", err), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("📄 %s: %s", info.Name(), formatSize(info.Size())), nil
	}

	// Directories get twice the search budget, as du did.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Duration(s.config.Tools.SearchTimeout)*time.Second)
	defer cancel()

	var total int64
	var files int
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += fi.Size()
		files++
		return nil
	})
	if errors.Is(walkErr, context.DeadlineExceeded) {
		return "erro: calculo de tamanho demorou muito. o diretorio pode ser muito grande.", nil
	}
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) {
			return "", walkErr
		}
		return fmt.Sprintf("erro ao calcular tamanho: %v", walkErr), nil
	}

	return fmt.Sprintf("📁 %s\ntamanho total: %s\narquivos: %d", filepath.Base(path), formatSize(total), files), nil
}
