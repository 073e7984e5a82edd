package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
)

var commonBinDirs = []string{"/usr/bin", "/usr/local/bin", "/bin", "/sbin", "/usr/sbin"}

// GetPathRequest is the decoded get_path arguments.
type GetPathRequest struct {
	Name string `json:"name"`
}

// Validate rejects names that would escape the bin directories.
func (r *GetPathRequest) Validate() error {
	if strings.ContainsRune(r.Name, filepath.Separator) && !filepath.IsAbs(r.Name) {
		return fmt.Errorf("nome invalido '%s'", r.Name)
	}
	return nil
}

func (s *Service) getPathTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"name": {
			Type:        tool.TypeString,
			Description: "Nome do arquivo, comando ou aplicativo",
		},
	}, "name")
	return tool.Adapt(tool.GetPath,
		"Obtém o caminho absoluto de um arquivo, comando ou aplicativo.",
		params, GetPathRequest{}, s.GetPath)
}

// GetPath looks name up in $PATH, then in the usual bin directories, then
// in the locate database.
func (s *Service) GetPath(ctx context.Context, req GetPathRequest) (string, error) {
	name := req.Name

	if p, err := s.lookPath(name); err == nil && p != "" {
		return fmt.Sprintf("caminho de '%s': %s", name, p), nil
	}

	for _, dir := range commonBinDirs {
		candidate := filepath.Join(dir, name)
		if _, err := s.fs.Stat(candidate); err == nil {
			return fmt.Sprintf("caminho de '%s': %s", name, candidate), nil
		}
	}

	res, err := s.commands.Run(ctx, []string{"locate", "-l", "5", name}, "", nil)
	if err == nil && res.ExitCode == 0 {
		if paths := content.NonEmptyLines(res.Stdout); len(paths) > 0 {
			return fmt.Sprintf("possiveis caminhos para '%s':\n%s", name, strings.Join(paths, "\n")), nil
		}
	}

	return fmt.Sprintf("nao foi possivel encontrar '%s' no sistema.", name), nil
}
