package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
)

const shebang = "#!/bin/bash\n\n"

// CreateRequest is the decoded create_script arguments.
type CreateRequest struct {
	Filename   string `json:"filename"`
	Content    string `json:"content"`
	Directory  string `json:"directory"`
	Executable bool   `json:"executable"`
}

// Validate keeps the script inside directory.
func (r *CreateRequest) Validate() error {
	if r.Filename != filepath.Base(r.Filename) || r.Filename == "." || r.Filename == ".." {
		return fmt.Errorf("nome de arquivo invalido '%s'", r.Filename)
	}
	return nil
}

// Create writes a script, adding a bash shebang when the content has none,
// and marks it executable on request.
func (s *Service) Create(ctx context.Context, req CreateRequest) (string, error) {
	dir := s.paths.Expand(req.Directory)
	path := filepath.Join(dir, req.Filename)

	body := req.Content
	if !strings.HasPrefix(strings.TrimSpace(body), "#!") {
		body = shebang + body
	}

	ok, err := s.policy.Authorize(ctx, policy.Request{Tool: tool.CreateScript, Path: path, Content: body})
	if err != nil {
		return "", err
	}
	if !ok {
		return "❌ criacao do script cancelada pelo usuario.", nil
	}

	perm := os.FileMode(0o644)
	if req.Executable {
		perm = 0o755
	}

	if err := s.fs.EnsureDirs(dir); err != nil {
		return createFailure(req.Directory, err), nil
	}
	if err := s.fs.WriteFileAtomic(path, []byte(body), perm); err != nil {
		return createFailure(req.Directory, err), nil
	}

	out := fmt.Sprintf("✅ script criado: %s\n", path)
	if req.Executable {
		out += fmt.Sprintf("📝 para executar:\n   ./%s\n   ou\n   bash %s", req.Filename, path)
	}
	return out, nil
}

func createFailure(dir string, err error) string {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Sprintf("❌ erro: sem permissao para criar arquivo em '%s'.", dir)
	}
	return fmt.Sprintf("❌ erro ao criar script: %v", err)
}
