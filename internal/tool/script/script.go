// Package script implements create_script and run_script.
package script

import (
	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
)

// Service creates and runs shell scripts on the user's behalf.
type Service struct {
	fs       fileSystem
	paths    pathExpander
	commands commandRunner
	policy   authorizer
	config   *config.Config
}

// NewService creates the script tool group.
func NewService(fs fileSystem, paths pathExpander, commands commandRunner, policy authorizer, cfg *config.Config) *Service {
	if fs == nil {
		panic("fs is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if commands == nil {
		panic("commands is required")
	}
	if policy == nil {
		panic("policy is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Service{fs: fs, paths: paths, commands: commands, policy: policy, config: cfg}
}

// Tools returns the group's tools in catalog order.
func (s *Service) Tools() []tool.Tool {
	return []tool.Tool{
		tool.Adapt(tool.CreateScript,
			"Cria um script shell e salva em um arquivo.",
			tool.Object(map[string]*tool.Schema{
				"filename": {
					Type:        tool.TypeString,
					Description: "Nome do arquivo do script (ex: limpar_cache.sh)",
				},
				"content": {
					Type:        tool.TypeString,
					Description: "Conteúdo completo do script (incluindo shebang)",
				},
				"directory": {
					Type:        tool.TypeString,
					Description: "Diretório onde salvar o script. Padrão: diretório atual",
					Default:     ".",
				},
				"executable": {
					Type:        tool.TypeBoolean,
					Description: "Se deve tornar o script executável",
					Default:     true,
				},
			}, "filename", "content"),
			CreateRequest{Directory: ".", Executable: true}, s.Create),
		tool.Adapt(tool.RunScript,
			"Executa um script existente. Requer confirmação do usuário.",
			tool.Object(map[string]*tool.Schema{
				"script_path": {
					Type:        tool.TypeString,
					Description: "Caminho para o script a ser executado",
				},
				"use_sudo": {
					Type:        tool.TypeBoolean,
					Description: "Se deve executar com sudo",
					Default:     false,
				},
			}, "script_path"),
			RunRequest{}, s.Run),
	}
}
