package prompt

import "github.com/Cyclone1070/llmx/internal/tool"

// Action is one micro-prompt: the keywords that trigger it, the fragment
// appended to the base prompt and the tools it needs.
type Action struct {
	Tag      string
	Keywords []string
	Fragment string
	Tools    []tool.ID
}

// baseTools are offered with every composed prompt.
var baseTools = []tool.ID{tool.ListDirectory}

// Actions is the detection table in definition order. Composed prompts
// list fragments in this order whatever order the keywords appear in.
var Actions = []Action{
	{
		Tag:      "extract",
		Keywords: []string{"extrair", "extraia", "extract", "unrar", "unzip", "descompactar", "descompacte"},
		Fragment: `EXTRAIR ARQUIVO:
1. PRIMEIRO: find_file("*nome*") - encontre o arquivo
2. DEPOIS: use o CAMINHO REAL retornado (ex: /home/user/Desktop/arquivo.rar)
3. run_command("mkdir -p destino && unrar x '/CAMINHO_REAL_DO_FIND' destino/")

IMPORTANTE: Use o caminho EXATO retornado pelo find_file, NÃO use placeholders!
Formatos: unrar x (rar), unzip -d (zip), tar -xzf -C (tar.gz)
`,
		Tools: []tool.ID{tool.FindFile, tool.RunCommand},
	},
	{
		Tag:      "compress",
		Keywords: []string{"compactar", "compacte", "compress", "zipar", "arquivar"},
		Fragment: `COMPACTAR:
1. run_command("cd ~/pasta && rar a ~/Desktop/saída.rar .")

Formatos: rar a (rar), zip -r (zip), tar -czf (tar.gz)
Sempre use cd para entrar na pasta antes de compactar.
`,
		Tools: []tool.ID{tool.RunCommand},
	},
	{
		Tag:      "copy",
		Keywords: []string{"copiar", "copie", "copy", "cp"},
		Fragment: `COPIAR:
run_command("cp -r '/origem' '/destino/'")

Use -r para pastas. Sempre use caminhos completos com aspas.
`,
		Tools: []tool.ID{tool.FindFile, tool.RunCommand},
	},
	{
		Tag:      "move",
		Keywords: []string{"mover", "mova", "move", "mv"},
		Fragment: `MOVER:
run_command("mv '/origem' '/destino/'")

Sempre caminhos completos com aspas.
`,
		Tools: []tool.ID{tool.FindFile, tool.RunCommand},
	},
	{
		Tag:      "rename",
		Keywords: []string{"renomear", "renomeie", "rename"},
		Fragment: `RENOMEAR:
run_command("mv '/caminho/antigo' '/caminho/novo'")

Sempre caminhos completos com aspas.
`,
		Tools: []tool.ID{tool.FindFile, tool.RunCommand},
	},
	{
		Tag:      "delete",
		Keywords: []string{"deletar", "delete", "remover", "remova", "apagar", "apague", "rm"},
		Fragment: `DELETAR:
run_command("rm -rf '/caminho/arquivo'")

Use -rf para pastas. Sempre caminhos completos com aspas.
`,
		Tools: []tool.ID{tool.FindFile, tool.RunCommand},
	},
	{
		Tag:      "create_dir",
		Keywords: []string{"criar pasta", "crie pasta", "crie a pasta", "mkdir", "nova pasta"},
		Fragment: `CRIAR PASTA:
run_command("mkdir -p '/caminho/nova_pasta'")

Use -p para criar pastas pai se necessário.
`,
		Tools: []tool.ID{tool.RunCommand},
	},
	{
		Tag:      "install",
		Keywords: []string{"instalar", "instale", "install", "apt install", "apt-get"},
		Fragment: `INSTALAR PACOTE:
1. PRIMEIRO: get_package_info("pacote") para verificar se já está instalado
2. Se NÃO instalado: run_sudo_command("apt install -y pacote")
3. PARE após uma tentativa - não tente variações!

IMPORTANTE:
- Use APENAS run_sudo_command (não run_command com sudo)
- Use -y para confirmar automaticamente
- Se falhar, informe o erro - NÃO tente outras formas
`,
		Tools: []tool.ID{tool.RunSudoCommand, tool.GetPackageInfo},
	},
	{
		Tag:      "script",
		Keywords: []string{"script", "criar script", "crie script", "bash", "shell", "automatizar", "automatize"},
		Fragment: `CRIAR SCRIPT:
Use create_script para criar um script shell.
Exemplo:
Tool: create_script
Arguments: {"filename": "backup.sh", "content": "#!/bin/bash\ncp -r ~/Documents ~/backup/"}

Depois use run_script para executar.
`,
		Tools: []tool.ID{tool.CreateScript, tool.RunScript},
	},
	{
		Tag:      "query",
		Keywords: []string{"instalado", "versão", "processo", "processos", "rodando", "executando", "pacote", "software"},
		Fragment: `CONSULTAR SOFTWARE/PROCESSOS:
Para verificar pacotes instalados: get_package_info("nome_pacote")
Para ver processos: list_processes("cpu") ou list_processes("memory")
Para informações do sistema: get_system_info()

Responda de forma direta com os dados encontrados.
`,
		Tools: []tool.ID{tool.GetPackageInfo, tool.ListProcesses, tool.GetSystemInfo},
	},
	{
		Tag:      "hardware",
		Keywords: []string{"ram", "memória", "disco", "espaço", "cpu", "hardware", "kernel", "sistema operacional"},
		Fragment: `CONSULTAR HARDWARE/RECURSOS:
Para memória RAM: get_memory_info()
Para uso de disco: get_disk_usage()
Para informações do sistema (CPU, kernel): get_system_info()

Responda de forma direta: "Você tem X GB de RAM", "Disco: X% usado".
`,
		Tools: []tool.ID{tool.GetMemoryInfo, tool.GetDiskUsage, tool.GetSystemInfo},
	},
}
