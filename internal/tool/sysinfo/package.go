package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
)

var packageFields = []string{"Package", "Version", "Installed-Size", "Description"}

// PackageInfoRequest is the decoded get_package_info arguments.
type PackageInfoRequest struct {
	PackageName string `json:"package_name"`
}

// Validate keeps option-looking names away from apt-cache.
func (r *PackageInfoRequest) Validate() error {
	if strings.HasPrefix(r.PackageName, "-") {
		return fmt.Errorf("nome de pacote invalido '%s'", r.PackageName)
	}
	return nil
}

func (s *Service) packageInfoTool() tool.Tool {
	params := tool.Object(map[string]*tool.Schema{
		"package_name": {
			Type:        tool.TypeString,
			Description: "Nome do pacote para consultar",
		},
	}, "package_name")
	return tool.Adapt(tool.GetPackageInfo,
		"Obtém informações sobre um pacote instalado ou disponível.",
		params, PackageInfoRequest{}, s.PackageInfo)
}

// PackageInfo looks the package up in the apt cache and checks dpkg for
// whether it is installed.
func (s *Service) PackageInfo(ctx context.Context, req PackageInfoRequest) (string, error) {
	name := req.PackageName

	res, err := s.run(ctx, "apt-cache", "show", name)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 || strings.TrimSpace(res.Stdout) == "" {
		return fmt.Sprintf("pacote '%s' nao encontrado nos repositorios.", name), nil
	}

	// With several stanzas the last value of each field wins.
	info := map[string]string{}
	for _, line := range content.SplitLines(res.Stdout) {
		for _, f := range packageFields {
			if value, ok := strings.CutPrefix(line, f+":"); ok {
				info[f] = strings.TrimSpace(value)
			}
		}
	}

	dpkg, err := s.run(ctx, "dpkg", "-s", name)
	if err != nil {
		return "", err
	}
	installed := "nao ❌"
	if dpkg.ExitCode == 0 {
		installed = "sim ✅"
	}

	return fmt.Sprintf("pacote: %s\nversao: %s\ntamanho: %s KB\ninstalado: %s\ndescricao: %s",
		orDefault(info["Package"], name),
		orDefault(info["Version"], "N/A"),
		orDefault(info["Installed-Size"], "N/A"),
		installed,
		orDefault(info["Description"], "N/A"),
	), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
