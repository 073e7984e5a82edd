package sysinfo

import (
	"context"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
)

// SystemInfo summarizes the host: name, distribution, kernel, architecture,
// uptime, CPU model and core count. Missing sources leave their line out.
func (s *Service) SystemInfo(ctx context.Context) (string, error) {
	var info []string

	hostname, err := s.output(ctx, "hostname")
	if err != nil {
		return "", err
	}
	info = append(info, "hostname: "+hostname)

	if name := s.field(osReleasePath, "PRETTY_NAME=", "="); name != "" {
		info = append(info, "sistema: "+strings.Trim(name, `"`))
	}

	kernel, err := s.output(ctx, "uname", "-r")
	if err != nil {
		return "", err
	}
	info = append(info, "kernel: "+kernel)

	arch, err := s.output(ctx, "uname", "-m")
	if err != nil {
		return "", err
	}
	info = append(info, "arquitetura: "+arch)

	uptime, err := s.output(ctx, "uptime", "-p")
	if err != nil {
		return "", err
	}
	info = append(info, "uptime: "+strings.ReplaceAll(uptime, "up ", ""))

	if cpu := s.field(cpuInfoPath, "model name", ":"); cpu != "" {
		info = append(info, "cpu: "+cpu)
	}

	cores, err := s.output(ctx, "nproc")
	if err != nil {
		return "", err
	}
	info = append(info, "nucleos: "+cores)

	return "informacoes do sistema:\n" + strings.Join(info, "\n"), nil
}

// field returns the value after sep on the first line of path that starts
// with prefix.
func (s *Service) field(path, prefix, sep string) string {
	data, err := s.files.ReadFileLimit(path, smallFileMax)
	if err != nil {
		return ""
	}
	for _, line := range content.SplitLines(string(data)) {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if _, value, ok := strings.Cut(line, sep); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
