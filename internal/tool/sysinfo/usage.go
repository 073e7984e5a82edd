package sysinfo

import (
	"context"
)

// DiskUsage reports mounted filesystems, leaving out the tmpfs family.
func (s *Service) DiskUsage(ctx context.Context) (string, error) {
	res, err := s.run(ctx, "df", "-h", "--output=source,size,used,avail,pcent,target", "-x", "tmpfs", "-x", "devtmpfs")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "erro ao obter uso de disco: " + res.Stderr, nil
	}
	return fenced("uso de disco:", res.Stdout), nil
}

// MemoryInfo reports RAM and swap usage.
func (s *Service) MemoryInfo(ctx context.Context) (string, error) {
	res, err := s.run(ctx, "free", "-h")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "erro ao obter memoria: " + res.Stderr, nil
	}
	return fenced("uso de memoria:", res.Stdout), nil
}
