package sysinfo

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor answers by the joined command line.
type mockExecutor struct {
	results map[string]*executor.Result
	calls   []string
}

func (m *mockExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error) {
	line := strings.Join(command, " ")
	m.calls = append(m.calls, line)
	if res, ok := m.results[line]; ok {
		copied := *res
		return &copied, nil
	}
	return nil, &executor.CommandError{Cmd: command[0], Stage: "start", Cause: os.ErrNotExist}
}

type mockFiles map[string]string

func (m mockFiles) ReadFileLimit(path string, limit int64) ([]byte, error) {
	if data, ok := m[path]; ok {
		return []byte(data), nil
	}
	return nil, os.ErrNotExist
}

func newTestService(results map[string]*executor.Result, files mockFiles) (*Service, *mockExecutor) {
	exec := &mockExecutor{results: results}
	if files == nil {
		files = mockFiles{}
	}
	s := NewService(exec, files, config.DefaultConfig())
	s.getpid = func() int { return 4242 }
	return s, exec
}

func TestTools_CatalogOrder(t *testing.T) {
	s, _ := newTestService(nil, nil)

	var ids []tool.ID
	for _, tl := range s.Tools() {
		ids = append(ids, tl.ID())
	}
	assert.Equal(t, []tool.ID{
		tool.GetDiskUsage, tool.GetMemoryInfo, tool.GetSystemInfo,
		tool.ListProcesses, tool.GetPackageInfo, tool.GetTerminalInfo,
	}, ids)
}

func TestDiskUsage(t *testing.T) {
	df := "df -h --output=source,size,used,avail,pcent,target -x tmpfs -x devtmpfs"

	s, _ := newTestService(map[string]*executor.Result{
		df: {Stdout: "Sist. Arq. Tam. Usado\n/dev/sda1 100G 40G\n"},
	}, nil)
	out, err := s.DiskUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "uso de disco:\n```\nSist. Arq. Tam. Usado\n/dev/sda1 100G 40G\n\n```", out)

	s, _ = newTestService(map[string]*executor.Result{
		df: {Stderr: "df: falhou", ExitCode: 1},
	}, nil)
	out, err = s.DiskUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "erro ao obter uso de disco: df: falhou", out)
}

func TestMemoryInfo_CommandMissing(t *testing.T) {
	s, _ := newTestService(nil, nil)

	out, err := s.MemoryInfo(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "erro ao obter memoria: "))
}

func TestSystemInfo(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"hostname":  {Stdout: "maquina\n"},
		"uname -r":  {Stdout: "6.8.0-45-generic\n"},
		"uname -m":  {Stdout: "x86_64\n"},
		"uptime -p": {Stdout: "up 2 hours, 5 minutes\n"},
		"nproc":     {Stdout: "8\n"},
	}, mockFiles{
		osReleasePath: "NAME=\"Ubuntu\"\nPRETTY_NAME=\"Ubuntu 24.04 LTS\"\n",
		cpuInfoPath:   "processor\t: 0\nmodel name\t: Intel(R) Core(TM) i7\n",
	})

	out, err := s.SystemInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"informacoes do sistema:",
		"hostname: maquina",
		"sistema: Ubuntu 24.04 LTS",
		"kernel: 6.8.0-45-generic",
		"arquitetura: x86_64",
		"uptime: 2 hours, 5 minutes",
		"cpu: Intel(R) Core(TM) i7",
		"nucleos: 8",
	}, "\n"), out)
}

func TestSystemInfo_MissingFilesAreSkipped(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"hostname": {Stdout: "h\n"},
	}, nil)

	out, err := s.SystemInfo(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, out, "sistema:")
	assert.NotContains(t, out, "cpu:")
	assert.Contains(t, out, "hostname: h")
}

func TestListProcesses(t *testing.T) {
	ps := "USER PID %CPU\nroot 1 9.0\nroot 2 5.0\nroot 3 1.0\n"
	s, exec := newTestService(map[string]*executor.Result{
		"ps aux --sort -pcpu": {Stdout: ps},
		"ps aux --sort -pmem": {Stdout: ps},
	}, nil)

	out, err := s.ListProcesses(context.Background(), ListProcessesRequest{SortBy: "cpu", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "top processos por cpu:\n```\nUSER PID %CPU\nroot 1 9.0\nroot 2 5.0\n```", out)

	out, err = s.ListProcesses(context.Background(), ListProcessesRequest{SortBy: "memory", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "top processos por memoria:\n```\nUSER PID %CPU\nroot 1 9.0\n```", out)
	assert.Equal(t, "ps aux --sort -pmem", exec.calls[1])
}

func TestListProcesses_DefaultsThroughAdapter(t *testing.T) {
	s, exec := newTestService(map[string]*executor.Result{
		"ps aux --sort -pcpu": {Stdout: "HEADER\n"},
	}, nil)

	out, err := s.listProcessesTool().Execute(context.Background(), map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "top processos por cpu:\n```\nHEADER\n```", out)
	assert.Equal(t, []string{"ps aux --sort -pcpu"}, exec.calls)
}

func TestPackageInfo(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"apt-cache show htop": {Stdout: "Package: htop\nVersion: 3.3.0-4\nInstalled-Size: 434\nDescription: interactive processes viewer\n"},
		"dpkg -s htop":        {Stdout: "Status: install ok installed\n"},
	}, nil)

	out, err := s.PackageInfo(context.Background(), PackageInfoRequest{PackageName: "htop"})

	require.NoError(t, err)
	assert.Equal(t, "pacote: htop\nversao: 3.3.0-4\ntamanho: 434 KB\ninstalado: sim ✅\ndescricao: interactive processes viewer", out)
}

func TestPackageInfo_NotInstalledAndMissingFields(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"apt-cache show foo": {Stdout: "Version: 1.0\n"},
		"dpkg -s foo":        {ExitCode: 1},
	}, nil)

	out, err := s.PackageInfo(context.Background(), PackageInfoRequest{PackageName: "foo"})

	require.NoError(t, err)
	assert.Equal(t, "pacote: foo\nversao: 1.0\ntamanho: N/A KB\ninstalado: nao ❌\ndescricao: N/A", out)
}

func TestPackageInfo_NotFound(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"apt-cache show nada": {ExitCode: 100, Stderr: "E: No packages found"},
	}, nil)

	out, err := s.PackageInfo(context.Background(), PackageInfoRequest{PackageName: "nada"})

	require.NoError(t, err)
	assert.Equal(t, "pacote 'nada' nao encontrado nos repositorios.", out)
}

func TestPackageInfo_RejectsOptions(t *testing.T) {
	s, exec := newTestService(nil, nil)

	_, err := s.packageInfoTool().Execute(context.Background(), map[string]any{"package_name": "--help"})

	assert.Error(t, err)
	assert.Empty(t, exec.calls)
}

func TestTerminalInfo(t *testing.T) {
	s, _ := newTestService(map[string]*executor.Result{
		"ps -o ppid= -p 4242": {Stdout: " 100\n"},
		"ps -p 4242,100 -o pid,ppid,user,%cpu,%mem,rss,comm,args": {Stdout: "PID PPID\n4242 100\n100 1\n"},
	}, nil)

	out, err := s.TerminalInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "informacoes do terminal atual:\n```\nPID PPID\n4242 100\n100 1\n```\n\nLEGENDA PID:\n- 4242: LLMX (este processo)\n- 100: Shell Pai (terminal)", out)
}

func TestRun_CancelledContextIsAnError(t *testing.T) {
	s, _ := newTestService(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.DiskUsage(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}
