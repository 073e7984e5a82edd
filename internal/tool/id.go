package tool

import "fmt"

// ID names one built-in tool. The set is closed: the model may still send
// any string, which Parse rejects.
type ID string

const (
	ListDirectory ID = "list_directory"
	FindFile      ID = "find_file"
	GetFileSize   ID = "get_file_size"
	ReadFile      ID = "read_file"
	GetPath       ID = "get_path"

	GetDiskUsage    ID = "get_disk_usage"
	GetMemoryInfo   ID = "get_memory_info"
	GetSystemInfo   ID = "get_system_info"
	ListProcesses   ID = "list_processes"
	GetPackageInfo  ID = "get_package_info"
	GetTerminalInfo ID = "get_terminal_info"

	RunCommand     ID = "run_command"
	RunSudoCommand ID = "run_sudo_command"

	CreateScript ID = "create_script"
	RunScript    ID = "run_script"
)

// Group is one of the four disjoint executor families.
type Group string

const (
	GroupFilesystem Group = "filesystem"
	GroupSystemInfo Group = "system_info"
	GroupExecutor   Group = "executor"
	GroupScript     Group = "script"
)

var catalog = []struct {
	id    ID
	group Group
}{
	{ListDirectory, GroupFilesystem},
	{FindFile, GroupFilesystem},
	{GetFileSize, GroupFilesystem},
	{ReadFile, GroupFilesystem},
	{GetPath, GroupFilesystem},
	{GetDiskUsage, GroupSystemInfo},
	{GetMemoryInfo, GroupSystemInfo},
	{GetSystemInfo, GroupSystemInfo},
	{ListProcesses, GroupSystemInfo},
	{GetPackageInfo, GroupSystemInfo},
	{GetTerminalInfo, GroupSystemInfo},
	{RunCommand, GroupExecutor},
	{RunSudoCommand, GroupExecutor},
	{CreateScript, GroupScript},
	{RunScript, GroupScript},
}

// All returns every tool id in catalog order.
func All() []ID {
	ids := make([]ID, len(catalog))
	for i, e := range catalog {
		ids[i] = e.id
	}
	return ids
}

// Parse converts a provider-supplied name into an ID.
func Parse(name string) (ID, error) {
	for _, e := range catalog {
		if string(e.id) == name {
			return e.id, nil
		}
	}
	return "", &UnknownToolError{Name: name}
}

// Group returns the executor family the tool belongs to, or "" for ids
// outside the catalog.
func (id ID) Group() Group {
	for _, e := range catalog {
		if e.id == id {
			return e.group
		}
	}
	return ""
}

// Valid reports whether id is part of the catalog.
func (id ID) Valid() bool {
	return id.Group() != ""
}

func (id ID) String() string {
	return string(id)
}

// UnknownToolError is returned by Parse for names outside the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("erro: tool '%s' nao encontrada.", e.Name)
}
