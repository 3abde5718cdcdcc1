// Package schemas holds the JSON Schema documents that define the request contract of the
// application tracker API. The same documents are served to clients and enforced by the server.
package schemas

import (
	"embed"
	"io/fs"
	"strings"
)

//go:embed *.schema.json
var files embed.FS

// Names of the embedded contract documents.
const (
	ApplicationCreate = "application_create"
	ApplicationUpdate = "application_update"
	InterviewCreate   = "interview_create"
	AuthRegister      = "auth_register"
)

// Read returns the schema document registered under name (without the .schema.json suffix).
func Read(name string) ([]byte, error) {
	return files.ReadFile(name + ".schema.json")
}

// Names lists every embedded schema name in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".schema.json"))
	}
	return names
}
