package validation

import (
	"path/filepath"

	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

const (
	fileGroup   = "FILE"
	fileSetHdng = "FILE_FSET"
	fileNameHdg = "FILE_NAME"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleFile,
		Name:        "file-group",
		Scope:       ScopeFile,
		Description: "Referenced file sets must be listed in FILE and every listed file must exist under FILE/<FILE_FSET>/",
		File:        checkFiles,
	})
}

func checkFiles(ctx *Context) {
	var refs collectUsage
	for _, g := range ctx.Container.Groups() {
		if g.Name == fileGroup {
			continue
		}
		if col := g.Column(fileSetHdng); col != nil {
			for i, v := range col.Data {
				refs.add(v, g.Name, g.Lines[i], fileSetHdng)
			}
		}
	}

	files := ctx.Container.Group(fileGroup)
	if files == nil {
		if len(refs.list) > 0 {
			ctx.Report(types.RuleFile, fileGroup, 0, "", "FILE group missing, %s is referenced", fileSetHdng)
		}
		return
	}
	for _, h := range []string{fileSetHdng, fileNameHdg} {
		if !files.HasColumn(h) {
			ctx.Report(types.RuleFile, fileGroup, files.HeadingRow, h, "%s missing from FILE group", h)
			return
		}
	}

	listed := make(map[string]bool)
	for _, v := range files.Column(fileSetHdng).Data {
		listed[v] = true
	}
	for _, u := range refs.list {
		if !listed[u.code] {
			ctx.Report(types.RuleFile, u.group, u.line, u.field, "file set %q not listed in FILE group", u.code)
		}
	}

	// Read-only probe of the associated file tree.
	for _, row := range files.Rows() {
		fset, name := row.Get(fileSetHdng), row.Get(fileNameHdg)
		if fset == "" || name == "" {
			continue
		}
		path := filepath.Join(ctx.Dir, fileGroup, fset, name)
		if !ctx.Prober.Exists(path) {
			ctx.Report(types.RuleFile, fileGroup, row.Line(), fileNameHdg, "associated file %s not found", filepath.ToSlash(path))
		}
	}
}
