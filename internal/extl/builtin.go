package extl

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

//go:embed builtin
var builtinFS embed.FS

// BuiltinRoot is the engine root to use with Builtin.
const BuiltinRoot = "."

// Builtin returns a read-only filesystem holding the navbar and timestamp
// components.
func Builtin() afero.Fs {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: sub})
}
