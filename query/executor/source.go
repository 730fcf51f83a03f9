package executor

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pgq-dev/pgq/runtime/pool"
	"github.com/pgq-dev/pgq/runtime/types"
)

// Resolve turns a query source into SQL text. Raw sources need no I/O. File
// and Lib sources are re-read on every call; there is no content cache, the
// statement cache downstream amortizes repeated executions of the same text.
//
// Lib sources require a pool handle, since the library root is pool
// configuration; passing a nil pool for a Lib source is a programming error
// reported as a validation failure. File and Raw never need the pool.
func Resolve(src types.Source, pools *pool.Pools) (string, error) {
	switch src.Kind() {
	case types.SourceRaw:
		return src.Text(), nil
	case types.SourceFile:
		return readSQLFile(sourceFs(pools), src.Text())
	case types.SourceLib:
		if pools == nil {
			return "", types.Validation("lib source %q requires a pool handle", src.Text())
		}
		return readSQLFile(pools.Fs(), filepath.Join(pools.QueryLibPath(), src.Text()))
	default:
		return "", types.Validation("unknown source kind %d", src.Kind())
	}
}

func sourceFs(pools *pool.Pools) afero.Fs {
	if pools != nil {
		return pools.Fs()
	}
	return afero.NewOsFs()
}

func readSQLFile(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", types.IO("read query file "+path, err)
	}
	return string(data), nil
}
