// Package cleanup prunes leftover artifacts from previous runs.
package cleanup

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/where"
)

// logTTL bounds how long dated log files are kept around.
const logTTL = 7 * 24 * time.Hour

// CollectGarbage launches a background sweep of stale artifacts.
// Crashed sessions leave IPC sockets behind in the temp directory, and dated
// log files accumulate forever otherwise.
func CollectGarbage() {
	go func() {
		sweepSockets()
		sweepLogs()
	}()
}

func sweepSockets() {
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "zapp-") || !strings.HasSuffix(name, ".sock") {
			continue
		}

		path := filepath.Join(os.TempDir(), name)
		if conn, err := net.DialTimeout("unix", path, time.Second); err == nil {
			// A live engine still answers on it.
			conn.Close()
			continue
		}
		_ = os.Remove(path)
	}
}

func sweepLogs() {
	fs := filesystem.API()
	entries, err := fs.ReadDir(where.Logs())
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || time.Since(entry.ModTime()) <= logTTL {
			continue
		}
		_ = fs.Remove(filepath.Join(where.Logs(), entry.Name()))
	}
}
