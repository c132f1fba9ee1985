// Package open launches URLs with the platform's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/zapp-cli/zapp/constant"
)

// Start opens the target with the default handler of the platform and
// does not wait for the spawned process.
func Start(target string) error {
	cmd, err := command(target)
	if err != nil {
		return err
	}

	return cmd.Start()
}

func command(target string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("no opener for %s", runtime.GOOS)
	}
}
