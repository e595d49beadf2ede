//go:build !unix && !windows

package download

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}
