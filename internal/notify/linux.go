//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

func platformNotify(title, body string) error {
	cmd := exec.Command("notify-send", title, body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
