package game

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyToClipboard writes text to the system clipboard.
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}
