package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("copying to clipboard: no clipboard utility found")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
