package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type EditorFinishedMsg struct {
	Path string
	Err  error
}

// Command returns the editor command line for path: $VISUAL, then $EDITOR,
// then nvim.
func Command(path string) *exec.Cmd {
	name := "nvim"
	var args []string
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			name, args = fields[0], fields[1:]
			break
		}
	}
	c := exec.Command(name, append(args, path)...)
	c.Dir = filepath.Dir(path)
	return c
}

// OpenFile suspends the program and edits path. Inside tmux the editor opens
// in a split pane instead.
func OpenFile(path string) tea.Cmd {
	c := Command(path)

	if os.Getenv("TMUX") != "" {
		return func() tea.Msg {
			args := append([]string{"split-window", "-h", "-c", c.Dir}, c.Args...)
			err := exec.Command("tmux", args...).Run()
			return EditorFinishedMsg{Path: path, Err: err}
		}
	}

	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{Path: path, Err: err}
	})
}
