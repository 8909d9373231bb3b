/*
 * HERA - Debugger REPL: a liner-backed prompt loop over Dispatch.
 *
 * Copyright 2024, The HERA Project Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package debugger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"
)

const banner = `hera debugger - type "help" for a command list, "quit" to leave.`

// Run drives s's command loop until quit, restart-to-quit, or the
// terminal is closed. Mirrors the reference console reader: liner for
// history-backed input, an empty line repeats the previous command.
func Run(s *Session) error {
	fmt.Fprintln(s.Out, banner)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return completeCommand(partial)
	})

	last := ""
	for {
		input, err := line.Prompt("hera> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		cmdText := strings.TrimSpace(input)
		if cmdText == "" {
			cmdText = last
		} else {
			last = cmdText
		}
		if cmdText == "" {
			continue
		}

		quit, out, err := Dispatch(s, cmdText)
		if err != nil {
			fmt.Fprintln(s.Out, "error:", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(s.Out, out)
		}
		if quit {
			return nil
		}
	}
}

func completeCommand(partial string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, partial) {
			out = append(out, c.name)
		}
	}
	return out
}
