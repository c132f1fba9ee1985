// Package util holds small helpers shared across the application.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/term"

	"github.com/zapp-cli/zapp/filesystem"
)

var unsafeFilenameRunes = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s_]+`)

// SanitizeFilename turns a free-form title into a portable filename:
// runs of unsafe runes collapse into single underscores and separator
// runes are trimmed from both ends.
func SanitizeFilename(name string) string {
	name = unsafeFilenameRunes.ReplaceAllString(name, "_")
	return strings.Trim(name, "_-.")
}

// Quantify pairs a count with its singular or plural label.
func Quantify(count int, singular, plural string) string {
	word := plural
	if count == 1 {
		word = singular
	}

	return fmt.Sprintf("%d %s", count, word)
}

// Capitalize uppercases the first rune of s.
func Capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}

	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TerminalSize reports the character dimensions of the terminal on stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FileStem returns the base name of path without its extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// FormatDuration renders a duration as a playback clock, with an hour
// field only when the duration calls for one.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// PrintErasable prints a transient status line and returns a closure
// that erases it again.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)

	return func() {
		// EL2 wipes the whole line regardless of styling width.
		fmt.Fprint(os.Stdout, "\r\x1b[2K")
	}
}

// Ignore runs f and discards its error. Meant for deferred closes.
func Ignore(f func() error) {
	_ = f()
}

// Delete removes a file or an entire directory tree.
func Delete(path string) error {
	stat, err := filesystem.API().Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return filesystem.API().RemoveAll(path)
	}

	return filesystem.API().Remove(path)
}
