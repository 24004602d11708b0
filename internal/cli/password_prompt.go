package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var errNoStdin = errors.New("stdin unavailable")

// readPasswordNoEcho reads one line from a terminal with echo turned off.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errNoStdin
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
