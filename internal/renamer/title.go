package renamer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultTitlePattern matches "# [<any single character>] <title>".
const DefaultTitlePattern = `^# \[.\] (.*)$`

const (
	// maxFirstLine bounds how much of a file is read looking for the title line.
	maxFirstLine = 64 * 1024

	matchTimeout = time.Second
)

// TitleMatcher extracts a raw title from a file's first line.
type TitleMatcher struct {
	re *regexp2.Regexp
}

// NewTitleMatcher compiles pattern. The first capture group is the title.
func NewTitleMatcher(pattern string) (*TitleMatcher, error) {
	if pattern == "" {
		pattern = DefaultTitlePattern
	}
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	// Group 0 is the whole match.
	if len(re.GetGroupNumbers()) < 2 {
		return nil, fmt.Errorf("%w: %q has no capture group", ErrInvalidPattern, pattern)
	}
	re.MatchTimeout = matchTimeout
	return &TitleMatcher{re: re}, nil
}

// Extract returns the captured title, untrimmed. ok is false when the line
// does not have the title shape.
func (m *TitleMatcher) Extract(line string) (title string, ok bool, err error) {
	match, err := m.re.FindStringMatch(line)
	if err != nil {
		return "", false, fmt.Errorf("matching title: %w", err)
	}
	if match == nil {
		return "", false, nil
	}
	group := match.GroupByNumber(1)
	if group == nil || len(group.Captures) == 0 {
		return "", false, nil
	}
	return group.String(), true, nil
}

// readFirstLine returns the first line of the file at path without its line
// terminator or a leading UTF-8 byte order mark.
func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := bufio.NewReader(io.LimitReader(f, maxFirstLine))
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimPrefix(line, "\ufeff")
	return line, nil
}
