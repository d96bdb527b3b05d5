package executor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats summarizes what rsync reported via --stats.
type Stats struct {
	Files     int64
	TotalSize int64
}

func (s Stats) String() string {
	return fmt.Sprintf("%s entries, %s",
		humanize.Comma(s.Files), humanize.Bytes(uint64(s.TotalSize)))
}

var (
	numFilesPattern  = regexp.MustCompile(`Number of files: ([\d,]+)`)
	totalSizePattern = regexp.MustCompile(`Total file size: ([\d,]+) bytes`)
)

// ParseStats extracts entry count and total size from rsync --stats output.
// The second return is false when the output does not contain a stats block,
// such as with very old rsync versions.
func ParseStats(out string) (Stats, bool) {
	files, okFiles := matchCount(numFilesPattern, out)
	size, okSize := matchCount(totalSizePattern, out)
	if !okFiles && !okSize {
		return Stats{}, false
	}
	return Stats{Files: files, TotalSize: size}, true
}

func matchCount(re *regexp.Regexp, out string) (int64, bool) {
	m := re.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
