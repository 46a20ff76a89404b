// Package lcov classifies the records of an LCOV trace. Only the records
// that drive branch filtering are interpreted; everything else is Other and
// is meant to be copied through untouched.
package lcov

import (
	"strconv"
	"strings"
)

type Kind int

const (
	Other Kind = iota
	SourceFile
	EndOfRecord
	BranchData
)

const (
	sourceFilePrefix = "SF:"
	endOfRecord      = "end_of_record"
	branchDataPrefix = "BRDA:"
)

func (k Kind) String() string {
	switch k {
	case SourceFile:
		return "source_file"
	case EndOfRecord:
		return "end_of_record"
	case BranchData:
		return "branch_data"
	default:
		return "other"
	}
}

// Classify returns the kind of a raw trace line, line ending included.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, sourceFilePrefix):
		return SourceFile
	case strings.HasPrefix(line, endOfRecord):
		return EndOfRecord
	case strings.HasPrefix(line, branchDataPrefix):
		return BranchData
	default:
		return Other
	}
}

// SourcePath extracts the path of an SF: record without its line ending.
func SourcePath(line string) string {
	path := strings.TrimPrefix(line, sourceFilePrefix)
	path = strings.TrimSuffix(path, "\n")

	return strings.TrimSuffix(path, "\r")
}

// BranchLine returns the source line number a BRDA: record refers to.
// ok is false when the line field is not a positive integer.
func BranchLine(line string) (n int, ok bool) {
	field := strings.TrimPrefix(line, branchDataPrefix)
	if i := strings.IndexByte(field, ','); i >= 0 {
		field = field[:i]
	} else {
		field = strings.TrimRight(field, "\r\n")
	}

	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}
