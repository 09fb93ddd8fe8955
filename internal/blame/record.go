package blame

import (
	"regexp"
	"strconv"

	"github.com/djhaskin987/codealong/internal/gitrepo"
)

const (
	recordLineNumberBaseConstant    = 10
	recordLineNumberBitSizeConstant = 64
)

// The incremental porcelain format announces each blamed line with a header of
// the form "<40-hex sha> <original line> <final line> <group size>\n". Every
// other line kind (author, timestamps, content) is metadata this package skips.
var blameRecordPattern = regexp.MustCompile(`^([0-9a-f]{40}) (\d+) \d+ \d+\n$`)

// Record pairs a revision identifier with the original line number it blames.
type Record struct {
	Revision           gitrepo.RevisionIdentifier
	OriginalLineNumber uint
}

// ParseRecord recognizes the one record shape this package consumes.
// Lines of any other kind yield no record; filtering is never an error.
func ParseRecord(rawLine string) (Record, bool) {
	captures := blameRecordPattern.FindStringSubmatch(rawLine)
	if captures == nil {
		return Record{}, false
	}

	revisionIdentifier, revisionError := gitrepo.ParseRevisionIdentifier(captures[1])
	if revisionError != nil {
		return Record{}, false
	}

	originalLineNumber, lineNumberError := strconv.ParseUint(captures[2], recordLineNumberBaseConstant, recordLineNumberBitSizeConstant)
	if lineNumberError != nil || originalLineNumber == 0 {
		return Record{}, false
	}

	return Record{Revision: revisionIdentifier, OriginalLineNumber: uint(originalLineNumber)}, true
}
