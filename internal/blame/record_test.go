package blame_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/djhaskin987/codealong/internal/blame"
)

const (
	testRecordCaseNameConstant          = "header_record"
	testAuthorLineCaseNameConstant      = "author_metadata_line"
	testContentLineCaseNameConstant     = "content_line"
	testShortHashCaseNameConstant       = "short_hash"
	testUppercaseHashCaseNameConstant   = "uppercase_hash"
	testNonDecimalLineCaseNameConstant  = "non_decimal_line_number"
	testMissingNewlineCaseNameConstant  = "missing_trailing_newline"
	testMissingCountCaseNameConstant    = "missing_group_count"
	testZeroLineNumberCaseNameConstant  = "zero_line_number"
	testRepeatedHexPairConstant         = "ab"
	testRevisionRepetitionCountConstant = 20
	testExpectedOriginalLineConstant    = uint(3)
)

func repeatedRevision() string {
	return strings.Repeat(testRepeatedHexPairConstant, testRevisionRepetitionCountConstant)
}

func TestParseRecord(testInstance *testing.T) {
	testCases := []struct {
		name         string
		rawLine      string
		expectMatch  bool
		expectedLine uint
	}{
		{
			name:         testRecordCaseNameConstant,
			rawLine:      repeatedRevision() + " 3 7 1\n",
			expectMatch:  true,
			expectedLine: testExpectedOriginalLineConstant,
		},
		{
			name:        testAuthorLineCaseNameConstant,
			rawLine:     "author Jane Doe\n",
			expectMatch: false,
		},
		{
			name:        testContentLineCaseNameConstant,
			rawLine:     "\tfunc main() {\n",
			expectMatch: false,
		},
		{
			name:        testShortHashCaseNameConstant,
			rawLine:     strings.Repeat(testRepeatedHexPairConstant, 10) + " 1 1 1\n",
			expectMatch: false,
		},
		{
			name:        testUppercaseHashCaseNameConstant,
			rawLine:     strings.ToUpper(repeatedRevision()) + " 1 1 1\n",
			expectMatch: false,
		},
		{
			name:        testNonDecimalLineCaseNameConstant,
			rawLine:     repeatedRevision() + " one 1 1\n",
			expectMatch: false,
		},
		{
			name:        testMissingNewlineCaseNameConstant,
			rawLine:     repeatedRevision() + " 1 1 1",
			expectMatch: false,
		},
		{
			name:        testMissingCountCaseNameConstant,
			rawLine:     repeatedRevision() + " 1 1\n",
			expectMatch: false,
		},
		{
			name:        testZeroLineNumberCaseNameConstant,
			rawLine:     repeatedRevision() + " 0 1 1\n",
			expectMatch: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRecord, matched := blame.ParseRecord(testCase.rawLine)
			require.Equal(testInstance, testCase.expectMatch, matched)
			if testCase.expectMatch {
				require.Equal(testInstance, repeatedRevision(), parsedRecord.Revision.String())
				require.Equal(testInstance, testCase.expectedLine, parsedRecord.OriginalLineNumber)
			}
		})
	}
}
