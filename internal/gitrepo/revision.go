package gitrepo

import (
	"fmt"
	"strings"
)

const (
	revisionIdentifierLengthConstant     = 40
	revisionParseErrorTemplateConstant   = "%s: %s"
	revisionLengthMessageConstant        = "revision identifiers must be 40 characters"
	revisionCharacterSetMessageConstant  = "revision identifiers must be lowercase hexadecimal"
	lowercaseHexadecimalDigitsConstant   = "0123456789abcdef"
	revisionRequiredValueMessageConstant = "revision identifier required"
)

// RevisionIdentifier names a historical snapshot by its full lowercase hexadecimal hash.
// The value is treated as an opaque token and never interpreted.
type RevisionIdentifier string

// RevisionParseError indicates a textual revision identifier could not be parsed.
type RevisionParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RevisionParseError) Error() string {
	return fmt.Sprintf(revisionParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRevisionIdentifier converts textual output from git into a RevisionIdentifier.
func ParseRevisionIdentifier(raw string) (RevisionIdentifier, error) {
	trimmedRevision := strings.TrimSpace(raw)
	if len(trimmedRevision) == 0 {
		return "", RevisionParseError{Input: raw, Message: revisionRequiredValueMessageConstant}
	}
	if len(trimmedRevision) != revisionIdentifierLengthConstant {
		return "", RevisionParseError{Input: raw, Message: revisionLengthMessageConstant}
	}
	for characterIndex := 0; characterIndex < len(trimmedRevision); characterIndex++ {
		if !strings.ContainsRune(lowercaseHexadecimalDigitsConstant, rune(trimmedRevision[characterIndex])) {
			return "", RevisionParseError{Input: raw, Message: revisionCharacterSetMessageConstant}
		}
	}
	return RevisionIdentifier(trimmedRevision), nil
}

// String returns the 40-character hexadecimal form.
func (identifier RevisionIdentifier) String() string {
	return string(identifier)
}
