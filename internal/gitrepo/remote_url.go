package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshSchemePrefixConstant          = "ssh://"
	httpsSchemePrefixConstant        = "https://"
	gitSchemePrefixConstant          = "git://"
	scpLikeUserPrefixConstant        = "git@"
	remoteUserDelimiterConstant      = "@"
	scpLikePathDelimiterConstant     = ":"
	remotePathSeparatorConstant      = "/"
	gitRepositorySuffixConstant      = ".git"
	remoteParseErrorTemplateConstant = "%s: %s"
	invalidRemoteMessageConstant     = "invalid remote url"
	emptyRemoteMessageConstant       = "remote url required"
)

// RemoteProtocol enumerates git remote protocols this tool understands.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
	RemoteProtocolGit   RemoteProtocol = RemoteProtocol("git")
)

// RemoteURL is the structured form of a git remote location.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL converts a textual remote URL into its structured representation.
// SSH (scheme and scp-like), HTTPS, and git protocol forms are recognized.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: emptyRemoteMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedRemote, sshSchemePrefixConstant):
		remainder := strings.TrimPrefix(trimmedRemote, sshSchemePrefixConstant)
		return parseHostAndPath(remote, RemoteProtocolSSH, stripUserPrefix(remainder), remotePathSeparatorConstant)
	case strings.HasPrefix(trimmedRemote, scpLikeUserPrefixConstant):
		remainder := stripUserPrefix(trimmedRemote)
		return parseHostAndPath(remote, RemoteProtocolSSH, remainder, scpLikePathDelimiterConstant)
	case strings.HasPrefix(trimmedRemote, httpsSchemePrefixConstant):
		remainder := strings.TrimPrefix(trimmedRemote, httpsSchemePrefixConstant)
		return parseHostAndPath(remote, RemoteProtocolHTTPS, remainder, remotePathSeparatorConstant)
	case strings.HasPrefix(trimmedRemote, gitSchemePrefixConstant):
		remainder := strings.TrimPrefix(trimmedRemote, gitSchemePrefixConstant)
		return parseHostAndPath(remote, RemoteProtocolGit, remainder, remotePathSeparatorConstant)
	}

	return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteMessageConstant}
}

func stripUserPrefix(remote string) string {
	userDelimiterIndex := strings.Index(remote, remoteUserDelimiterConstant)
	if userDelimiterIndex == -1 {
		return remote
	}
	return remote[userDelimiterIndex+1:]
}

func parseHostAndPath(original string, protocol RemoteProtocol, remainder string, hostDelimiter string) (RemoteURL, error) {
	delimiterIndex := strings.Index(remainder, hostDelimiter)
	if delimiterIndex <= 0 {
		return RemoteURL{}, RemoteURLParseError{Input: original, Message: invalidRemoteMessageConstant}
	}

	host := remainder[:delimiterIndex]
	path := strings.Trim(remainder[delimiterIndex+1:], remotePathSeparatorConstant)
	pathSegments := strings.Split(path, remotePathSeparatorConstant)
	if len(pathSegments) < 2 {
		return RemoteURL{}, RemoteURLParseError{Input: original, Message: invalidRemoteMessageConstant}
	}

	owner := pathSegments[0]
	repository := strings.TrimSuffix(strings.Join(pathSegments[1:], remotePathSeparatorConstant), gitRepositorySuffixConstant)
	if len(owner) == 0 || len(repository) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: original, Message: invalidRemoteMessageConstant}
	}

	return RemoteURL{Protocol: protocol, Host: host, Owner: owner, Repository: repository}, nil
}
