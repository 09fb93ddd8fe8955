package hosting_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/djhaskin987/codealong/internal/gitrepo"
	"github.com/djhaskin987/codealong/internal/hosting"
)

const (
	testRemoteHostConstant       = "github.com"
	testRemoteOwnerConstant      = "octocat"
	testRemoteRepositoryConstant = "hello-world"
	testExpectedFullNameConstant = "octocat/hello-world"
	testExpectedHTMLURLConstant  = "https://github.com/octocat/hello-world"
	testExpectedGitURLConstant   = "git://github.com/octocat/hello-world.git"
)

func TestRepoFromRemoteURL(testInstance *testing.T) {
	hostingRepository := hosting.RepoFromRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolSSH,
		Host:       testRemoteHostConstant,
		Owner:      testRemoteOwnerConstant,
		Repository: testRemoteRepositoryConstant,
	})

	require.Equal(testInstance, testRemoteOwnerConstant, hostingRepository.Login)
	require.Equal(testInstance, testExpectedFullNameConstant, hostingRepository.FullName)
	require.Equal(testInstance, testExpectedHTMLURLConstant, hostingRepository.HTMLURL)
	require.Equal(testInstance, testExpectedGitURLConstant, hostingRepository.GitURL)
	require.False(testInstance, hostingRepository.Fork)
}

func TestRepoUsesProviderFieldNames(testInstance *testing.T) {
	providerDocument := []byte(`{"id":1296269,"login":"octocat","full_name":"octocat/hello-world","html_url":"https://github.com/octocat/hello-world","git_url":"git://github.com/octocat/hello-world.git","fork":true}`)

	var hostingRepository hosting.Repo
	require.NoError(testInstance, json.Unmarshal(providerDocument, &hostingRepository))
	require.Equal(testInstance, uint64(1296269), hostingRepository.ID)
	require.Equal(testInstance, testExpectedFullNameConstant, hostingRepository.FullName)
	require.True(testInstance, hostingRepository.Fork)
}
