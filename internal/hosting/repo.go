package hosting

import (
	"fmt"

	"github.com/djhaskin987/codealong/internal/gitrepo"
)

const (
	fullNameTemplateConstant = "%s/%s"
	htmlURLTemplateConstant  = "https://%s/%s"
	gitURLTemplateConstant   = "git://%s/%s.git"
)

// Repo describes a hosting-provider repository as exchanged over its API.
type Repo struct {
	ID       uint64 `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	GitURL   string `json:"git_url"`
	Fork     bool   `json:"fork"`
}

// RepoFromRemoteURL derives hosting coordinates from a parsed git remote.
func RepoFromRemoteURL(remoteURL gitrepo.RemoteURL) Repo {
	fullName := fmt.Sprintf(fullNameTemplateConstant, remoteURL.Owner, remoteURL.Repository)
	return Repo{
		Login:    remoteURL.Owner,
		FullName: fullName,
		HTMLURL:  fmt.Sprintf(htmlURLTemplateConstant, remoteURL.Host, fullName),
		GitURL:   fmt.Sprintf(gitURLTemplateConstant, remoteURL.Host, fullName),
	}
}
