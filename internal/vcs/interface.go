// Package vcs provides version control system abstractions.
package vcs

// Repository provides the read-only repository facts used in reports.
type Repository interface {
	// Branch returns the short name of the checked out branch, or "" when HEAD is detached.
	Branch() (string, error)
	// HeadHash returns the abbreviated HEAD commit hash.
	HeadHash() (string, error)
	// RemoteURL returns the first URL of the named remote.
	RemoteURL(name string) (string, error)
	// RepoPath returns the root path of the repository work tree.
	RepoPath() string
}

// Opener opens repositories. Tests substitute their own implementation.
type Opener interface {
	PlainOpenWithDetect(path string) (Repository, error)
}

// Info summarizes a repository for the structural report.
type Info struct {
	Root   string `json:"root"`
	Branch string `json:"branch,omitempty"`
	Head   string `json:"head,omitempty"`
	Remote string `json:"remote,omitempty"`
}

// Inspect collects Info for the repository containing path. Missing pieces
// (no commits yet, no remote) are left empty; only a failure to open the
// repository is reported as an error.
func Inspect(opener Opener, path string) (*Info, error) {
	if opener == nil {
		opener = DefaultOpener()
	}
	repo, err := opener.PlainOpenWithDetect(path)
	if err != nil {
		return nil, err
	}

	info := &Info{Root: repo.RepoPath()}
	if branch, err := repo.Branch(); err == nil {
		info.Branch = branch
	}
	if head, err := repo.HeadHash(); err == nil {
		info.Head = head
	}
	if remote, err := repo.RemoteURL("origin"); err == nil {
		info.Remote = remote
	}
	return info, nil
}
