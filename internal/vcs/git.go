package vcs

import (
	"errors"

	"github.com/go-git/go-git/v5"
)

// ErrNoRemoteURL is returned when a remote exists but has no URL configured.
var ErrNoRemoteURL = errors.New("remote has no url")

const shortHashLen = 7

// GitOpener opens git repositories using go-git.
type GitOpener struct{}

// NewGitOpener creates a new GitOpener.
func NewGitOpener() *GitOpener {
	return &GitOpener{}
}

// PlainOpenWithDetect opens a git repository, detecting .git in parent directories.
func (o *GitOpener) PlainOpenWithDetect(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}
	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &gitRepository{repo: repo, root: root}, nil
}

// gitRepository wraps go-git Repository.
type gitRepository struct {
	repo *git.Repository
	root string
}

func (r *gitRepository) Branch() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	if !ref.Name().IsBranch() {
		return "", nil
	}
	return ref.Name().Short(), nil
}

func (r *gitRepository) HeadHash() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	hash := ref.Hash().String()
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	return hash, nil
}

func (r *gitRepository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoRemoteURL
	}
	return urls[0], nil
}

func (r *gitRepository) RepoPath() string {
	return r.root
}

var defaultOpener Opener = NewGitOpener()

// DefaultOpener returns the opener used when none is supplied.
func DefaultOpener() Opener {
	return defaultOpener
}
