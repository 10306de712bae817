// Package git is the version-control collaborator for relnotes. It
// validates repositories and discovers branches and tags through go-git,
// and shells out to the git binary only for the history read itself,
// whose raw text the changelog core consumes. The core never imports
// this package.
package git

import (
	"fmt"
	"os"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger logs debug messages when debug mode is enabled.
// By default it is a no-op; set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository at path, walking up the directory tree
// to find the root. The current working directory is used when path is
// empty.
func openRepo(path string) (*gogit.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository checks whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// CurrentBranch returns the checked-out branch name, or an empty string
// in detached HEAD state.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD")
		return "", nil
	}
	return head.Name().Short(), nil
}

// tagEntry pairs a tag name with the commit time it points at.
type tagEntry struct {
	name string
	when int64
}

// LatestTag returns the name of the most recent tag by tagged commit
// time, or an empty string when the repository has no tags.
func LatestTag(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	iter, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var tags []tagEntry
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := resolveTagCommit(repo, ref)
		if err != nil {
			// Tags pointing at non-commit objects are skipped.
			return nil
		}
		tags = append(tags, tagEntry{name: ref.Name().Short(), when: commit.Committer.When.Unix()})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}
	if len(tags) == 0 {
		return "", nil
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].when > tags[j].when })
	logDebug("[git] LatestTag: %s", tags[0].name)
	return tags[0].name, nil
}

// resolveTagCommit resolves a (possibly annotated) tag reference to the
// commit it points at.
func resolveTagCommit(repo *gogit.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	if tagObj, err := repo.TagObject(ref.Hash()); err == nil {
		return tagObj.Commit()
	}
	return repo.CommitObject(ref.Hash())
}
