package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/relnotes/internal/changelog"
)

// DefaultLogTimeout bounds the git log invocation so a wedged repository
// cannot hang a scripted run.
const DefaultLogTimeout = 60 * time.Second

// logFormat emits one sentinel-terminated block per commit, fields in
// the fixed order the changelog parser expects: id, subject, author
// name, author email, ISO-8601 timestamp, body lines.
var logFormat = "%H%n%s%n%an%n%ae%n%aI%n%b%n" + changelog.BlockSeparator

// LogOptions selects the slice of history to read.
type LogOptions struct {
	// RepoPath is the repository to read; empty means the working directory.
	RepoPath string
	// Range restricts history, e.g. "v1.2.0..HEAD". Empty means all of HEAD.
	Range string
	// Since and Until bound the history by commit date when non-empty.
	// Values are passed to git verbatim, so approxidate forms like
	// "2 weeks ago" work.
	Since string
	Until string
}

// runner executes the git binary. Tests substitute a fake.
type runner interface {
	run(ctx context.Context, dir string, args []string, stdout, stderr io.Writer) error
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, dir string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// defaultRunner is swapped out by tests.
var defaultRunner runner = execRunner{}

// ReadLog invokes git log and returns the raw sentinel-delimited text,
// oldest commit first. The result is fully materialized before the
// changelog core sees any of it; cancellation and timeout live here,
// not in the core.
func ReadLog(ctx context.Context, opts LogOptions) (string, error) {
	args := []string{"log", "--reverse", "--format=" + logFormat}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until="+opts.Until)
	}
	if opts.Range != "" {
		args = append(args, opts.Range)
	}

	logDebug("[git] running git %s", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := io.Copy(&stdout, outR)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&stderr, errR)
		return err
	})
	g.Go(func() error {
		defer outW.Close()
		defer errW.Close()
		return defaultRunner.run(gctx, opts.RepoPath, args, outW, errW)
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git log timed out or was cancelled: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git log failed: %s", msg)
		}
		return "", fmt.Errorf("git log failed: %w", err)
	}

	logDebug("[git] git log produced %d bytes", stdout.Len())
	return stdout.String(), nil
}

// DefaultRange returns "tag..HEAD" for the repository's latest tag, or
// an empty range covering all history when no tag exists.
func DefaultRange(repoPath string) (string, error) {
	tag, err := LatestTag(repoPath)
	if err != nil {
		return "", err
	}
	if tag == "" {
		return "", nil
	}
	return tag + "..HEAD", nil
}
