package changelog

import "strings"

// BlockSeparator is the sentinel line the git collaborator emits between
// commit blocks. It must not collide with commit content; the pretty
// format in internal/git appends it after every commit.
const BlockSeparator = "==END=="

// minBlockFields is the number of fixed lines a block must carry:
// id, subject, author name, author email, timestamp.
const minBlockFields = 5

// ParseLog turns raw sentinel-delimited log text into ordered commits.
// Input order is preserved: the collaborator emits oldest first and the
// revert reconciler depends on that.
//
// Blocks with fewer than the required fields are skipped silently; they
// are expected artifacts at input boundaries, not errors. Returns
// EmptyInputError when no parsable block remains.
func ParseLog(raw string) ([]Commit, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &EmptyInputError{Reason: "log text is empty"}
	}

	var commits []Commit
	var block []string

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == BlockSeparator {
			if c, ok := parseBlock(block); ok {
				commits = append(commits, c)
			}
			block = block[:0]
			continue
		}
		block = append(block, line)
	}
	// Trailing block without a closing sentinel
	if c, ok := parseBlock(block); ok {
		commits = append(commits, c)
	}

	if len(commits) == 0 {
		return nil, &EmptyInputError{Reason: "log text contains no parsable commit blocks"}
	}
	return commits, nil
}

// parseBlock converts one block's lines into a Commit. The fixed fields
// arrive in order: id, subject, author name, author email, timestamp,
// then zero or more body lines.
func parseBlock(lines []string) (Commit, bool) {
	lines = trimBlankEdges(lines)
	if len(lines) < minBlockFields {
		return Commit{}, false
	}

	c := Commit{
		ID:          lines[0],
		Subject:     lines[1],
		AuthorName:  lines[2],
		AuthorEmail: lines[3],
		Timestamp:   lines[4],
	}
	if len(lines) > minBlockFields {
		c.Body = strings.TrimSpace(strings.Join(lines[minBlockFields:], "\n"))
	}
	return c, true
}

// trimBlankEdges drops leading and trailing blank lines from a block.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
