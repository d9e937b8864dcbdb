package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/githash"
)

// Signature is a parsed author or committer line value.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// String formats the signature as "Name <email> <unix seconds> <±hhmm>".
func (s Signature) String() string {
	_, offset := s.When.Zone()
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), formatTimezone(offset))
}

// ParseSignature parses an author or committer value.
func ParseSignature(s string) (Signature, error) {
	emailStart := strings.IndexByte(s, '<')
	emailEnd := strings.LastIndexByte(s, '>')
	if emailStart == -1 || emailEnd < emailStart {
		return Signature{}, fmt.Errorf("%w: signature %q: missing <email>", ErrInvalidData, s)
	}

	fields := strings.Fields(s[emailEnd+1:])
	if len(fields) != 2 {
		return Signature{}, fmt.Errorf("%w: signature %q: expected timestamp and timezone", ErrInvalidData, s)
	}

	seconds, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: signature %q: timestamp: %v", ErrInvalidData, s, err)
	}

	location, err := parseTimezone(fields[1])
	if err != nil {
		return Signature{}, fmt.Errorf("%w: signature %q: %v", ErrInvalidData, s, err)
	}

	return Signature{
		Name:  strings.TrimSpace(s[:emailStart]),
		Email: s[emailStart+1 : emailEnd],
		When:  time.Unix(seconds, 0).In(location),
	}, nil
}

// formatTimezone converts an offset in seconds to ±HHMM.
func formatTimezone(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / constants.SecondsPerHour
	minutes := (offset % constants.SecondsPerHour) / constants.SecondsPerMinute
	return fmt.Sprintf("%c%02d%02d", sign, hours, minutes)
}

func parseTimezone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("timezone %q is not ±hhmm", tz)
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %v", tz, err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %v", tz, err)
	}

	offset := hours*constants.SecondsPerHour + minutes*constants.SecondsPerMinute
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), nil
}

// CommitHeader is a commit header line after the tree and parent lines.
// Multi-line values (e.g. gpgsig) hold their lines joined by "\n".
type CommitHeader struct {
	Key   string
	Value string
}

// CommitOptions are the fields of a new commit. Empty Author or Committer
// omits the line.
type CommitOptions struct {
	Tree         githash.SHA1
	Parents      []githash.SHA1
	Author       string
	Committer    string
	ExtraHeaders []CommitHeader
	Message      string
}

// Commit is a snapshot of a tree plus its history and metadata.
type Commit struct {
	tree    githash.SHA1
	parents []githash.SHA1
	headers []CommitHeader // author, committer, extras; in payload order
	message string
}

// NewCommit builds a commit from structured fields.
func NewCommit(opts CommitOptions) (*Commit, error) {
	var headers []CommitHeader
	if opts.Author != "" {
		headers = append(headers, CommitHeader{Key: constants.CommitAuthorKey, Value: opts.Author})
	}
	if opts.Committer != "" {
		headers = append(headers, CommitHeader{Key: constants.CommitCommitterKey, Value: opts.Committer})
	}

	for _, h := range opts.ExtraHeaders {
		if isFixedCommitKey(h.Key) {
			return nil, fmt.Errorf("%w: %q is not an extra header", ErrInvalidData, h.Key)
		}
		headers = append(headers, h)
	}

	for _, h := range headers {
		if err := validateHeader(h); err != nil {
			return nil, err
		}
	}

	return &Commit{
		tree:    opts.Tree,
		parents: slices.Clone(opts.Parents),
		headers: headers,
		message: opts.Message,
	}, nil
}

func validateHeader(h CommitHeader) error {
	if h.Key == "" || strings.ContainsAny(h.Key, " \n") {
		return fmt.Errorf("%w: invalid commit header key %q", ErrInvalidData, h.Key)
	}
	if h.Key == constants.CommitAuthorKey || h.Key == constants.CommitCommitterKey {
		if strings.Contains(h.Value, "\n") {
			return fmt.Errorf("%w: %s must be a single line", ErrInvalidData, h.Key)
		}
	}
	return nil
}

func isFixedCommitKey(key string) bool {
	switch key {
	case constants.CommitTreeKey, constants.CommitParentKey, constants.CommitAuthorKey, constants.CommitCommitterKey:
		return true
	default:
		return false
	}
}

// commitState tracks which section of the header the parser is in;
// known keys must appear in this order.
type commitState int

const (
	expectTree commitState = iota
	inParents
	afterAuthor
	afterCommitter
	inExtras
)

// DecodeCommit parses a commit payload: "key value" header lines in the order
// tree, parent*, author, committer, extras; a blank line; then the message.
func DecodeCommit(payload []byte) (*Commit, error) {
	commit := &Commit{}
	state := expectTree

	offset := 0
	for {
		lineEnd := bytes.IndexByte(payload[offset:], '\n')
		if lineEnd == -1 {
			return nil, fmt.Errorf("%w: commit header not terminated by a blank line", ErrInvalidData)
		}
		line := string(payload[offset : offset+lineEnd])
		offset += lineEnd + 1

		if line == "" {
			break
		}

		// Continuation of a multi-line value
		if line[0] == ' ' {
			if len(commit.headers) == 0 || state < inExtras {
				return nil, fmt.Errorf("%w: unexpected continuation line %q", ErrInvalidData, line)
			}
			last := &commit.headers[len(commit.headers)-1]
			last.Value += "\n" + line[1:]
			continue
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: malformed commit header line %q", ErrInvalidData, line)
		}

		var err error
		state, err = commit.applyHeader(state, key, value)
		if err != nil {
			return nil, err
		}
	}

	if state == expectTree {
		return nil, fmt.Errorf("%w: commit has no tree line", ErrInvalidData)
	}

	commit.message = string(payload[offset:])
	return commit, nil
}

// applyHeader records one header line and returns the parser's new state.
func (c *Commit) applyHeader(state commitState, key, value string) (commitState, error) {
	if state == expectTree {
		if key != constants.CommitTreeKey {
			return state, fmt.Errorf("%w: commit must start with a tree line, got %q", ErrInvalidData, key)
		}
		hash, err := parseCommitHash(key, value)
		if err != nil {
			return state, err
		}
		c.tree = hash
		return inParents, nil
	}

	switch key {
	case constants.CommitTreeKey:
		return state, fmt.Errorf("%w: duplicate tree line", ErrInvalidData)
	case constants.CommitParentKey:
		if state != inParents {
			return state, fmt.Errorf("%w: parent line after %s", ErrInvalidData, c.headers[len(c.headers)-1].Key)
		}
		hash, err := parseCommitHash(key, value)
		if err != nil {
			return state, err
		}
		c.parents = append(c.parents, hash)
		return inParents, nil
	case constants.CommitAuthorKey:
		if state != inParents {
			return state, fmt.Errorf("%w: author line out of order", ErrInvalidData)
		}
		c.headers = append(c.headers, CommitHeader{Key: key, Value: value})
		return afterAuthor, nil
	case constants.CommitCommitterKey:
		if state != inParents && state != afterAuthor {
			return state, fmt.Errorf("%w: committer line out of order", ErrInvalidData)
		}
		c.headers = append(c.headers, CommitHeader{Key: key, Value: value})
		return afterCommitter, nil
	default:
		c.headers = append(c.headers, CommitHeader{Key: key, Value: value})
		return inExtras, nil
	}
}

// parseCommitHash requires the lowercase hex form, the only one that
// re-encodes to the same bytes.
func parseCommitHash(key, value string) (githash.SHA1, error) {
	hash, err := githash.ParseSHA1(value)
	if err != nil {
		return githash.SHA1{}, fmt.Errorf("%w: %s: %v", ErrInvalidData, key, err)
	}
	if hash.String() != value {
		return githash.SHA1{}, fmt.Errorf("%w: %s hash %q is not lowercase hex", ErrInvalidData, key, value)
	}
	return hash, nil
}

func (c *Commit) object() {}

func (c *Commit) Type() Type {
	return CommitType
}

// Content returns the commit payload.
func (c *Commit) Content() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s\n", constants.CommitTreeKey, c.tree)
	for _, parent := range c.parents {
		fmt.Fprintf(&buf, "%s %s\n", constants.CommitParentKey, parent)
	}
	for _, h := range c.headers {
		buf.WriteString(h.Key)
		buf.WriteByte(' ')
		buf.WriteString(strings.ReplaceAll(h.Value, "\n", "\n "))
		buf.WriteByte('\n')
	}

	// Blank line before message
	buf.WriteByte('\n')
	buf.WriteString(c.message)

	return buf.Bytes()
}

// Size returns the payload length in bytes.
func (c *Commit) Size() int {
	return len(c.Content())
}

// Data returns the canonical encoding, header included.
func (c *Commit) Data() []byte {
	return Serialize(c)
}

// Hash returns the SHA-1 of the canonical encoding.
func (c *Commit) Hash() githash.SHA1 {
	return Hash(c)
}

func (c *Commit) Tree() githash.SHA1 {
	return c.tree
}

func (c *Commit) Parents() []githash.SHA1 {
	return slices.Clone(c.parents)
}

func (c *Commit) IsInitialCommit() bool {
	return len(c.parents) == 0
}

// Author returns the raw author value, or "" if the line is absent.
func (c *Commit) Author() string {
	return c.headerValue(constants.CommitAuthorKey)
}

// Committer returns the raw committer value, or "" if the line is absent.
func (c *Commit) Committer() string {
	return c.headerValue(constants.CommitCommitterKey)
}

// AuthorSignature parses the author line.
func (c *Commit) AuthorSignature() (Signature, error) {
	return ParseSignature(c.Author())
}

// CommitterSignature parses the committer line.
func (c *Commit) CommitterSignature() (Signature, error) {
	return ParseSignature(c.Committer())
}

// ExtraHeaders returns the headers other than tree, parent, author and committer.
func (c *Commit) ExtraHeaders() []CommitHeader {
	var extras []CommitHeader
	for _, h := range c.headers {
		if !isFixedCommitKey(h.Key) {
			extras = append(extras, h)
		}
	}
	return extras
}

func (c *Commit) Message() string {
	return c.message
}

// Summary returns the first line of the message.
func (c *Commit) Summary() string {
	summary, _, _ := strings.Cut(c.message, "\n")
	return summary
}

// String returns the commit text as stored.
func (c *Commit) String() string {
	return string(c.Content())
}

func (c *Commit) headerValue(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return h.Value
		}
	}
	return ""
}
