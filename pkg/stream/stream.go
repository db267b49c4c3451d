// Package stream applies the tree search to a JSON Lines file, one document
// per line, optionally following the file as it grows.
package stream

import (
	"context"
	"io"
	stdlog "log"
	"strings"

	"github.com/hpcloud/tail"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/tree"
)

// Options controls Follow.
type Options struct {
	// Search and Regex are applied to every line's tree.
	Search string
	Regex  bool
	// Select restricts reported matches to these path patterns.
	Select []string
	// Follow keeps reading as the file grows; otherwise Follow returns at EOF.
	Follow bool
	// FromEnd skips the existing contents when following.
	FromEnd bool
}

// Result describes one line of input.
type Result struct {
	// Line is 1-based and counts lines seen since Follow started.
	Line    int
	Text    string
	Root    *tree.Node
	Matches []*tree.Node
	// Err is set for lines that are not valid JSON; such lines do not stop
	// the stream.
	Err error
}

// Follow reads path line by line and calls fn with each non-blank line's
// filtered tree and matches. It returns when ctx ends, when fn returns an
// error, or at EOF unless opts.Follow is set.
func Follow(ctx context.Context, path string, opts Options, fn func(Result) error) error {
	cfg := tail.Config{
		Follow:    opts.Follow,
		ReOpen:    opts.Follow,
		MustExist: true,
		Logger:    stdlog.New(io.Discard, "", 0),
	}
	if opts.Follow && opts.FromEnd {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to open stream").WithDetail("path", path)
	}
	defer t.Cleanup()

	logger := logging.NewLogger("stream")
	matcher := tree.NewMatcher(opts.Search, opts.Regex)
	lineNo := 0

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return nil

		case line, ok := <-t.Lines:
			if !ok {
				return t.Wait()
			}
			lineNo++
			if line.Err != nil {
				logger.WithError(line.Err).Warn("Failed to read line")
				continue
			}
			text := strings.TrimRight(line.Text, "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}

			res, err := evaluate(text, matcher, opts.Select)
			res.Line = lineNo
			if err != nil {
				t.Stop()
				return err
			}
			if err := fn(res); err != nil {
				t.Stop()
				return err
			}
		}
	}
}

func evaluate(text string, matcher tree.Matcher, patterns []string) (Result, error) {
	res := Result{Text: text}

	v := format.Validate(text)
	if v.Error != nil {
		res.Err = v.Error.Err()
		return res, nil
	}

	root := tree.FilterWith(tree.Build(v.Value), matcher)
	res.Root = root
	res.Matches = tree.FindMatches(root)

	if len(patterns) > 0 {
		selected, err := tree.Select(root, patterns...)
		if err != nil {
			return res, err
		}
		res.Matches = within(res.Matches, selected, matcher.Active())
	}
	return res, nil
}

// within keeps the matches that fall inside one of the selected subtrees.
// Without an active search the selected nodes themselves are the result.
func within(matches, selected []*tree.Node, searching bool) []*tree.Node {
	if !searching {
		return selected
	}
	var out []*tree.Node
	for _, m := range matches {
		for _, s := range selected {
			if m.Path().HasPrefix(s.Path()) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
