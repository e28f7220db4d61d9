// Package expand turns preset entries into concrete link requests.
package expand

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Expand returns the link requests for one entry, in order.
// Sources are sourceDir joined with each name; the destination directory is
// the entry's target resolved through r.
func Expand(entry types.ConfigEntry, sourceDir string, r *paths.Resolver) ([]types.LinkRequest, error) {
	switch e := entry.(type) {
	case types.SingleEntry:
		return expandSingle(e, sourceDir, r)
	case types.MultipleEntry:
		return expandMultiple(e, sourceDir, r)
	default:
		return nil, errors.Newf(errors.ErrInvalidEntry, "unsupported entry type %T", entry)
	}
}

// ExpandAll expands every entry in order and stops at the first error.
func ExpandAll(entries []types.ConfigEntry, sourceDir string, r *paths.Resolver) ([]types.LinkRequest, error) {
	logger := logging.GetLogger("expand")

	var requests []types.LinkRequest
	for i, entry := range entries {
		reqs, err := Expand(entry, sourceDir, r)
		if err != nil {
			logger.Debug().Err(err).Int("entry", i).Msg("Entry expansion failed")
			if de, ok := err.(*errors.DotlinkError); ok {
				return nil, de.WithDetail("entry", i)
			}
			return nil, err
		}
		requests = append(requests, reqs...)
	}

	logger.Debug().
		Int("entries", len(entries)).
		Int("requests", len(requests)).
		Msg("Entries expanded")
	return requests, nil
}

func expandSingle(e types.SingleEntry, sourceDir string, r *paths.Resolver) ([]types.LinkRequest, error) {
	if e.Name == "" {
		return nil, errors.New(errors.ErrInvalidEntry, "entry has an empty name")
	}
	if e.Rename != nil && *e.Rename == "" {
		return nil, errors.Newf(errors.ErrInvalidEntry, "entry %q has an empty rename", e.Name)
	}
	if e.Rename != nil && !isFileName(*e.Rename) {
		return nil, errors.Newf(errors.ErrInvalidEntry, "rename %q must be a file name", *e.Rename)
	}

	dstDir, err := resolveTarget(e.To, r)
	if err != nil {
		return nil, err
	}

	return []types.LinkRequest{{
		Source:      filepath.Join(sourceDir, e.Name),
		Destination: filepath.Join(dstDir, e.DestinationName()),
	}}, nil
}

func expandMultiple(e types.MultipleEntry, sourceDir string, r *paths.Resolver) ([]types.LinkRequest, error) {
	if len(e.Names) == 0 {
		return nil, errors.New(errors.ErrInvalidEntry, "entry has no names")
	}
	for i, name := range e.Names {
		if name == "" {
			return nil, errors.Newf(errors.ErrInvalidEntry, "entry name %d is empty", i)
		}
	}

	dstDir, err := resolveTarget(e.To, r)
	if err != nil {
		return nil, err
	}

	requests := make([]types.LinkRequest, 0, len(e.Names))
	for _, name := range e.Names {
		requests = append(requests, types.LinkRequest{
			Source:      filepath.Join(sourceDir, name),
			Destination: filepath.Join(dstDir, name),
		})
	}
	return requests, nil
}

func resolveTarget(to string, r *paths.Resolver) (string, error) {
	if to == "" {
		return "", errors.New(errors.ErrInvalidEntry, "entry has an empty destination")
	}
	return r.Resolve(to)
}

// isFileName reports whether s names a single entry of a directory.
func isFileName(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/"+string(filepath.Separator))
}
