package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

const (
	// HomeMarker is the leading path component replaced by the home directory
	HomeMarker = "~"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvDotlinkConfigDir overrides the XDG config directory for dotlink
	EnvDotlinkConfigDir = "DOTLINK_CONFIG_DIR"

	// DotlinkDirName is the directory name for dotlink-specific files
	DotlinkDirName = "dotlink"
)

// Resolver turns configured paths into absolute canonical paths.
type Resolver struct {
	home string
}

// NewResolver creates a Resolver that expands the home marker to home.
// An empty home is allowed; resolving a path with the marker then fails.
func NewResolver(home string) *Resolver {
	return &Resolver{home: home}
}

// Home returns the home directory the resolver expands to
func (r *Resolver) Home() string {
	return r.home
}

// ExpandHome replaces a leading home marker with the home directory.
// It does not touch the filesystem. `~user` forms are left alone.
func (r *Resolver) ExpandHome(path string) (string, error) {
	rest, ok := stripHomeMarker(path)
	if !ok {
		return path, nil
	}
	if r.home == "" {
		return "", errors.New(errors.ErrHomeUnavailable, "couldn't retrieve home directory").
			WithDetail("path", path)
	}
	return filepath.Join(r.home, rest), nil
}

// Resolve expands the home marker and canonicalizes the result.
// Every component of the path must exist.
func (r *Resolver) Resolve(path string) (string, error) {
	expanded, err := r.ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "cannot make %s absolute", path).
			WithDetail("path", path)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "cannot canonicalize %s", path).
			WithDetail("path", path)
	}

	return canonical, nil
}

// stripHomeMarker returns the remainder of path after a leading `~`
// component and whether the marker was present.
func stripHomeMarker(path string) (string, bool) {
	if path == HomeMarker {
		return "", true
	}
	if !strings.HasPrefix(path, HomeMarker) {
		return "", false
	}
	rest := path[len(HomeMarker):]
	if rest[0] != '/' && rest[0] != filepath.Separator {
		return "", false
	}
	return strings.TrimLeft(rest, "/"+string(filepath.Separator)), true
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	if err == nil {
		err = os.ErrNotExist
	}
	return "", errors.Wrap(err, errors.ErrHomeUnavailable, "couldn't retrieve home directory")
}

// ConfigDir returns the directory searched for a config file when the
// dotfiles directory has none.
func ConfigDir() string {
	if dir := os.Getenv(EnvDotlinkConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, DotlinkDirName)
}
