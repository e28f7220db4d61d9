// Package paths provides path handling for dotlink.
//
// It handles:
//
//   - Home directory marker expansion (`~` and `~/...`) against an
//     explicitly supplied home directory
//   - Canonicalization of configured paths (absolute, `..`- and symlink-free)
//   - Home directory lookup for the command line front end
//   - XDG config directory lookup
//
// The Resolver never reads process-wide state: the home directory is a
// value the caller passes in once per run.
//
// # Environment Variables
//
//   - HOME: fallback for the home directory lookup
//   - DOTLINK_CONFIG_DIR: overrides $XDG_CONFIG_HOME/dotlink
//
// # Usage
//
//	home, err := paths.GetHomeDirectory()
//	if err != nil {
//	    return err
//	}
//	r := paths.NewResolver(home)
//	dir, err := r.Resolve("~/.config")   // /home/user/.config
package paths
