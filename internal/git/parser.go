package git

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

// scpLikePattern matches git@host:owner/repo style addresses
var scpLikePattern = regexp.MustCompile(`^(?:[\w.-]+@)?([\w.-]+\.[\w.-]+):([^/].*)$`)

// portPrefix matches the port of a bare host:port/path location
var portPrefix = regexp.MustCompile(`^(\d+)/`)

// refMarkers introduce "<ref>/<file path>" in hosted browse URLs
var refMarkers = map[string]bool{
	"blob": true, // GitHub, GitLab
	"tree": true, // GitHub, GitLab
	"raw":  true, // GitHub, GitLab
	"edit": true, // GitHub
	"src":  true, // Bitbucket
}

// ParseRemoteLocation parses a remote location URI into a repository descriptor.
//
// Supported forms:
//
//	https://github.com/org/repo/blob/main/path/catalog-info.yaml
//	https://gitlab.com/org/repo/-/tree/v1.0/docs
//	https://github.com/org/repo.git
//	git@github.com:org/repo.git
//
// A location without a ref yields domain.DefaultRef.
func ParseRemoteLocation(location string) (*domain.RemoteRepositoryDescriptor, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, domain.NewInputError("empty remote location", nil)
	}

	host, rawPath, err := splitHostPath(location)
	if err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("unsupported git URL format: %s", location), err)
	}

	segments := splitSegments(rawPath)
	if len(segments) < 2 {
		return nil, domain.NewInputError(fmt.Sprintf("remote location %s is missing owner or repository", location), nil)
	}

	d := &domain.RemoteRepositoryDescriptor{
		SourceHost: host,
		Owner:      segments[0],
		RepoName:   strings.TrimSuffix(segments[1], ".git"),
		Ref:        domain.DefaultRef,
	}

	rest := segments[2:]
	if len(rest) > 0 && rest[0] == "-" {
		rest = rest[1:]
	}
	if len(rest) >= 2 && refMarkers[rest[0]] {
		d.Ref = rest[1]
		rest = rest[2:]
	}
	if len(rest) > 0 {
		d.FilePath = path.Join(rest...)
	}

	if err := validateDescriptor(d); err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("invalid remote location %s", location), err)
	}

	return d, nil
}

func splitHostPath(location string) (string, string, error) {
	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil {
			return "", "", err
		}
		if u.Hostname() == "" {
			return "", "", domain.ErrInvalidURL
		}
		// The port stays part of the host: it selects the clone endpoint
		return strings.ToLower(u.Host), u.EscapedPath(), nil
	}

	if m := scpLikePattern.FindStringSubmatch(location); m != nil {
		// host:8443/org/repo is a bare URL with a port, not an scp path
		if p := portPrefix.FindStringSubmatch(m[2]); p != nil {
			return strings.ToLower(m[1] + ":" + p[1]), m[2][len(p[0]):], nil
		}
		return strings.ToLower(m[1]), m[2], nil
	}

	// Bare "github.com/org/repo/..." form
	host, rest, ok := strings.Cut(location, "/")
	if ok && strings.Contains(host, ".") {
		return strings.ToLower(host), rest, nil
	}

	return "", "", domain.ErrInvalidURL
}

func splitSegments(rawPath string) []string {
	var segments []string
	for _, s := range strings.Split(rawPath, "/") {
		if s == "" {
			continue
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
		segments = append(segments, s)
	}
	return segments
}

func validateDescriptor(d *domain.RemoteRepositoryDescriptor) error {
	for name, v := range map[string]string{
		"host":       d.SourceHost,
		"owner":      d.Owner,
		"repository": d.RepoName,
		"ref":        d.Ref,
	} {
		if !utils.IsSafeSegment(v) {
			return fmt.Errorf("%s %q is not a valid path segment", name, v)
		}
	}

	if d.FilePath != "" {
		clean := path.Clean(d.FilePath)
		if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
			return fmt.Errorf("file path %q escapes the repository", d.FilePath)
		}
		d.FilePath = clean
	}

	return nil
}
