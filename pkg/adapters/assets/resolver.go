// Package assets resolves authored asset paths into loadable sources.
package assets

import (
	"net/url"
	"path"
	"strings"
)

// Resolver joins relative asset paths onto a base URL or directory.
// Absolute URLs, data URIs and rooted paths pass through unchanged.
type Resolver struct {
	base *url.URL
	raw  string
}

// NewResolver creates a resolver for base. An empty base resolves every
// path to itself.
func NewResolver(base string) (*Resolver, error) {
	r := &Resolver{raw: base}
	if base == "" {
		return r, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "" {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		r.base = u
	}
	return r, nil
}

// Resolve implements ports.AssetResolver.
func (r *Resolver) Resolve(p string) string {
	if p == "" || r.raw == "" || isAbsolute(p) {
		return p
	}
	if r.base != nil {
		ref, err := url.Parse(strings.TrimPrefix(p, "./"))
		if err != nil {
			return p
		}
		return r.base.ResolveReference(ref).String()
	}
	return path.Join(r.raw, p)
}

func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "data:") {
		return true
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme != "" && u.Host != ""
}
