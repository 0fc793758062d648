package ports

// AssetResolver turns an authored asset path into a source a renderer can load.
type AssetResolver interface {
	Resolve(path string) string
}

// AssetResolverFunc adapts a plain function to AssetResolver.
type AssetResolverFunc func(path string) string

// Resolve calls f(path).
func (f AssetResolverFunc) Resolve(path string) string {
	return f(path)
}
