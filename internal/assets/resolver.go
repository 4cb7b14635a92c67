package assets

import "errors"

// AssetResolver looks assets up in a chain of loaders: the custom asset
// directory when one is configured, then the embedded assets.
// A loader is skipped only when it does not have the asset.
type AssetResolver struct {
	chain    []AssetLoader
	embedded *EmbeddedLoader
}

// NewAssetResolver returns a resolver over customBasePath and the embedded
// assets. An empty customBasePath uses the embedded assets alone.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	embedded := NewEmbeddedLoader()
	r := &AssetResolver{embedded: embedded}

	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, embedded)

	return r, nil
}

// LoadStyle returns the CSS of the named style.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the named document template.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// StyleNames lists the embedded style names.
func (r *AssetResolver) StyleNames() []string {
	return r.embedded.StyleNames()
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

// first returns the result of the first loader in the chain that has the
// asset. A not-found error from the last loader is returned as is.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !isNotFoundError(err) {
			return "", err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
