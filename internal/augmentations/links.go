package augmentations

import (
	"net/http"
	"strconv"

	"github.com/sarifworks/augments/pkg/hypermedia"
)

// Route names registered on the shared link resolver. Handlers resolve
// links by name so renamed paths only change in one place.
const (
	RouteGet    = "augmentations.get"
	RouteCreate = "augmentations.create"
	RouteUpdate = "augmentations.update"
	RoutePatch  = "augmentations.patch"
	RouteDelete = "augmentations.delete"
)

// RegisterRoutes makes the catalog's addressable routes known to the link
// resolver. Patterns are the externally visible paths, before any module
// prefix stripping.
func RegisterRoutes(resolver *hypermedia.Resolver) {
	resolver.
		Register(RouteGet, http.MethodGet, "/augmentations/{id}").
		Register(RouteCreate, http.MethodPost, "/augmentations").
		Register(RouteUpdate, http.MethodPut, "/augmentations/{id}").
		Register(RoutePatch, http.MethodPatch, "/augmentations/{id}").
		Register(RouteDelete, http.MethodDelete, "/augmentations/{id}")
}

// Resource is the wire representation of an augmentation: the record plus
// the links a client can follow from it.
type Resource struct {
	Augmentation
	Links []hypermedia.Link `json:"links"`
}

// Presenter decorates augmentations with their hypermedia links.
type Presenter struct {
	resolver *hypermedia.Resolver
}

func NewPresenter(resolver *hypermedia.Resolver) *Presenter {
	return &Presenter{resolver: resolver}
}

// Present builds the resource for a single augmentation. Every resource
// carries the same five links: a self link plus one link per mutating
// operation on the record.
func (p *Presenter) Present(req *http.Request, aug Augmentation) (Resource, error) {
	params := map[string]string{"id": strconv.Itoa(aug.ID)}

	links := make([]hypermedia.Link, 0, 5)
	for _, ref := range []struct {
		rel  string
		name string
	}{
		{"self", RouteGet},
		{"post_augmentation", RouteCreate},
		{"put_augmentation", RouteUpdate},
		{"patch_augmentation", RoutePatch},
		{"delete_augmentation", RouteDelete},
	} {
		link, err := p.resolver.Resolve(req, ref.rel, ref.name, params)
		if err != nil {
			return Resource{}, err
		}
		links = append(links, link)
	}

	return Resource{Augmentation: aug, Links: links}, nil
}

// PresentAll builds resources for a listing, preserving order.
func (p *Presenter) PresentAll(req *http.Request, augs []Augmentation) ([]Resource, error) {
	resources := make([]Resource, 0, len(augs))
	for _, aug := range augs {
		resource, err := p.Present(req, aug)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
