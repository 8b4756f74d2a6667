package checks

import (
	"context"
	"sort"
	"sync"

	"imgdiff/core/collection"
	"imgdiff/core/imagediff"
	"imgdiff/core/locator"
	"imgdiff/core/resource"

	"golang.org/x/sync/errgroup"
)

// DecodeWorkers bounds concurrent fetch and decode operations.
const DecodeWorkers = 8

// ImageReport describes the content of a batch root.
type ImageReport struct {
	// Total is the number of listed PNG resources.
	Total int `json:"total"`
	// Undecodable lists the URIs that are not valid PNG images.
	Undecodable []string `json:"undecodable"`
	// Collisions maps keynames shared by several resources to their URIs.
	// Only the last listed resource of each keyname takes part in a batch run.
	Collisions map[string][]string `json:"collisions"`
}

// OK reports whether every image decodes and keynames are unique.
func (r *ImageReport) OK() bool {
	return len(r.Undecodable) == 0 && len(r.Collisions) == 0
}

// CheckImages lists src, groups resources by keyname and decodes every one.
// Fetch failures abort the check; decode failures are reported.
func CheckImages(ctx context.Context, src *collection.Source) (*ImageReport, error) {
	uris, err := src.List(ctx)
	if err != nil {
		return nil, err
	}

	rep := &ImageReport{
		Total:       len(uris),
		Undecodable: []string{},
		Collisions:  map[string][]string{},
	}

	byKey := make(map[string][]string, len(uris))
	for _, uri := range uris {
		key := locator.Keyname(uri)
		byKey[key] = append(byKey[key], uri)
	}
	for key, group := range byKey {
		if len(group) > 1 {
			rep.Collisions[key] = group
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DecodeWorkers)

	for _, uri := range uris {
		g.Go(func() error {
			h, err := resource.Parse(uri, src.Client())
			if err != nil {
				return err
			}
			data, err := h.Fetch(ctx, false)
			if err != nil {
				return err
			}
			if _, err := imagediff.Decode(data, uri); err != nil {
				mu.Lock()
				rep.Undecodable = append(rep.Undecodable, uri)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(rep.Undecodable)
	return rep, nil
}
