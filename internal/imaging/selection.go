package imaging

import (
	"fmt"
	"image"
)

// Selection kinds reported by SelectionOptions.Mask.
const (
	SelectionNone   = "none"
	SelectionMask   = "mask"
	SelectionRegion = "region"
)

// SelectionOptions chooses at most one source for a sort's selection mask: a
// mask file, an explicit region, or a named region. Feather applies to both
// region forms and InvertMask to the mask file only.
type SelectionOptions struct {
	MaskPath    string  `json:"mask_path,omitempty"`
	InvertMask  bool    `json:"invert_mask,omitempty"`
	Region      *Region `json:"region,omitempty"`
	NamedRegion string  `json:"named_region,omitempty"`
	Feather     int     `json:"feather,omitempty"`
}

// Mask builds the selection mask for an image with the given bounds.
//
// Returns:
//   - image.Image: The mask, or nil when no source is set.
//   - string: SelectionNone, SelectionMask or SelectionRegion.
//   - error: Non-nil if more than one source is set or the source is invalid.
func (o SelectionOptions) Mask(cache *ImageCache, bounds image.Rectangle) (image.Image, string, error) {
	sources := 0
	for _, set := range []bool{o.MaskPath != "", o.Region != nil, o.NamedRegion != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, "", fmt.Errorf("mask_path, region and named_region are mutually exclusive")
	}

	switch {
	case o.MaskPath != "":
		m, err := LoadMask(cache, o.MaskPath, bounds, o.InvertMask)
		return m, SelectionMask, err
	case o.Region != nil:
		m, err := RegionMask(bounds, *o.Region, o.Feather)
		return m, SelectionRegion, err
	case o.NamedRegion != "":
		r, err := NamedRegion(bounds, o.NamedRegion)
		if err != nil {
			return nil, "", err
		}
		m, err := RegionMask(bounds, r, o.Feather)
		return m, SelectionRegion, err
	}
	return nil, SelectionNone, nil
}
