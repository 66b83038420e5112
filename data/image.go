package data

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// An Image is one entry in a Spotify image list.
type Image struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// Images is stored as a JSON text column.
type Images []Image

func (imgs Images) Value() (driver.Value, error) {
	if imgs == nil {
		imgs = Images{}
	}
	bs, err := json.Marshal(imgs)
	if err != nil {
		return nil, fmt.Errorf("error encoding %d images: %w", len(imgs), err)
	}
	return string(bs), nil
}

func (imgs *Images) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*imgs = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), imgs)
	case []byte:
		return json.Unmarshal(v, imgs)
	default:
		return fmt.Errorf("cannot scan %T into Images", src)
	}
}

// First returns the first image URL, which is all Spotify guarantees
// for playlist images.
func (imgs Images) First() (string, bool) {
	if len(imgs) == 0 {
		return "", false
	}
	return imgs[0].URL, true
}

// Select picks an image URL by width. If pixels is nonzero, only an
// exact width match qualifies. Otherwise, with maxWidth or minWidth
// nonzero, the largest image within those bounds wins. With no
// constraints at all, the first image is returned. The second return
// is false when no image satisfies the constraints; that is a normal
// outcome, not an error.
func (imgs Images) Select(pixels, maxWidth, minWidth int64) (string, bool) {
	if pixels != 0 {
		for _, img := range imgs {
			if img.Width == pixels {
				return img.URL, true
			}
		}
		return "", false
	}

	if maxWidth == 0 && minWidth == 0 {
		return imgs.First()
	}

	var best *Image
	for i := range imgs {
		img := &imgs[i]
		if maxWidth != 0 && img.Width > maxWidth {
			continue
		}
		if minWidth != 0 && img.Width < minWidth {
			continue
		}
		if best == nil || img.Width > best.Width {
			best = img
		}
	}
	if best == nil {
		return "", false
	}
	return best.URL, true
}
