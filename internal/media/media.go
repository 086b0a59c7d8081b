package media

import (
	"embed"
	"errors"
	"image"

	"golang.org/x/image/bmp"
)

//go:embed media/*/*.bmp
var imgs embed.FS

// LoadImage loads the specified image of the specified type.
func LoadImage(typ Type, name string) (image.Image, error) {
	r, err := imgs.Open("media/" + string(typ) + "/" + name + ".bmp")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fi, err := r.Stat()
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return nil, errors.New("cannot open directory")
	}

	w, h := typ.Size()
	if w == 0 || h == 0 {
		return nil, errors.New("invalid media type")
	}

	img, err := bmp.Decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	iw, ih := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	if int(w) != iw || int(h) != ih {
		return nil, errors.New("invalid image size for type " + string(typ))
	}

	return img, nil
}

// Faces holds every decoded face, indexed by Face. It is loaded once at boot and never freed.
type Faces [NumFaces]image.Image

// LoadFaces decodes the whole face set.
func LoadFaces() (*Faces, error) {
	var faces Faces
	for i := range faces {
		f := Face(i)
		img, err := LoadImage(TypeFace, f.String())
		if err != nil {
			return nil, errors.New("load face " + f.String() + ": " + err.Error())
		}
		faces[i] = img
	}
	return &faces, nil
}

// Get returns the face for idx, clamping out of range indexes to the nearest valid face.
func (f *Faces) Get(idx int) image.Image {
	return f[ClampFace(idx)]
}
