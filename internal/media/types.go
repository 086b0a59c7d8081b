package media

type Type string

const (
	// TypeFace is a full-screen face drawn on the 128x64 panel.
	TypeFace Type = "face"
)

func (t Type) Size() (w int16, h int16) {
	switch t {
	case TypeFace:
		return 128, 64
	default:
		return 0, 0
	}
}

// Face identifies one of the embedded face bitmaps.
type Face uint8

const (
	FaceNeutral Face = iota
	FaceHappy
	FaceWink
	FaceSleepy
	FaceSurprised
	FaceLove
	FaceSad
	FaceAngry

	// NumFaces is the number of embedded faces.
	NumFaces = int(FaceAngry) + 1
)

var faceNames = [NumFaces]string{
	"neutral",
	"happy",
	"wink",
	"sleepy",
	"surprised",
	"love",
	"sad",
	"angry",
}

func (f Face) String() string {
	if int(f) >= NumFaces {
		return "INVALID"
	}
	return faceNames[f]
}

// Negative reports whether the face shows a negative emotion. Negative faces are reserved for reactions and never
// picked at random while the device is idling.
func (f Face) Negative() bool {
	return f == FaceSad || f == FaceAngry
}

// ClampFace converts an arbitrary index into a valid Face, saturating at either end of the set.
func ClampFace(idx int) Face {
	if idx < 0 {
		return 0
	}
	if idx >= NumFaces {
		return Face(NumFaces - 1)
	}
	return Face(idx)
}
