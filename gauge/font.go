package gauge

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Text sizes in points, picked to match the label/units/readout
// proportions of the reference dial.
const (
	labelFontSize = 12
	unitsFontSize = 19
	valueFontSize = 24
)

type faceSet struct {
	label font.Face
	units font.Face
	value font.Face
}

var (
	fontOnce sync.Once
	fontErr  error
	dialFont *truetype.Font
)

// loadFaces derives the three faces the dial uses from the embedded Go
// Regular font. The font is parsed once; the faces are per gauge, as a
// truetype face must not be shared between concurrently rendering
// widgets.
func loadFaces() (faceSet, error) {
	fontOnce.Do(func() {
		dialFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return faceSet{}, fontErr
	}
	return faceSet{
		label: truetype.NewFace(dialFont, &truetype.Options{Size: labelFontSize}),
		units: truetype.NewFace(dialFont, &truetype.Options{Size: unitsFontSize}),
		value: truetype.NewFace(dialFont, &truetype.Options{Size: valueFontSize}),
	}, nil
}
