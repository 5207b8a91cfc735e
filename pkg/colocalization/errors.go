package colocalization

import (
	"fmt"

	"colocalizer/internal/models"
)

// DimensionMismatchError reports an attempt to compare two channel planes
// that do not share width and height. The pair that produced it is
// abandoned; other channel pairs of the same run can still proceed.
type DimensionMismatchError struct {
	Width1, Height1 int
	Width2, Height2 int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("channel planes are not of the same pixel size: %dx%d vs %dx%d",
		e.Width1, e.Height1, e.Width2, e.Height2)
}

// checkSameSize validates the dimension invariant before any pixel is read.
func checkSameSize(p1, p2 *models.Plane) error {
	if !p1.SameSize(p2) {
		return &DimensionMismatchError{
			Width1: p1.Width, Height1: p1.Height,
			Width2: p2.Width, Height2: p2.Height,
		}
	}
	return nil
}
