/* ---------------------------------------------------------------------------
** This software is in the public domain, furnished "as is", without technical
** support, and with no warranty, express or implied, as to its usefulness for
** any purpose.
** -------------------------------------------------------------------------*/

package main

// Detection is one object found in an image. Box coordinates are normalized
// to [0,1] in the model's order: ymin, xmin, ymax, xmax.
type Detection struct {
	Box     [4]float32
	ClassID int
	Score   float32
}

func copySlice(f []float32) []float32 {
	ff := make([]float32, len(f))
	copy(ff, f)
	return ff
}

// filterDetections reads the four SSD postprocessed output tensors (boxes,
// classes, scores, count) and keeps the slots 0..count-1 whose score is at
// least threshold, preserving the model's native output order.
func filterDetections(e Engine, threshold float32) []Detection {
	boxes := e.Output(0)
	classes := e.Output(1)
	scores := e.Output(2)
	countOut := e.Output(3)

	count := 0
	if len(countOut) > 0 {
		count = int(countOut[0])
	}
	// Slots beyond the valid count are undefined; a count larger than the
	// buffers themselves is clamped rather than trusted.
	if count > len(scores) {
		count = len(scores)
	}
	if count > len(classes) {
		count = len(classes)
	}
	if 4*count > len(boxes) {
		count = len(boxes) / 4
	}

	results := []Detection{}
	for i := 0; i < count; i++ {
		if scores[i] >= threshold {
			results = append(results, Detection{
				Box:     [4]float32{boxes[4*i], boxes[4*i+1], boxes[4*i+2], boxes[4*i+3]},
				ClassID: int(classes[i]),
				Score:   scores[i],
			})
		}
	}
	return results
}
