// Package segment clusters image pixels by colour.
//
// Every pixel becomes a record [r, g, b, x, y]. Only the colour channels are
// clustered (ndim = 3); the coordinates ride along as passengers so the
// clustered pixels can be painted back in place.
//
//	res, err := segment.Segment(ctx, img, 8, kmeans.WithSeed(1))
//	out, err := segment.Recolor(res, img.Bounds(), segment.ColorMean)
package segment
