// Package chart builds SDSS image-cutout requests and stores the resulting
// finding charts in a blob bucket.
//
// The cutout query carries ra, dec, width, height, scale, the concatenated
// display-option string and a fixed service-specific spatial-request
// parameter. Responses are streamed straight into the bucket; a failed or
// cancelled download never leaves a partial chart behind.
//
// The package also owns the two scale computations: the velocity rescale and
// the angular-size fit (see ComputeScale).
package chart
