// Package radhdr encodes linear-radiance images into the Radiance picture
// format (.hdr), using the shared-exponent RGBE pixel encoding and the
// format's new-style adaptive run-length compression.
//
// The package is an encoder only, aimed at producing environment maps and
// other render outputs readable by standard Radiance consumers. Pixel values
// are treated as final linear radiance; no tone mapping or color-space
// conversion is applied beyond the optional sRGB linearization of LDR inputs.
package radhdr
