// Package hugin drives the hugin tool chain that aligns and blends a burst
// of frames into a panorama: pto_gen, cpfind, cpclean, linefind,
// autooptimiser, pano_modify, nona, and enblend, with an optional
// interactive hugin pass.
//
// The client treats the chain as an opaque capability: it never inspects
// image content, only sequences the tools, checks their exit codes, and
// verifies the expected output files appear. Outputs are addressed by path
// and existing ones are never recomputed.
package hugin
