// SPDX-License-Identifier: MIT

// Package lvfilter is a small toolkit for direct 2-D convolution of numeric
// grids: one exact, bit-reproducible kernel plus ways to spread it over CPU
// cores and cooperating ranks.
//
// Packages:
//
//	matrix/      Dense row-major grid, validation, comparison, gonum interop
//	filter2d/    Convolve and its parallel, separable and collective variants
//	collective/  in-process world of ranks with Barrier, Bcast and Gather
//	workerpool/  bounded pool of futures for independent jobs
//	gridio/      whitespace/CSV grid files with located parse errors
//	heatmap/     render a grid as an image (gonum/plot)
//	cmd/correlate/ command-line front end (single job, HCL job file, batch)
//
// Quick start:
//
//	img, _ := gridio.ReadFile("image.txt")
//	k, _ := gridio.ReadFile("kernel.txt")
//	out := filter2d.Convolve(img, k)
//	_ = gridio.WriteFile("result.txt", out, gridio.FormatAuto)
//
// The border band of floor(Mf/2) rows and floor(Nf/2) columns is always zero;
// every variant except the separable one matches Convolve bit for bit.
package lvfilter
