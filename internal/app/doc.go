// SPDX-License-Identifier: MIT

// Package app wires the command line to the library packages: it loads the
// job configuration (HCL file plus flag overrides), builds the logger, and
// runs single and batch filter jobs.
package app
