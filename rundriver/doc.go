// Package rundriver orchestrates one engine run end to end: subspace
// traversal in sorted-key order, repeated seed-and-extend extraction per
// subspace, and assembly of the emitted groups' explanations and
// aggregate run statistics.
package rundriver
