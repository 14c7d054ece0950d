// Package model provides the data structures shared by the pipeline, its options and the layer.
// It mirrors the part of the OpenXR frame submission the pipeline reads: the frame end info, its
// composition layers and the projection views, plus the handles and result codes that cross the
// API layer boundary.
package model
