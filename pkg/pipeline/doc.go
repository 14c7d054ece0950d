// Package pipeline rewrites the head orientation of XR frame submissions.
//
// A Pipeline holds what every session shares: where the amplification factor comes from, which
// amplification strategy to use and the options observing the frames (measure, drawer). Each
// session then gets its own Filter from Pipeline.NewFilter.
//
// A Filter sits on the xrEndFrame path. For every projection layer of a submission it copies
// the layer and its views, amplifies the yaw of each view orientation and hands a new submission
// to the next function in the chain. Every other layer is forwarded by reference and the
// application's structures are never written to.
//
// The copies live in scratch buffers owned by the Filter and reused from one frame to the next,
// so once the buffers have grown to the size of the largest frame seen, filtering does not
// allocate. The submission returned by FilterSubmission points into those buffers and is only
// valid until the next call on the same Filter, which is why a Filter must not be shared between
// goroutines.
package pipeline
