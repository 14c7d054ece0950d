// Package layer plugs the pipeline into the OpenXR loader as an API layer.
//
// The loader first negotiates the interface with NegotiateLoaderAPILayerInterface, then creates
// every instance through CreateAPILayerInstance, which forwards the call down the chain and keeps
// a Context for the new instance in the Registry. From then on the loader resolves functions with
// GetInstanceProcAddr: xrEndFrame, xrDestroySession and xrDestroyInstance are intercepted, every
// other name is resolved by the next layer.
//
// Each Context owns one pipeline.Filter per session. OpenXR requires xrEndFrame calls on a
// session to be externally synchronized, so a session's filter is never used concurrently.
package layer
