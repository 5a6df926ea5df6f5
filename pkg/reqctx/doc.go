// Package reqctx carries per-invocation metadata through context.Context.
//
// A command stores a RequestMeta once, before it talks to the API:
//
//	ctx = reqctx.WithRequestMeta(ctx, reqctx.NewRequestMeta("doctors create"))
//
// and the API client copies RequestMeta.RequestID into the X-Request-Id
// header of every outgoing call, so all requests made by one invocation can
// be correlated in server logs.
//
// All context keys are private unexported types to prevent collisions.
package reqctx
