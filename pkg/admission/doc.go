// Package admission exposes the rate limiters over HTTP.
//
// The handlers are stateless: every request is decided by the two shared
// limiter instances injected at construction. All synchronization lives
// inside the limiters, so the handlers do no locking of their own.
//
// A denial is a normal admission outcome, not a fault. The decision
// endpoints always answer 200 and carry the verdict in the body, so a
// client distinguishes "denied" from "broken" by the allowed field, not
// by the status code.
package admission
