// Package coordinator owns every piece of mutable application state and
// mediates all transitions through the two remote services.
//
// # Overview
//
// The Coordinator is the single aggregate behind the UI: session phase,
// current user, the card collection, the open popup with its payloads, and
// the per-mutation loading flags all live here. The presentation layer reads
// state through accessors and raises intents; it never mutates anything
// itself.
//
// # Intent / Apply Split
//
// Every intent handler runs in two halves:
//
//  1. The synchronous half mutates owned state (raise a loading flag, stash
//     a pending-delete target, open a popup) and returns a Cmd.
//  2. The Cmd performs exactly one network call off the update loop and
//     returns a completion Msg.
//  3. Apply folds the Msg back into owned state on the update goroutine.
//
// Because both halves of every state change run on the single update
// goroutine, no field needs a lock. Multiple Cmds may be in flight at once;
// their completions are serialized by the event loop.
//
// # Failure Policy
//
// Every completion carries its error as data. Apply's policy: a failed
// mutation leaves all owned state exactly as it was before the call, except
// loading flags, which always clear. Errors go to the operational log, not
// to a user-facing modal. Two exceptions are deliberate: a failed sign-up
// opens the info tooltip with a negative outcome, and a rejected startup
// token silently degrades to anonymous.
//
// # Pessimistic Updates
//
// Likes, deletes, and edits are confirmed-first. The collection is only
// touched after the server responds: a like swaps in the server's
// authoritative card, a delete removes by id. A like result whose card id is
// no longer in the collection is dropped rather than applied, so a response
// that raced a concurrent delete cannot resurrect the deleted card.
//
// # Popups
//
// Popup is a single tagged value, so "at most one popup open" holds by
// construction. ConfirmDelete is two-phase: RequestDelete stores the target
// and opens the popup, ConfirmDelete issues the network call, and
// CloseAllPopups clears the pending slot (and is idempotent).
package coordinator
