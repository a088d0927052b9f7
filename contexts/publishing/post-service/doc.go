// Package postservice implements post lifecycle orchestration inside the
// publishing context.
//
// The module owns the typed post records (article/status/poll), slug
// assignment, comments, likes, and the feed read side. Poll option rows are
// created and replaced here; ballot state on those options belongs to the
// poll engine.
package postservice
