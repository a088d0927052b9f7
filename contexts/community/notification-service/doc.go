// Package notificationservice keeps per-user inboxes for the community
// context. Rows are produced by worker consumers from relayed events and
// read through the inbox and unread-summary queries.
package notificationservice
