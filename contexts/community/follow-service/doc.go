// Package followservice maintains the directed social graph for the
// community context: follow toggles, follower counts, and people search
// over the account projection. New follow edges stage an outbox event that
// the worker runtime relays to the notification consumer.
package followservice
