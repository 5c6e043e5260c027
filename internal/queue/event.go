// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// UserRegisteredQueue is the durable queue carrying UserRegisteredEvent.
const UserRegisteredQueue = "user.registered"

// UserRegisteredEvent is published after a user is created through the
// register endpoint. It carries enough information for downstream
// consumers to audit the registration without querying the database.
type UserRegisteredEvent struct {
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
	RoleID       int64  `json:"role_id"`
	RoleName     string `json:"role_name"`
	RegisteredBy int64  `json:"registered_by"`
	RegisteredAt string `json:"registered_at"`
}
