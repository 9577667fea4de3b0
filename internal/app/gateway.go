package app

// Gateway delivers outbound events to connected clients. Implementations must
// not block: session methods call the gateway while holding the session lock,
// so a slow client has to be absorbed by buffering or dropping, never by
// back-pressure into the game loop.
type Gateway interface {
	// SendTo delivers an event to a single connection.
	SendTo(connectionID, event string, payload any)
	// Broadcast delivers an event to every connection in a session.
	Broadcast(sessionCode, event string, payload any)
	// BroadcastExcept delivers an event to every connection in a session
	// except one, typically the originator.
	BroadcastExcept(sessionCode, exceptID, event string, payload any)
}
