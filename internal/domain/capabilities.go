package domain

import "context"

// MessageSender delivers an outbound message to a user over the messaging
// channel. Implementations must bound the call with the given context.
type MessageSender interface {
	Send(ctx context.Context, to, body string) error
}

// Transcriber turns a voice note, referenced by its media URL, into text.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaURL string) (string, error)
}

// ReplyProvider produces the assistant's raw reply for an inbound message.
// The reply may carry a trailing structured reminder payload.
type ReplyProvider interface {
	Reply(ctx context.Context, userText, localTime, tzLabel string) (string, error)
}

// Authorizer gates whether an owner may send another message. Metering and
// payment handling live behind this seam, outside this service.
type Authorizer interface {
	Allow(ctx context.Context, owner string) bool
}
