// Package pushover provides a client for the Pushover message API
// (https://pushover.net/api).
//
// Messages are assembled with [MessageBuilder] or [AttachmentMessageBuilder]
// and sent with a [Client], which wraps [github.com/go-resty/resty/v2].
//
// # Basic Usage
//
//	msg := pushover.NewMessageBuilder(userKey, appToken, "Disk almost full").
//	    SetTitle("db-01").
//	    SetPriority(pushover.PriorityEmergency).
//	    SetRetry(60).
//	    SetSound(pushover.SoundSiren).
//	    Build()
//
//	c := pushover.New(pushover.WithTimeout(10 * time.Second))
//	if err := c.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.SendMessage(ctx, msg)
//	if err != nil {
//	    log.Fatal(err) // transport failure
//	}
//	if err := resp.Err(); err != nil {
//	    log.Print(err) // rejected by the API
//	}
//
// [SendMessage] and [SendAttachmentMessage] are package-level shortcuts
// using a default client.
//
// # Builders
//
// Builders are values: each setter returns an updated copy. Out-of-range
// input is corrected instead of rejected. A priority outside [-2, 2] becomes
// 0, and a non-positive TTL or timestamp is dropped. Emergency retry and
// expire only apply to [PriorityEmergency] and default to 30 and 10800
// seconds. [MessageBuilder.Build] therefore cannot fail.
//
// [AttachmentMessageBuilder.Build] additionally requires the token, user key,
// message and attachment, and checks that the attachment exists and is at
// most [MaxAttachmentSize] bytes. It returns a [*ValidationError].
//
// # Errors
//
// Failures come in three distinct tiers:
//
//   - [*ValidationError]: a message failed pre-flight checks. No request was made.
//   - [*TransportError]: no usable reply, because of a network, TLS or timeout
//     failure, or a body that is not a Pushover response. [IsTemporary] tells
//     whether resending may help. The client never retries by itself.
//   - A [Response] with Status 0: the API rejected the request. This is not a
//     Go error; call [Response.Err] to get a [*RejectionError] if you want one.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger]. The
// default [NoopLogger] discards all log output.
package pushover
