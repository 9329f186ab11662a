package pushover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// AttachmentMessageBuilder assembles an [AttachmentMessage]. Its setters
// behave like those of [MessageBuilder]; emergency retry and expire are not
// available with attachments.
//
// Unlike MessageBuilder, Build validates the result and checks the
// attachment on disk, so problems surface before any request is made.
type AttachmentMessageBuilder struct {
	msg AttachmentMessage
}

func NewAttachmentMessageBuilder(userKey, appToken, message string) AttachmentMessageBuilder {
	return AttachmentMessageBuilder{
		msg: AttachmentMessage{
			AppToken: appToken,
			UserKey:  userKey,
			Message:  message,
		},
	}
}

func (b AttachmentMessageBuilder) ModifyMessage(message string) AttachmentMessageBuilder {
	if isBlank(message) {
		return b
	}

	b.msg.Message = message
	return b
}

func (b AttachmentMessageBuilder) SetTitle(title string) AttachmentMessageBuilder {
	b.msg.Title = optionalText(title)
	return b
}

func (b AttachmentMessageBuilder) RemoveTitle() AttachmentMessageBuilder {
	b.msg.Title = ""
	return b
}

func (b AttachmentMessageBuilder) SetURL(url, title string) AttachmentMessageBuilder {
	if isBlank(url) {
		return b.RemoveURL()
	}

	b.msg.URL = url
	b.msg.URLTitle = optionalText(title)
	return b
}

func (b AttachmentMessageBuilder) RemoveURL() AttachmentMessageBuilder {
	b.msg.URL = ""
	b.msg.URLTitle = ""
	return b
}

func (b AttachmentMessageBuilder) SetPriority(priority Priority) AttachmentMessageBuilder {
	b.msg.Priority = priorityPtr(normalizePriority(priority))
	return b
}

func (b AttachmentMessageBuilder) RemovePriority() AttachmentMessageBuilder {
	return b.SetPriority(PriorityNormal)
}

func (b AttachmentMessageBuilder) SetSound(sound Sound) AttachmentMessageBuilder {
	b.msg.Sound = normalizeSound(sound)
	return b
}

func (b AttachmentMessageBuilder) RemoveSound() AttachmentMessageBuilder {
	b.msg.Sound = ""
	return b
}

func (b AttachmentMessageBuilder) SetTimestamp(unix int64) AttachmentMessageBuilder {
	if unix <= 0 {
		unix = 0
	}

	b.msg.Timestamp = unix
	return b
}

func (b AttachmentMessageBuilder) RemoveTimestamp() AttachmentMessageBuilder {
	b.msg.Timestamp = 0
	return b
}

func (b AttachmentMessageBuilder) SetDevice(name string) AttachmentMessageBuilder {
	if isBlank(name) {
		return b.ClearDevices()
	}

	b.msg.Devices = []string{name}
	return b
}

func (b AttachmentMessageBuilder) AddDevice(name string) AttachmentMessageBuilder {
	b.msg.Devices = addDevice(b.msg.Devices, name)
	return b
}

func (b AttachmentMessageBuilder) SetDevices(names []string) AttachmentMessageBuilder {
	b.msg.Devices = copyDevices(names)
	return b
}

func (b AttachmentMessageBuilder) MergeDevices(names []string) AttachmentMessageBuilder {
	b.msg.Devices = mergeDevices(b.msg.Devices, names)
	return b
}

func (b AttachmentMessageBuilder) ClearDevices() AttachmentMessageBuilder {
	b.msg.Devices = nil
	return b
}

func (b AttachmentMessageBuilder) SetTTL(secs int) AttachmentMessageBuilder {
	if secs <= 0 {
		secs = 0
	}

	b.msg.TTL = secs
	return b
}

// SetAttachment sets the path of the file to upload. A blank path keeps the
// previous one.
func (b AttachmentMessageBuilder) SetAttachment(path string) AttachmentMessageBuilder {
	if isBlank(path) {
		return b
	}

	b.msg.Attachment = path
	return b
}

// Build validates the message and returns it. The returned error is a
// [*ValidationError] naming the offending field.
func (b AttachmentMessageBuilder) Build() (AttachmentMessage, error) {
	msg := b.msg
	msg.Devices = copyDevices(b.msg.Devices)

	if msg.Priority != nil {
		msg.Priority = priorityPtr(*msg.Priority)
	}

	if msg.AppToken == "" {
		return AttachmentMessage{}, &ValidationError{Field: "token", Reason: "application token is empty"}
	}

	if msg.UserKey == "" {
		return AttachmentMessage{}, &ValidationError{Field: "user", Reason: "user key is empty"}
	}

	if msg.Message == "" {
		return AttachmentMessage{}, &ValidationError{Field: "message", Reason: "message is empty"}
	}

	if msg.Attachment == "" {
		return AttachmentMessage{}, &ValidationError{Field: "attachment", Reason: "attachment is empty"}
	}

	if _, err := checkAttachment(msg.Attachment); err != nil {
		return AttachmentMessage{}, err
	}

	return msg, nil
}

// checkAttachment confirms path names a readable regular file within
// [MaxAttachmentSize] and returns its size.
func checkAttachment(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &ValidationError{Field: "attachment", Reason: fmt.Sprintf("file %q does not exist", path)}
		}
		return 0, &ValidationError{Field: "attachment", Reason: fmt.Sprintf("cannot stat %q: %v", path, err)}
	}

	if !info.Mode().IsRegular() {
		return 0, &ValidationError{Field: "attachment", Reason: fmt.Sprintf("%q is not a regular file", path)}
	}

	if info.Size() > MaxAttachmentSize {
		return 0, &ValidationError{
			Field:  "attachment",
			Reason: fmt.Sprintf("file is too large (%d > %d bytes)", info.Size(), MaxAttachmentSize),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, &ValidationError{Field: "attachment", Reason: fmt.Sprintf("cannot open %q: %v", path, err)}
	}
	_ = f.Close()

	return info.Size(), nil
}
