package pushover

import "strconv"

// AttachmentMessage is a notification with a file attachment, sent with
// [Client.SendAttachmentMessage]. Emergency options are not available on
// this path.
type AttachmentMessage struct {
	AppToken string
	UserKey  string
	Message  string
	// Attachment is the path of the file to upload.
	Attachment string

	Title     string
	URL       string
	URLTitle  string
	Priority  *Priority
	Sound     Sound
	Timestamp int64
	Devices   []string
	TTL       int
}

// formFields returns the textual multipart fields. Every field is present,
// empty when unset, except ttl which is only sent when set.
func (m AttachmentMessage) formFields() map[string]string {
	fields := map[string]string{
		"token":     m.AppToken,
		"user":      m.UserKey,
		"message":   m.Message,
		"title":     m.Title,
		"url":       m.URL,
		"url_title": m.URLTitle,
		"priority":  "",
		"sound":     m.Sound.String(),
		"timestamp": "",
		"device":    joinDevices(m.Devices),
	}

	if m.Priority != nil {
		fields["priority"] = strconv.Itoa(int(*m.Priority))
	}

	if m.Timestamp > 0 {
		fields["timestamp"] = strconv.FormatInt(m.Timestamp, 10)
	}

	if m.TTL > 0 {
		fields["ttl"] = strconv.Itoa(m.TTL)
	}

	return fields
}
