package pushover

// MessageBuilder assembles a [Message].
//
// Every method takes and returns the builder by value, so a chain never
// mutates a builder another chain still holds:
//
//	msg := pushover.NewMessageBuilder(userKey, appToken, "Backup finished").
//		SetTitle("nightly").
//		SetPriority(pushover.PriorityHigh).
//		SetSound(pushover.SoundMagic).
//		Build()
//
// Out-of-range input is corrected rather than rejected, so Build cannot fail.
type MessageBuilder struct {
	msg Message

	// Zero means unset; both have minimums above zero.
	retry  int
	expire int
}

// NewMessageBuilder starts a message with the three required fields, stored unmodified.
func NewMessageBuilder(userKey, appToken, message string) MessageBuilder {
	return MessageBuilder{
		msg: Message{
			AppToken: appToken,
			UserKey:  userKey,
			Message:  message,
		},
	}
}

// ModifyMessage replaces the message text. Blank text is ignored.
func (b MessageBuilder) ModifyMessage(message string) MessageBuilder {
	if isBlank(message) {
		return b
	}

	b.msg.Message = message
	return b
}

// SetTitle sets the title; otherwise the application's name is shown.
// A blank title removes it.
func (b MessageBuilder) SetTitle(title string) MessageBuilder {
	b.msg.Title = optionalText(title)
	return b
}

func (b MessageBuilder) RemoveTitle() MessageBuilder {
	b.msg.Title = ""
	return b
}

// SetURL sets a supplementary URL and the title shown in its place. A blank
// url removes both; a blank title shows the bare URL.
func (b MessageBuilder) SetURL(url, title string) MessageBuilder {
	if isBlank(url) {
		return b.RemoveURL()
	}

	b.msg.URL = url
	b.msg.URLTitle = optionalText(title)
	return b
}

func (b MessageBuilder) RemoveURL() MessageBuilder {
	b.msg.URL = ""
	b.msg.URLTitle = ""
	return b
}

// SetPriority sets the priority. Values outside [PriorityLowest,
// PriorityEmergency] become PriorityNormal. Leaving PriorityEmergency drops
// any retry and expire set so far.
func (b MessageBuilder) SetPriority(priority Priority) MessageBuilder {
	priority = normalizePriority(priority)

	if priority != PriorityEmergency {
		b.retry = 0
		b.expire = 0
	}

	b.msg.Priority = priorityPtr(priority)
	return b
}

// RemovePriority resets the priority to PriorityNormal.
func (b MessageBuilder) RemovePriority() MessageBuilder {
	return b.SetPriority(PriorityNormal)
}

// SetRetry sets how often, in seconds, an emergency message repeats, with a
// floor of [MinRetry]. It is ignored unless the priority is PriorityEmergency.
func (b MessageBuilder) SetRetry(secs int) MessageBuilder {
	if !b.isEmergency() {
		return b
	}

	b.retry = clampRetry(secs)
	return b
}

// SetExpire sets how long, in seconds, an emergency message keeps repeating,
// clamped to [MinExpire, MaxExpire]. It is ignored unless the priority is
// PriorityEmergency.
func (b MessageBuilder) SetExpire(secs int) MessageBuilder {
	if !b.isEmergency() {
		return b
	}

	b.expire = clampExpire(secs)
	return b
}

// SetSound overrides the user's default sound. An empty or unknown sound
// removes it.
func (b MessageBuilder) SetSound(sound Sound) MessageBuilder {
	b.msg.Sound = normalizeSound(sound)
	return b
}

func (b MessageBuilder) RemoveSound() MessageBuilder {
	b.msg.Sound = ""
	return b
}

// SetTimestamp sets the unix time, in seconds, shown to the user instead of
// the time of receipt. Non-positive values remove it.
func (b MessageBuilder) SetTimestamp(unix int64) MessageBuilder {
	if unix <= 0 {
		unix = 0
	}

	b.msg.Timestamp = unix
	return b
}

func (b MessageBuilder) RemoveTimestamp() MessageBuilder {
	b.msg.Timestamp = 0
	return b
}

// SetDevice limits delivery to a single device. A blank name removes the
// device restriction.
func (b MessageBuilder) SetDevice(name string) MessageBuilder {
	if isBlank(name) {
		return b.ClearDevices()
	}

	b.msg.Devices = []string{name}
	return b
}

// AddDevice adds a device unless it is already listed.
func (b MessageBuilder) AddDevice(name string) MessageBuilder {
	b.msg.Devices = addDevice(b.msg.Devices, name)
	return b
}

// SetDevices replaces the device list verbatim.
func (b MessageBuilder) SetDevices(names []string) MessageBuilder {
	b.msg.Devices = copyDevices(names)
	return b
}

// MergeDevices adds each name not already listed, keeping insertion order.
func (b MessageBuilder) MergeDevices(names []string) MessageBuilder {
	b.msg.Devices = mergeDevices(b.msg.Devices, names)
	return b
}

func (b MessageBuilder) ClearDevices() MessageBuilder {
	b.msg.Devices = nil
	return b
}

// SetTTL sets the number of seconds after which the message is deleted from
// the recipient's devices. Non-positive values remove it.
func (b MessageBuilder) SetTTL(secs int) MessageBuilder {
	if secs <= 0 {
		secs = 0
	}

	b.msg.TTL = secs
	return b
}

// Build returns the finished message. An emergency message without explicit
// retry or expire gets [MinRetry] and [MaxExpire].
func (b MessageBuilder) Build() Message {
	msg := b.msg
	msg.Devices = copyDevices(b.msg.Devices)
	msg.Emergency = nil

	if b.isEmergency() {
		emergency := Emergency{Retry: b.retry, Expire: b.expire}
		if emergency.Retry == 0 {
			emergency.Retry = defaultRetry
		}
		if emergency.Expire == 0 {
			emergency.Expire = defaultExpire
		}
		msg.Emergency = &emergency
	}

	if b.msg.Priority != nil {
		msg.Priority = priorityPtr(*b.msg.Priority)
	}

	return msg
}

func (b MessageBuilder) isEmergency() bool {
	return b.msg.Priority != nil && *b.msg.Priority == PriorityEmergency
}
