package model

// Message type tags as they appear in Chatwork export files.
const (
	TypeText       = "text_message_type"
	TypeCreateRoom = "create_room_message_type"
	TypeUpdateRoom = "update_room_message_type"
)

// SystemMessage carries the rendered text of a room notice.
type SystemMessage struct {
	Message string `json:"message"`
}

// Message is one entry of an exported room. Field names follow the export JSON.
type Message struct {
	ID         string         `json:"id"`
	AuthorID   int            `json:"aid"`
	AuthorName string         `json:"aid_name"`
	Text       string         `json:"msg"`
	Type       string         `json:"type"`
	System     *SystemMessage `json:"system_message_dat,omitempty"`
	Timestamp  int64          `json:"tm"`  // created, seconds since epoch
	Updated    int64          `json:"utm"` // last edit, seconds since epoch
	Index      int            `json:"index"`
	Datetime   string         `json:"datetime"` // preformatted, used for display and chronological sort

	RoomID string `json:"-"` // owning room, annotated on ingestion
}

// IsSystem reports whether the message is a room notice rather than user text.
func (m Message) IsSystem() bool {
	return m.Type == TypeCreateRoom || m.Type == TypeUpdateRoom
}

// DisplayText returns the text to render: the notice text for system messages,
// the message body otherwise.
func (m Message) DisplayText() string {
	if m.IsSystem() && m.System != nil {
		return m.System.Message
	}
	return m.Text
}
