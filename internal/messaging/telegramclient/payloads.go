package telegramclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseModeHTML enables Telegram's HTML text styling.
const ParseModeHTML = "HTML"

// Update is one webhook delivery from the Bot API. Only the fields the bot
// reads are modelled; edited messages and other update kinds decode with a
// nil Message and are ignored.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is a Telegram chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// User is the sender of a message.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

var (
	// ErrNoText means the update carries no message text to answer.
	ErrNoText = errors.New("telegramclient: update has no message text")
	// ErrMissingChat means the message has no chat to reply to.
	ErrMissingChat = errors.New("telegramclient: message has no chat id")
)

// ParseUpdate decodes a webhook body.
func ParseUpdate(body []byte) (*Update, error) {
	var u Update
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("telegramclient: decode update: %w", err)
	}
	return &u, nil
}

// IncomingText returns the chat id and text of a new message. It returns
// ErrNoText for updates with empty or absent text (stickers, joins) and
// ErrMissingChat when the chat id is absent. Whitespace-only text is
// returned as is.
func (u *Update) IncomingText() (int64, string, error) {
	if u == nil || u.Message == nil {
		return 0, "", ErrNoText
	}
	if u.Message.Text == "" {
		return 0, "", ErrNoText
	}
	if u.Message.Chat.ID == 0 {
		return 0, "", ErrMissingChat
	}
	return u.Message.Chat.ID, u.Message.Text, nil
}

// SendMessageRequest is the body of the sendMessage method.
type SendMessageRequest struct {
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ParseMode        string `json:"parse_mode,omitempty"`
	ReplyToMessageID int64  `json:"reply_to_message_id,omitempty"`
}

func (r SendMessageRequest) validate() error {
	if r.ChatID == 0 {
		return errors.New("telegramclient: chat id required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("telegramclient: text required")
	}
	return nil
}

// SetWebhookRequest is the body of the setWebhook method.
type SetWebhookRequest struct {
	URL                string   `json:"url"`
	AllowedUpdates     []string `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool     `json:"drop_pending_updates,omitempty"`
}

func (r SetWebhookRequest) validate() error {
	if !strings.HasPrefix(r.URL, "https://") {
		return errors.New("telegramclient: webhook url must be https")
	}
	return nil
}

type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}
