// Package lookup answers a chat message containing a phone number: it
// normalizes, classifies, looks the number up and renders the reply.
package lookup

import (
	"fmt"
	"html"
	"strings"

	"github.com/wolfman30/sy-number-bot/internal/contacts"
	"github.com/wolfman30/sy-number-bot/internal/phone"
)

// Reply texts. They are sent with Telegram's HTML parse mode.
const (
	MsgWrongRegion   = "❌ هذا الرقم ليس رقماً سورياً."
	MsgUnparseable   = "⚠️ لم أتمكن من قراءة الرقم.\nجرّب إحدى الصيغ التالية:\n<code>0933123456</code>\n<code>933123456</code>\n<code>+963933123456</code>"
	MsgInternalError = "⚠️ خطأ داخلي: "

	LabelMobile   = "محمول"
	LabelLandline = "أرضي"
)

// Formatter renders replies for classified numbers.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format builds the reply for normalized given its classification and the
// contact found for it, if any.
func (f *Formatter) Format(normalized string, c phone.Classification, contact *contacts.Contact) string {
	if !c.Valid {
		if c.Reason == phone.ReasonWrongRegion {
			return MsgWrongRegion
		}
		return MsgUnparseable
	}

	number := html.EscapeString(normalized)
	label := LineTypeLabel(c.LineType)
	if contact == nil {
		return fmt.Sprintf("🔍 الرقم <code>%s</code> (%s)\nغير موجود في قاعدة البيانات.", number, label)
	}

	var b strings.Builder
	b.WriteString("✅ تم العثور على الرقم\n")
	fmt.Fprintf(&b, "👤 الاسم: <b>%s</b>\n", html.EscapeString(contact.Name))
	fmt.Fprintf(&b, "📱 النوع: %s\n", label)
	fmt.Fprintf(&b, "📞 الرقم: <code>%s</code>", number)
	return b.String()
}

// InternalError renders the reply sent when the pipeline fails unexpectedly.
func (f *Formatter) InternalError(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return MsgInternalError + html.EscapeString(msg)
}

// LineTypeLabel returns the Arabic label for a line type.
func LineTypeLabel(t phone.LineType) string {
	if t == phone.LineTypeMobile {
		return LabelMobile
	}
	return LabelLandline
}
