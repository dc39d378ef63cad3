package utils

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/jqs7/regex/pkg/model"
)

func EncodeToString(i interface{}) string {
	bs, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}
	return string(bs)
}

func GetFullName(firstName, lastName string) string {
	fullName := strings.TrimSpace(firstName + " " + lastName)
	if len([]rune(fullName)) > 10 {
		fullName = string([]rune(fullName)[:10]) + "..."
	}
	return fullName
}

func Code(s string) string {
	return "<code>" + html.EscapeString(s) + "</code>"
}

func Bold(s string) string {
	return "<b>" + html.EscapeString(s) + "</b>"
}

func CodeBlock(s string) string {
	return "<pre>" + html.EscapeString(s) + "</pre>"
}

func MentionID(userID int) string {
	return fmt.Sprintf(model.UserLinkTemplate, userID, userID)
}

// MessageLink links to a message of a supergroup, whose id carries the -100 prefix.
func MessageLink(chatID int64, msgID int) string {
	id := chatID
	if id < 0 {
		id = -id - 1000000000000
	}
	if id < 0 {
		return fmt.Sprintf("%d", msgID)
	}
	return fmt.Sprintf(model.MsgLinkTemplate, id, msgID, msgID)
}
