package soi2c

import "fmt"

// Format renders an event with the analyzer's display templates:
//
//	addr     {sender}
//	hdr      {action}: {length}
//	note     {text}
//	query    Query Notecard
//	request  Request: {length}
func Format(e Event) string {
	switch e.Kind {
	case KindSender:
		return e.Sender
	case KindHeader:
		return fmt.Sprintf("%s: %d", e.Action, e.Length)
	case KindQuery:
		return "Query Notecard"
	case KindRequest:
		return fmt.Sprintf("Request: %d", e.Length)
	case KindNote:
		return e.Text
	default:
		return ""
	}
}
