package chatbot

import "errors"

// EventResumeComplete is the widget payload type carrying collected resume data.
const EventResumeComplete = "resume_complete"

// ErrUnrecognizedEvent is returned for bodies that are neither a widget
// message event nor a bare data callback.
var ErrUnrecognizedEvent = errors.New("unrecognized chatbot event")

// extractResumeData pulls the resume payload out of an inbound body. The body
// is either a widget message event, {"payload":{"type":...,"data":...}}, or
// a bare callback, {"data":...}. For message events of another type it
// returns ok=false together with that type.
func extractResumeData(body any) (data any, ok bool, ignoredType string, err error) {
	m, isMap := body.(map[string]any)
	if !isMap {
		return nil, false, "", ErrUnrecognizedEvent
	}

	if payload, hasPayload := m["payload"].(map[string]any); hasPayload {
		typ, _ := payload["type"].(string)
		if typ != EventResumeComplete {
			return nil, false, typ, nil
		}
		return payload["data"], true, "", nil
	}

	if raw, hasData := m["data"]; hasData {
		return raw, true, "", nil
	}
	return nil, false, "", ErrUnrecognizedEvent
}
