package types

import "time"

type RenderMessage struct {
	Time      time.Time
	SnippetId string `json:",omitempty"`
	Markup    string `json:",omitempty"`
	Error     string `json:",omitempty"`
}
