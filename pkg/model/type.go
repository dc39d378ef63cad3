package model

import "time"

type KV struct {
	K string
	V string
}

type WordType string

type WordStatus struct {
	Today   int       `json:"today"`
	Total   int       `json:"total"`
	Average float64   `json:"average"`
	Time    time.Time `json:"time"`
}

func DefaultStatus(now time.Time) WordStatus {
	return WordStatus{Time: now}
}

type Word struct {
	Type      WordType
	Pattern   string
	CreatedBy int
	CreatedAt time.Time
	Status    WordStatus
}

type SessionKind string

const (
	SessionAsk  SessionKind = "ask"
	SessionPage SessionKind = "page"
)

// Session is the pending state of one admin in one chat. A newer session of
// the same kind replaces the older one.
type Session struct {
	ChatID   int64
	AdminID  int
	Kind     SessionKind
	Key      string
	ExpireAt time.Time

	// ask
	Type      WordType
	Word      string
	Conflicts []string

	// page
	Action string
	Types  []WordType
	Query  string
	Desc   bool
	Page   int
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpireAt.IsZero() && !now.Before(s.ExpireAt)
}

type RecordKind string

const (
	RecordCommand RecordKind = "command"
	RecordAsk     RecordKind = "ask"
	RecordPage    RecordKind = "page"
)

// Record remembers a single chat message: admin commands so they can be
// replayed by same, and bot prompts so replies can be matched to their owner.
type Record struct {
	ChatID   int64
	MsgID    int
	AdminID  int
	Kind     RecordKind
	Key      string
	Text     string
	ReplyTo  int
	ExpireAt time.Time
}

type Message struct {
	ChatID      int64
	MsgID       int
	FromID      int
	FromIsBot   bool
	Text        string
	Date        time.Time
	ForwardName string
	FileName    string
	ReplyTo     *Message
}

type Callback struct {
	A string `json:"a"`
	T string `json:"t"`
	D string `json:"d,omitempty"`
}

type ShareData struct {
	From       string      `json:"from"`
	To         []string    `json:"to"`
	Action     string      `json:"action"`
	ActionType string      `json:"action_type"`
	Data       interface{} `json:"data"`
}

type WordsUpdate struct {
	Type  WordType `json:"type"`
	Words []string `json:"words"`
}

type ExpireMsg struct {
	ChatID  int64
	AdminID int
	Kind    SessionKind
	Key     string
	MsgID   int
}
