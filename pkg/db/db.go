package db

import (
	"context"

	"github.com/jqs7/regex/pkg/model"
	"golang.org/x/xerrors"
)

var ErrNotFound = xerrors.New("Record Not Found")

// IWords is the word table. Each category is its own partition.
type IWords interface {
	GetWord(ctx context.Context, t model.WordType, pattern string) (*model.Word, error)
	ListWords(ctx context.Context, t model.WordType) ([]model.Word, error)
	PutWord(ctx context.Context, word model.Word) error
	DeleteWord(ctx context.Context, t model.WordType, pattern string) error
}

// ISessions holds at most one session per (chat, admin, kind).
type ISessions interface {
	GetSession(ctx context.Context, chatID int64, adminID int, kind model.SessionKind) (*model.Session, error)
	PutSession(ctx context.Context, session model.Session) error
	DeleteSession(ctx context.Context, chatID int64, adminID int, kind model.SessionKind) error
}

type IRecords interface {
	GetRecord(ctx context.Context, chatID int64, msgID int) (*model.Record, error)
	PutRecord(ctx context.Context, record model.Record) error
}
