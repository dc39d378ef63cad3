// Package app wires the bot's components from a Config. Every entrypoint
// under cmd builds its dependencies here.
package app

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jqs7/regex/pkg/bot"
	"github.com/jqs7/regex/pkg/command"
	"github.com/jqs7/regex/pkg/config"
	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/queue"
	"github.com/jqs7/regex/pkg/router"
	"github.com/jqs7/regex/pkg/share"
	"github.com/jqs7/regex/pkg/words"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Bot     *bot.TGBotAPI
	Lock    lock.Interface
	Words   *words.Manager
	Sharer  *share.Sharer
	Handler *command.Handler
	Router  *router.Router
}

type Options struct {
	// Memory keeps all state in process and disables the queues.
	Memory bool
	// NoBot skips connecting to Telegram, for tools that only touch storage.
	NoBot bool
}

func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func New(cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	var (
		wordStore db.IWords
		sessions  db.ISessions
		records   db.IRecords
		locker    lock.Interface
		q         queue.Interface
	)
	if opts.Memory {
		store := db.NewMemory()
		wordStore, sessions, records = store, store, store
		locker = lock.NewLocal()
		q = queue.Log{Logger: logger}
	} else {
		sess, err := session.NewSession()
		if err != nil {
			return nil, xerrors.Errorf("初始化 AWS 会话失败: %w", err)
		}
		wordStore = db.NewWords(sess, cfg.WordsTable)
		states := db.NewStates(sess, cfg.StatesTable)
		sessions, records = states, states
		if cfg.LockTable != "" {
			locker = lock.NewDynamo(sess, cfg.LockTable, logger)
		} else {
			logger.Warn("LOCK_TABLE_NAME is empty, mutations are only serialized within this instance")
			locker = lock.NewLocal()
		}
		q = queue.NewSQS(sess)
	}

	a := &App{Config: cfg, Logger: logger, Lock: locker}
	a.Words = words.NewManager(wordStore, logger)
	a.Sharer = share.NewSharer(q, cfg.ExchangeQueue, cfg.Receivers, cfg.Types, a.Words, locker, logger)
	if opts.NoBot {
		return a, nil
	}

	botAPI, err := bot.NewAPI(cfg.BotToken, logger)
	if err != nil {
		return nil, err
	}
	a.Bot = botAPI
	a.Handler, err = command.NewHandler(command.Deps{
		Bot:      botAPI,
		Lock:     locker,
		Words:    a.Words,
		Sharer:   a.Sharer,
		Sessions: sessions,
		Records:  records,
		Queue:    q,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	a.Router = router.New(a.Handler, logger)
	return a, nil
}
