package config

import (
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/jqs7/regex/pkg/model"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BotToken      string
	Prefix        string
	RegexGroupID  int64
	TestGroupID   int64
	WordsTable    string
	StatesTable   string
	LockTable     string
	ExchangeQueue string
	SessionQueue  string
	SessionTTL    time.Duration
	PerPage       int
	Version       string
	Debug         bool

	Types     []model.WordType
	Receivers map[model.WordType][]string
}

// Registry is the YAML document naming the enabled categories and who
// receives each category's updates.
type Registry struct {
	Types     []model.WordType            `yaml:"types"`
	Receivers map[model.WordType][]string `yaml:"receivers"`
}

var Version = "dev"

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, xerrors.Errorf("读取 .env 失败: %w", err)
	}

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		Prefix:        getEnv("COMMAND_PREFIX", "/!"),
		WordsTable:    getEnv("WORDS_TABLE_NAME", "regex-words"),
		StatesTable:   getEnv("STATES_TABLE_NAME", "regex-states"),
		LockTable:     os.Getenv("LOCK_TABLE_NAME"),
		ExchangeQueue: os.Getenv("EXCHANGE_QUEUE"),
		SessionQueue:  os.Getenv("SESSION_QUEUE"),
		Version:       Version,
		Debug:         os.Getenv("DEBUG") != "",
		Types:         model.AllWordTypes(),
		Receivers:     map[model.WordType][]string{},
	}

	var err error
	if cfg.RegexGroupID, err = strconv.ParseInt(os.Getenv("REGEX_GROUP_ID"), 10, 64); err != nil {
		return nil, xerrors.Errorf("解析 REGEX_GROUP_ID 失败: %w", err)
	}
	cfg.TestGroupID = cfg.RegexGroupID
	if v := os.Getenv("TEST_GROUP_ID"); v != "" {
		if cfg.TestGroupID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, xerrors.Errorf("解析 TEST_GROUP_ID 失败: %w", err)
		}
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "10m")); err != nil {
		return nil, xerrors.Errorf("解析 SESSION_TTL 失败: %w", err)
	}
	if cfg.PerPage, err = strconv.Atoi(getEnv("PER_PAGE", "30")); err != nil || cfg.PerPage <= 0 {
		return nil, xerrors.Errorf("PER_PAGE 有误: %s", os.Getenv("PER_PAGE"))
	}

	if path := os.Getenv("REGISTRY_PATH"); path != "" {
		reg, err := ReadRegistry(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(reg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func ReadRegistry(path string) (*Registry, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("读取 %s 文件失败: %w", path, err)
	}
	reg := &Registry{}
	if err := yaml.Unmarshal(f, reg); err != nil {
		return nil, xerrors.Errorf("解码 %s 失败: %w", path, err)
	}
	return reg, nil
}

// Apply restricts the enabled categories to the registry's list and installs
// its receivers. Unknown categories are rejected.
func (c *Config) Apply(reg *Registry) error {
	if len(reg.Types) > 0 {
		types := make([]model.WordType, 0, len(reg.Types))
		for _, t := range reg.Types {
			if !t.Valid() {
				return xerrors.Errorf("未知类别: %s", t)
			}
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		c.Types = types
	}
	for t, receivers := range reg.Receivers {
		if !c.Enabled(t) {
			return xerrors.Errorf("接收者对应的类别未启用: %s", t)
		}
		c.Receivers[t] = receivers
	}
	return nil
}

func (c *Config) Enabled(t model.WordType) bool {
	for _, v := range c.Types {
		if v == t {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
