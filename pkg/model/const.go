package model

import (
	"sort"
)

const (
	TypeAd  WordType = "ad"
	TypeBan WordType = "ban"
	TypeBio WordType = "bio"
	TypeCon WordType = "con"
	TypeDel WordType = "del"
	TypeIml WordType = "iml"
	TypeNm  WordType = "nm"
	TypeSpc WordType = "spc"
	TypeSpe WordType = "spe"
	TypeSti WordType = "sti"
	TypeTgl WordType = "tgl"
	TypeTgp WordType = "tgp"
	TypeWb  WordType = "wb"
	TypeWd  WordType = "wd"

	TypeAll = "all"
)

var WordTypeNames = map[WordType]string{
	TypeAd:  "广告用语",
	TypeBan: "禁止用语",
	TypeBio: "简介用语",
	TypeCon: "联系方式",
	TypeDel: "删除用语",
	TypeIml: "IM 链接",
	TypeNm:  "名称封禁",
	TypeSpc: "特殊中文",
	TypeSpe: "特殊英文",
	TypeSti: "贴纸删除",
	TypeTgl: "TG 链接",
	TypeTgp: "TG 代理",
	TypeWb:  "追踪封禁",
	TypeWd:  "追踪删除",
}

func (t WordType) Name() string {
	if name, ok := WordTypeNames[t]; ok {
		return name
	}
	return string(t)
}

func (t WordType) Valid() bool {
	_, ok := WordTypeNames[t]
	return ok
}

func AllWordTypes() []WordType {
	types := make([]WordType, 0, len(WordTypeNames))
	for t := range WordTypeNames {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

const (
	ActionRegex      = "regex"
	ActionTypeCount  = "count"
	ActionTypeUpdate = "update"
	ShareSender      = "REGEX"
	CountAsk         = "ask"
)

const (
	CallbackAsk  = "ask"
	CallbackPage = "page"

	AskNew     = "new"
	AskReplace = "replace"
	AskCancel  = "cancel"

	PagePrevious = "previous"
	PageNext     = "next"

	ActionList   = "list"
	ActionSearch = "search"
)

var (
	AddCommands    = []string{"add", "ad"}
	RemoveCommands = []string{"remove", "rm"}
	ListCommands   = []string{"list", "ls"}
	SearchCommands = []string{"search", "s"}
	SameCommands   = []string{"same", "copy"}
)

const (
	UserLinkTemplate = `<a href="tg://user?id=%d">%d</a>`
	MsgLinkTemplate  = `<a href="https://t.me/c/%d/%d">%d</a>`
)

// SQS caps message delay at 15 minutes.
const MaxQueueDelaySecond = 900
