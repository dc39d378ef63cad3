package command

import (
	"strings"

	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
)

// report renders the "label：value" lines every reply is made of.
type report struct {
	b strings.Builder
}

func newReport(adminID int) *report {
	r := &report{}
	r.line("admin", utils.MentionID(adminID))
	return r
}

func (r *report) line(key, value string) *report {
	r.b.WriteString(model.L(key) + model.L("colon") + value + "\n")
	return r
}

func (r *report) code(key, value string) *report {
	return r.line(key, utils.Code(value))
}

func (r *report) action(key string) *report {
	return r.code("action", model.L(key))
}

func (r *report) status(key string) *report {
	return r.code("status", model.L(key))
}

func (r *report) fail(reason string) *report {
	r.status("status_failed")
	return r.code("reason", model.L(reason))
}

func (r *report) raw(s string) *report {
	r.b.WriteString(s)
	return r
}

func (r *report) String() string {
	return r.b.String()
}

func typeName(t string) string {
	switch {
	case t == model.TypeAll:
		return model.L("all")
	case t == "":
		return model.L("unknown")
	}
	return model.WordType(t).Name()
}

// withStatus appends a status line to a previously rendered report.
func withStatus(text, key string) string {
	r := &report{}
	r.raw(text)
	return r.status(key).String()
}
