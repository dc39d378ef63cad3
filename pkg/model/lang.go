package model

var Lang = map[string]string{
	"admin":  "管理",
	"action": "操作",
	"type":   "类别",
	"word":   "词组",
	"query":  "查询",
	"result": "结果",
	"status": "状态",
	"reason": "原因",
	"see":    "查看",
	"page":   "页码",
	"total":  "总数",
	"colon":  "：",

	"action_add":    "添加",
	"action_ask":    "确认",
	"action_remove": "移除",
	"action_list":   "查看",
	"action_search": "搜索",
	"action_page":   "翻页",
	"action_push":   "手动推送",
	"action_reset":  "清除计数",
	"action_same":   "同步类别",
	"action_count":  "计数请求",
	"t2t":           "文字转换",
	"version":       "版本",

	"status_succeeded": "成功执行",
	"status_failed":    "未执行",
	"status_added":     "已添加",
	"status_removed":   "已移除",
	"status_replaced":  "已替换",
	"status_cancelled": "已取消",
	"status_pending":   "等待确认",
	"status_pushed":    "已推送",
	"status_cleared":   "已清除",
	"status_expired":   "已过期",

	"conflicts":   "重复",
	"all":         "全部",
	"unknown":     "未知",
	"ask_hint":    "请回复 /ask new、/ask replace 或 /ask cancel",
	"button_new":  "添加新词",
	"button_rpl":  "替换全部",
	"button_cncl": "取消",
	"button_prev": "上一页",
	"button_next": "下一页",

	"reason_permission": "权限错误",
	"reason_usage":      "格式有误",
	"reason_reply":      "来源有误",
	"reason_source":     "二级来源有误",
	"reason_none":       "没有找到",
	"reason_exists":     "已存在",
	"reason_invalid":    "正则有误",
	"reason_busy":       "操作繁忙",
	"reason_page":       "没有更多",
	"reason_error":      "内部错误",
	"reason_expired":    "会话过期",
}

func L(key string) string {
	if v, ok := Lang[key]; ok {
		return v
	}
	return key
}
