package lookup

// defaultKeyTranslations 是内置的字段展示名表，键为小写字段名。
// 配置中的 keyTranslations 可以覆盖或补充。
var defaultKeyTranslations = map[string]string{
	// 通用
	"code": "状态码",
	"msg":  "消息",
	"data": "数据",

	// WHOIS
	"domain":                  "🌐 域名",
	"extension":               "📂 后缀",
	"registrar":               "🏢 注册商",
	"creation_date":           "📅 创建日期",
	"created_date":            "📅 创建日期",
	"created_date_in_time":    "🕒 创建时间(UTC)",
	"expiration_date":         "📅 过期日期",
	"expiration_date_in_time": "🕒 过期时间(UTC)",
	"updated_date":            "📅 更新日期",
	"updated_date_in_time":    "🕒 更新时间(UTC)",
	"status":                  "📊 状态",
	"name_servers":            "🖥️ DNS服务器",
	"emails":                  "📧 联系邮箱",
	"dnssec":                  "🔒 DNSSEC",
	"name":                    "👤 名称",
	"org":                     "🏢 组织",
	"address":                 "📍 地址",
	"street":                  "🛣️ 街道",
	"city":                    "🏙️ 城市",
	"state":                   "🗺️ 省/州",
	"province":                "🗺️ 省/州",
	"zipcode":                 "📮 邮编",
	"postal_code":             "📮 邮编",
	"country":                 "🇨🇳 国家",
	"whois_server":            "🖥️ Whois服务器",
	"phone":                   "📞 电话",
	"email":                   "📧 邮箱",
	"referral_url":            "🔗 相关链接",
	"registrant":              "👤 注册人信息",
	"admin":                   "👮 管理员信息",
	"technical":               "🔧 技术联系人",
	"billing":                 "💰 账单联系人",
	"organization":            "🏢 组织",

	// DNS
	"host":     "🖥️ 主机",
	"type":     "🏷️ 类型",
	"ttl":      "⏲️ TTL",
	"class":    "📂 类别",
	"target":   "🎯 目标",
	"priority": "🔝 优先级",

	// Ping
	"ip":       "📍 IP地址",
	"location": "🌍 归属地",
	"loss":     "📉 丢包率",
	"sent":     "📤 发送包数",
	"received": "📥 接收包数",
	"seq":      "🔢 序列号",
}
