package lookup

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

const (
	msgInvalidHost   = "请输入有效的域名或 IP 地址"
	msgDomainTooLong = "域名长度不能超过 253 个字符"
	msgLabelTooLong  = "域名标签长度不能超过 63 个字符"
)

var (
	domainPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*[A-Za-z0-9]$`)
	singleAlnum   = regexp.MustCompile(`^[A-Za-z0-9]$`)
	digitsAndDots = regexp.MustCompile(`^[0-9.]+$`)
)

// DNSRecordTypes 是允许查询的记录类型。
var DNSRecordTypes = []string{"A", "AAAA", "CNAME", "MX", "TXT", "NS", "SOA", "PTR", "SRV", "CAA", "NAPTR"}

// ValidateHost 在发起任何网络请求前校验主机参数。
// 合法的 IPv4/IPv6 字面量直接放行；纯数字加点、带冒号但解析失败的输入
// 视为写错的 IP，不再按域名规则放行；其余按域名规则校验。
func ValidateHost(host string) error {
	if host == "" {
		return errors.New(msgInvalidHost)
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if strings.Contains(host, ":") || digitsAndDots.MatchString(host) {
		return errors.New(msgInvalidHost)
	}
	if len(host) > maxDomainLength {
		return errors.New(msgDomainTooLong)
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) > maxLabelLength {
			return errors.New(msgLabelTooLong)
		}
	}
	if singleAlnum.MatchString(host) {
		return nil
	}
	if !domainPattern.MatchString(host) {
		return errors.New(msgInvalidHost)
	}
	return nil
}

// CanonicalRecordType 将记录类型规范化为大写并校验是否在允许列表内。
func CanonicalRecordType(recordType string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(recordType))
	for _, t := range DNSRecordTypes {
		if upper == t {
			return upper, nil
		}
	}
	return "", fmt.Errorf("不支持的记录类型 %s，支持的类型：%s", recordType, strings.Join(DNSRecordTypes, ", "))
}
