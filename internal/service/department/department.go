// Package department 定义科室枚举与基于关键词的分诊规则
package department

import "strings"

// Code 科室代码
type Code string

const (
	EM     Code = "EM"     // 急诊医学科
	IM     Code = "IM"     // 内科
	PED    Code = "PED"    // 儿科
	OBGYN  Code = "OBGYN"  // 妇产科
	COMMON Code = "COMMON" // 通用
)

// All 返回全部科室代码
func All() []Code {
	return []Code{EM, IM, PED, OBGYN, COMMON}
}

// Parse 解析外部传入的科室代码，未知代码拒绝
func Parse(s string) (Code, bool) {
	switch Code(strings.ToUpper(strings.TrimSpace(s))) {
	case EM:
		return EM, true
	case IM:
		return IM, true
	case PED:
		return PED, true
	case OBGYN:
		return OBGYN, true
	case COMMON:
		return COMMON, true
	default:
		return "", false
	}
}

// String 实现 Stringer
func (c Code) String() string {
	return string(c)
}

// IndexSuffix 返回该科室向量索引的后缀
func (c Code) IndexSuffix() string {
	return strings.ToLower(string(c))
}

// Info 科室目录项
type Info struct {
	Code   Code   `json:"code"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

// Catalog 返回科室目录
func Catalog() []Info {
	return []Info{
		{Code: EM, Name: "응급의학과", NameEn: "Emergency Medicine"},
		{Code: IM, Name: "내과", NameEn: "Internal Medicine"},
		{Code: PED, Name: "소아청소년과", NameEn: "Pediatrics"},
		{Code: OBGYN, Name: "산부인과", NameEn: "Obstetrics and Gynecology"},
		{Code: COMMON, Name: "공통", NameEn: "Common"},
	}
}
