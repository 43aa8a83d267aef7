package service

import "errors"

// ErrorKind 批量更新的按记录失败分类
type ErrorKind string

const (
	ErrorKindNotFound     ErrorKind = "NotFound"
	ErrorKindInvalidValue ErrorKind = "InvalidValue"
	ErrorKindPersistence  ErrorKind = "PersistenceFailure"
)

// Service 层错误语义：
// - ErrValidation: 请求本身不合法（空取值、非10位号码等），整个请求被拒绝
// - ErrNotFound: 引用的联系人/活动/员工不存在
// - ErrAmbiguousPhone: 归一化号码命中多个联系人，不选择任何一个，交外部处理
// 重复签到不在此列：按幂等成功吸收，不作为错误暴露
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAmbiguousPhone = errors.New("ambiguous phone number")
)
