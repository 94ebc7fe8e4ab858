package lookup

// Category 是一次失败查询的归类，决定是否重试以及展示哪条提示。
type Category int

const (
	CategoryTimeout Category = iota
	CategoryRemote
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategoryTimeout:
		return "timeout"
	case CategoryRemote:
		return "remote_error"
	case CategoryInternal:
		return "internal_error"
	}
	return "unknown"
}

// 用户可见的失败提示，诊断细节只写日志。
const (
	msgTimeout  = "查询超时，请稍后再试"
	msgRemote   = "上游接口查询失败，请稍后再试"
	msgInternal = "查询出现内部错误，请稍后再试"
)

// LookupError 携带失败归类与用户可见提示；Err 仅用于日志。
type LookupError struct {
	Category Category
	Message  string
	Err      error
}

func (e *LookupError) Error() string { return e.Message }

func (e *LookupError) Unwrap() error { return e.Err }
