package response

// AppError 携带业务码与文案键的错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	label := e.Message
	if label == "" {
		label = e.Key
	}
	if e.Err == nil {
		return label
	}
	return label + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误，key 为空表示消息已是最终文案
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}
