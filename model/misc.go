package model

type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    any    `json:"code"`
}

type ErrorWithStatusCode struct {
	Error
	StatusCode int `json:"status_code"`
}

func ErrorWrapper(err error, code string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Error: Error{
			Message: err.Error(),
			Type:    "brandboost_error",
			Code:    code,
		},
		StatusCode: statusCode,
	}
}
