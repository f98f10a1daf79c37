package serverutils

// BaseResponse is the envelope every endpoint returns:
// { "success": bool, "message": string, "data": T }
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse builds the failure envelope. The HTTP status on the response
// carries the code; the envelope only explains it.
func ErrorResponse(message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Message: message,
	}
}
