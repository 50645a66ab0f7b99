// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов и накопленных ошибок формы в едином формате.
package response

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Errors: упорядоченный список ошибок формы (опционально).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string   `json:"status"`
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
	Data   any      `json:"data,omitempty"`
}

// ErrorResponse описывает ошибку для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string   `json:"status" example:"Error"`
	Error  string   `json:"error,omitempty" example:"invalid request body"`
	Errors []string `json:"errors,omitempty" example:"User already exists!"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// FormErrors возвращает Response со списком ошибок формы в исходном порядке.
func FormErrors(errs []string) Response {
	return Response{
		Status: StatusError,
		Errors: errs,
	}
}
