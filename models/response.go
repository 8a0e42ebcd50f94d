package models

// ApiResponse es el sobre uniforme de todas las respuestas del API.
type ApiResponse struct {
	Success bool        `json:"success"`
	Body    interface{} `json:"body"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}
