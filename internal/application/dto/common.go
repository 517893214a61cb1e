package dto

// ErrorResponse cuerpo de error HTTP. Message es el texto que el panel muestra en el toast.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionResponse respuesta de toda mutación exitosa: mensaje para el toast, registro afectado
// y el listado recargado desde la base de datos (nunca parcheado en memoria).
type ActionResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Items   interface{} `json:"items,omitempty"`
}

// CountResponse contador simple.
type CountResponse struct {
	Count int `json:"count"`
}
