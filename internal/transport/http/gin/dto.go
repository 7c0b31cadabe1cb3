package httpgin

type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type OpenBookingRequest struct {
	ShowIndex int `json:"show_index" binding:"required,gt=0"`
}

type SeatBatchRequest struct {
	Seats string `json:"seats" binding:"required"`
}

type CancelSeatsRequest struct {
	Seats string `json:"seats" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
