package packets

type LoginResponse struct {
	Token string `json:"token"`
}

type PutMonthResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
