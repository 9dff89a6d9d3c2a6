package controller

type sshInfo struct {
	Host       string `json:"host" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password"`
	PrivateKey string `json:"privateKey"`
	Port       int    `json:"port"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
