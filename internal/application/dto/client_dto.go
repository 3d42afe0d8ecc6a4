package dto

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	DocNumber string `json:"docNumber"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	DocNumber string `json:"docNumber"`
}
