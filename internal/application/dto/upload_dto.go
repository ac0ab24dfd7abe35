package dto

// UploadResponse resultado de POST /upload.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
	BatchID string `json:"batch_id,omitempty"`
	Stage   string `json:"stage,omitempty"`
}

// ServerInfoResponse datos para que las estaciones se conecten (QR de la UI).
type ServerInfoResponse struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
	URL  string `json:"url"`
}
