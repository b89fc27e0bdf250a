package rest

// IngestResponse — ответ заглушки на принятый батч.
type IngestResponse struct {
	OK      bool `json:"ok"`
	Count   int  `json:"count"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
}
