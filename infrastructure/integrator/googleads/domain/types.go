package googledomain

// Tipos brutos da API de relatórios do Google Ads (googleAds:searchStream).
// Inteiros chegam como strings no JSON REST, por isso as tags ",string".

type Campaign struct {
	ResourceName string `json:"resourceName"`
	ID           int64  `json:"id,string"`
	Name         string `json:"name"`
	Status       string `json:"status"`
}

type AdGroup struct {
	ResourceName string `json:"resourceName"`
	ID           int64  `json:"id,string"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Campaign     string `json:"campaign"`
}

type AdGroupAd struct {
	ResourceName string `json:"resourceName"`
	Status       string `json:"status"`
	AdGroup      string `json:"adGroup"`
	Ad           Ad     `json:"ad"`
}

type Ad struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

type Metrics struct {
	Impressions int64   `json:"impressions,string"`
	Clicks      int64   `json:"clicks,string"`
	CostMicros  int64   `json:"costMicros,string"`
	Conversions float64 `json:"conversions"`
}

type Segments struct {
	Date string `json:"date"`
	Hour *int   `json:"hour,omitempty"`
}

// Result é uma linha de resposta do search: só os campos pedidos na GAQL
// vêm preenchidos
type Result struct {
	Campaign  *Campaign  `json:"campaign,omitempty"`
	AdGroup   *AdGroup   `json:"adGroup,omitempty"`
	AdGroupAd *AdGroupAd `json:"adGroupAd,omitempty"`
	Metrics   *Metrics   `json:"metrics,omitempty"`
	Segments  *Segments  `json:"segments,omitempty"`
}

type SearchResponse struct {
	Results       []Result `json:"results"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

// ErrorResponse é o envelope de erro padrão das APIs Google
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
