package metadomain

// Campaign é a forma bruta de uma campanha na Graph API do Meta
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
}

// AdSet é a forma bruta de um conjunto de anúncios
type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}

// Ad é a forma bruta de um anúncio
type Ad struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	AdSetID string `json:"adset_id"`
}

// Cursors são os cursores opacos de paginação da Graph API
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging é o bloco de paginação presente em toda listagem da Graph API
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}
