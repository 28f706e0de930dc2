package models

import (
	"encoding/json"
	"time"
)

// ShortLink maps a short alias to a full URL. Clicks, CreatedAt and UpdatedAt
// are server-authoritative and never changed by the client.
type ShortLink struct {
	ID        string    `json:"_id"`
	Full      string    `json:"full"`
	Short     string    `json:"short"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts the record id as either "_id" or "id".
func (l *ShortLink) UnmarshalJSON(b []byte) error {
	type plain ShortLink
	var aux struct {
		plain
		PlainID string `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*l = ShortLink(aux.plain)
	if l.ID == "" {
		l.ID = aux.PlainID
	}
	return nil
}

// URL renders the clickable short link on the given short domain.
func (l ShortLink) URL(domain string) string {
	return "https://" + domain + "/" + l.Short
}

// LinkDraft is unsaved create/edit form state. An empty ShortURL asks the
// server to assign an alias.
type LinkDraft struct {
	FullURL  string `json:"fullUrl"`
	ShortURL string `json:"shortUrl"`
}

// EditDraft is a LinkDraft bound to the row being edited.
type EditDraft struct {
	ID string
	LinkDraft
}

// DraftFrom seeds a draft from an existing link.
func DraftFrom(l ShortLink) LinkDraft {
	return LinkDraft{FullURL: l.Full, ShortURL: l.Short}
}
