package dblp

import "encoding/json"

// searchResponse mirrors the DBLP publication search API envelope.
type searchResponse struct {
	Result struct {
		Hits struct {
			Total string      `json:"@total"`
			Hit   []searchHit `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type searchHit struct {
	Info hitInfo `json:"info"`
}

type hitInfo struct {
	Key     string     `json:"key"`
	Title   string     `json:"title"`
	Venue   venueField `json:"venue"`
	Year    string     `json:"year"`
	DOI     string     `json:"doi"`
	URL     string     `json:"url"`
	Authors struct {
		Author authorList `json:"author"`
	} `json:"authors"`
}

// authorList accepts both shapes DBLP emits: an array of author objects
// for multi-author papers, and a bare object for single-author papers.
type authorList []struct {
	PID  string `json:"@pid"`
	Text string `json:"text"`
}

func (a *authorList) UnmarshalJSON(data []byte) error {
	type entry struct {
		PID  string `json:"@pid"`
		Text string `json:"text"`
	}

	var many []entry
	if err := json.Unmarshal(data, &many); err == nil {
		*a = make(authorList, len(many))
		for i, e := range many {
			(*a)[i] = e
		}
		return nil
	}

	var one entry
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*a = authorList{one}
	return nil
}

// venueField accepts both a string and an array of strings (cross-listed
// venues).
type venueField string

func (v *venueField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = venueField(s)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > 0 {
		*v = venueField(many[0])
	}
	return nil
}
