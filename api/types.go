package api

import "encoding/json"

// invalidRequest answers malformed JSON on /quote
const invalidRequest = "Ungültige Anfrage"

// QuoteRequest is the body of POST /quote. Field names match the upload
// form of /pdf/analyze.
type QuoteRequest struct {
	// Text is already recognized drawing text
	Text string `json:"text"`

	// Quantity is parsed leniently; anything unusable counts as 1
	Quantity FormValue `json:"stueckzahl"`

	// TargetPrice is echoed back unchanged
	TargetPrice FormValue `json:"zielpreis"`
}

// FormValue accepts a JSON string or number and keeps its literal text,
// so numbers behave like the equivalent form field.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *FormValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// ErrorResponse is returned for every fault
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version  string `json:"version"`
	Engine   string `json:"engine"`
	RateCard string `json:"rate_card"`
	Currency string `json:"currency"`
}
