package types

// Group is one experimental unit as exposed by the JSON API.
type Group struct {
	Name     string   `json:"name"`
	ECTarget *float64 `json:"ecTarget"`
	Color    string   `json:"color"`
}
