package packets

// ZoneResponse is one entry of the zone directory.
type ZoneResponse struct {
	JakimCode string `json:"jakimCode"`
	Negeri    string `json:"negeri"`
	Daerah    string `json:"daerah"`
}

// LocationResponse is the district a coordinate falls in.
type LocationResponse struct {
	Zone     string `json:"zone"`
	State    string `json:"state"`
	District string `json:"district"`
}
